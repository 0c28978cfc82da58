package models

import "time"

// Quote is the auxiliary quote shown on the feed.
type Quote struct {
	Text     string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
}

// QuoteWindow identifies the wall-clock bucket a quote was cached in.
type QuoteWindow struct {
	Hour int    `json:"hour"`
	Date string `json:"date"`
}

// WindowAt returns the bucket containing t, in t's location.
func WindowAt(t time.Time) QuoteWindow {
	return QuoteWindow{Hour: t.Hour(), Date: t.Format(time.DateOnly)}
}

// CachedQuote is a quote together with the bucket it was fetched in.
type CachedQuote struct {
	Quote  Quote
	Window QuoteWindow
}

// IsValid reports whether the entry may be served at now without a refetch.
func (c CachedQuote) IsValid(now time.Time) bool {
	return c.Window == WindowAt(now)
}
