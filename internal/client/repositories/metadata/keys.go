// Package metadata stores small pieces of persisted client state: the bearer
// token and the quote cache. Two backends exist, SQLite and Redis.
package metadata

// Keys of the persisted client state.
const (
	KeyToken           = "token"
	KeyCachedQuote     = "cachedQuote"
	KeyCachedQuoteTime = "cachedQuoteTime"
)
