// Package quotecache keeps the auxiliary quote in the local key/value store
// for the current wall-clock hour of the current day.
package quotecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogit/internal/logging"
)

// Source fetches a fresh quote.
type Source interface {
	Fetch(ctx context.Context) (*models.Quote, error)
}

type Cache struct {
	repo metadata.Repository
	src  Source
	log  logging.Logger
	now  func() time.Time
}

func New(repo metadata.Repository, src Source, log logging.Logger) *Cache {
	return &Cache{repo: repo, src: src, log: log, now: time.Now}
}

// Get returns the cached quote while it is valid, otherwise fetches and
// stores a new one. ok is false only when no quote can be shown; errors are
// logged, never returned.
func (c *Cache) Get(ctx context.Context) (*models.Quote, bool) {
	now := c.now()

	if cached, ok := c.read(ctx); ok && cached.IsValid(now) {
		q := cached.Quote
		return &q, true
	}

	q, err := c.src.Fetch(ctx)
	if err != nil || q == nil {
		c.log.Warn(ctx, "quote unavailable", "error", err)
		return nil, false
	}

	c.write(ctx, models.CachedQuote{Quote: *q, Window: models.WindowAt(now)})
	return q, true
}

func (c *Cache) read(ctx context.Context) (models.CachedQuote, bool) {
	var out models.CachedQuote

	rawQuote, err := c.repo.Get(ctx, metadata.KeyCachedQuote)
	if err != nil {
		c.log.Debug(ctx, "quote cache unreadable", "error", err)
		return out, false
	}
	rawWindow, err := c.repo.Get(ctx, metadata.KeyCachedQuoteTime)
	if err != nil {
		c.log.Debug(ctx, "quote cache unreadable", "error", err)
		return out, false
	}
	if rawQuote == nil || rawWindow == nil {
		return out, false
	}

	if err := json.Unmarshal(rawQuote, &out.Quote); err != nil {
		c.log.Debug(ctx, "quote cache corrupted", "error", err)
		return out, false
	}
	if err := json.Unmarshal(rawWindow, &out.Window); err != nil {
		c.log.Debug(ctx, "quote cache corrupted", "error", err)
		return out, false
	}
	return out, true
}

func (c *Cache) write(ctx context.Context, cq models.CachedQuote) {
	rawQuote, err := json.Marshal(cq.Quote)
	if err != nil {
		c.log.Warn(ctx, "quote not cached", "error", err)
		return
	}
	rawWindow, err := json.Marshal(cq.Window)
	if err != nil {
		c.log.Warn(ctx, "quote not cached", "error", err)
		return
	}
	err = c.repo.SetMany(ctx, map[string][]byte{
		metadata.KeyCachedQuote:     rawQuote,
		metadata.KeyCachedQuoteTime: rawWindow,
	})
	if err != nil {
		c.log.Warn(ctx, "quote not cached", "error", err)
	}
}
