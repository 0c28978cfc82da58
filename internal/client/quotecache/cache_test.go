package quotecache

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogit/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeSource struct {
	Quotes []models.Quote
	Err    error
	Calls  int
}

func (f *fakeSource) Fetch(ctx context.Context) (*models.Quote, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	q := f.Quotes[(f.Calls-1)%len(f.Quotes)]
	return &q, nil
}

func setupRepo(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return metadata.NewSQLiteRepository(db)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCache(t *testing.T, repo metadata.Repository, src Source, at time.Time) (*Cache, *clock) {
	t.Helper()
	c := New(repo, src, logging.Nop())
	clk := &clock{t: at}
	c.now = clk.now
	return c, clk
}

var (
	q1 = models.Quote{Text: "first", Author: "A"}
	q2 = models.Quote{Text: "second", Author: "B"}
)

func TestGet_SameHourServesFromCache(t *testing.T) {
	src := &fakeSource{Quotes: []models.Quote{q1, q2}}
	c, clk := newCache(t, setupRepo(t), src, time.Date(2024, 5, 1, 14, 5, 0, 0, time.UTC))

	a, ok := c.Get(context.Background())
	require.True(t, ok)
	clk.t = clk.t.Add(50 * time.Minute)
	b, ok := c.Get(context.Background())
	require.True(t, ok)

	assert.Equal(t, 1, src.Calls)
	assert.Equal(t, *a, *b)
}

func TestGet_NextHourFetchesOnce(t *testing.T) {
	src := &fakeSource{Quotes: []models.Quote{q1, q2}}
	c, clk := newCache(t, setupRepo(t), src, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))

	_, _ = c.Get(context.Background())
	_, _ = c.Get(context.Background())
	require.Equal(t, 1, src.Calls)

	clk.t = time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, q2, *got)
	_, _ = c.Get(context.Background())
	assert.Equal(t, 2, src.Calls)
}

func TestGet_SameHourNextDayRefetches(t *testing.T) {
	src := &fakeSource{Quotes: []models.Quote{q1, q2}}
	c, clk := newCache(t, setupRepo(t), src, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	_, _ = c.Get(context.Background())
	clk.t = clk.t.AddDate(0, 0, 1)
	_, _ = c.Get(context.Background())
	assert.Equal(t, 2, src.Calls)
}

func TestGet_PersistsBothKeys(t *testing.T) {
	repo := setupRepo(t)
	src := &fakeSource{Quotes: []models.Quote{q1}}
	c, _ := newCache(t, repo, src, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, ok := c.Get(ctx)
	require.True(t, ok)

	rawQuote, err := repo.Get(ctx, metadata.KeyCachedQuote)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quote":"first","author":"A"}`, string(rawQuote))

	rawWindow, err := repo.Get(ctx, metadata.KeyCachedQuoteTime)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hour":14,"date":"2024-05-01"}`, string(rawWindow))
}

func TestGet_CorruptedCacheIsMiss(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, metadata.KeyCachedQuote, []byte("{not json")))
	require.NoError(t, repo.Set(ctx, metadata.KeyCachedQuoteTime, []byte(`{"hour":14,"date":"2024-05-01"}`)))

	src := &fakeSource{Quotes: []models.Quote{q1}}
	c, _ := newCache(t, repo, src, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))

	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, q1, *got)
	assert.Equal(t, 1, src.Calls)
}

func TestGet_MissingWindowIsMiss(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, metadata.KeyCachedQuote, []byte(`{"quote":"old","author":"X"}`)))

	src := &fakeSource{Quotes: []models.Quote{q1}}
	c, _ := newCache(t, repo, src, time.Now())

	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "first", got.Text)
}

func TestGet_FetchFailureDegrades(t *testing.T) {
	src := &fakeSource{Err: errors.New("503")}
	c, _ := newCache(t, setupRepo(t), src, time.Now())

	got, ok := c.Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGet_StaleCacheAndFetchFailure(t *testing.T) {
	repo := setupRepo(t)
	src := &fakeSource{Quotes: []models.Quote{q1}}
	c, clk := newCache(t, repo, src, time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC))
	_, _ = c.Get(context.Background())

	src.Err = errors.New("offline")
	clk.t = clk.t.Add(time.Hour)
	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestGet_StoreUnavailableStillServes(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rc.Close() })
	repo := metadata.NewRedisRepository(rc, "")
	mr.Close()

	src := &fakeSource{Quotes: []models.Quote{q1, q2}}
	c, _ := newCache(t, repo, src, time.Now())

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, q1, *got)

	got, ok = c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, q2, *got, "nothing could be cached so the next call fetches again")
}
