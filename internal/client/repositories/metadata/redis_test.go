package metadata

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, ""), mr
}

func TestRedisRepository_SetGetDelete(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("jwt")))
	assert.True(t, mr.Exists(DefaultRedisPrefix+KeyToken))

	v, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("jwt"), v)

	require.NoError(t, r.Delete(ctx, KeyToken))
	v, err = r.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedisRepository_SetManyKeepsPrefix(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("foreign", "untouched"))

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		KeyCachedQuote:     []byte("q"),
		KeyCachedQuoteTime: []byte("t"),
	}))

	assert.True(t, mr.Exists(DefaultRedisPrefix+KeyCachedQuote))
	assert.True(t, mr.Exists(DefaultRedisPrefix+KeyCachedQuoteTime))
	for key, want := range map[string][]byte{KeyCachedQuote: []byte("q"), KeyCachedQuoteTime: []byte("t")} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	got, err := mr.Get("foreign")
	require.NoError(t, err)
	assert.Equal(t, "untouched", got)
}

func TestRedisRepository_ServerDown(t *testing.T) {
	r, mr := setupRedis(t)
	mr.Close()

	_, err := r.Get(context.Background(), KeyToken)
	require.ErrorContains(t, err, "failed to get metadata[token]")
	require.Error(t, r.SetMany(context.Background(), map[string][]byte{"a": nil}))
}
