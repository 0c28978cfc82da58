package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateValidates(t *testing.T) {
	fc := &fakeClient{}
	svc := NewPostService(fc)

	_, err := svc.Create(context.Background(), "  ", "body")
	require.ErrorIs(t, err, ErrEmptyPost)
	_, err = svc.Create(context.Background(), "title", "\n")
	require.ErrorIs(t, err, ErrEmptyPost)
	assert.Zero(t, fc.Calls)

	p, err := svc.Create(context.Background(), " Hello ", " world ")
	require.NoError(t, err)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "world", fc.LastContent)
}

func TestPostService_FeedDefaults(t *testing.T) {
	fc := &fakeClient{Posts: []models.Post{{ID: "p1"}}}
	svc := NewPostService(fc)

	posts, err := svc.Feed(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, DefaultFeedPage, fc.LastPage)
	assert.Equal(t, DefaultFeedLimit, fc.LastLimit)

	_, err = svc.Feed(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, fc.LastPage)
	assert.Equal(t, 5, fc.LastLimit)
}

func TestPostService_Delete(t *testing.T) {
	fc := &fakeClient{}
	svc := NewPostService(fc)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	assert.Equal(t, "p1", fc.LastDeleted)

	fc.DeleteErr = errors.New("forbidden")
	require.Error(t, svc.Delete(context.Background(), "p2"))
}

func TestUserService_Passthrough(t *testing.T) {
	fc := &fakeClient{
		Users:      []models.UserSummary{{ID: "u1"}, {ID: "u2"}},
		ProfileRet: &models.Profile{User: models.UserSummary{ID: "u2", Username: "bob"}},
	}
	svc := NewUserService(fc)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	p, err := svc.Profile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "u2", p.User.ID)
	assert.Equal(t, "bob", fc.LastProfile)

	followers, err := svc.Followers(ctx)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.Following(ctx)
	require.NoError(t, err)
	assert.Len(t, following, 2)
}
