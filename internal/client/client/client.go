package client

import (
	"context"

	"github.com/dmitrijs2005/blogit/internal/client/models"
)

// Client is the backend contract consumed by the BlogIT client.
// Methods other than Login and Register require an access token set with
// SetAccessToken and fail with ErrUnauthorized without one.
type Client interface {
	SetAccessToken(token string)

	Login(ctx context.Context, username, password string) (string, *models.UserSummary, error)
	Register(ctx context.Context, username, email, password string) (*models.UserSummary, error)
	CurrentUser(ctx context.Context) (*models.UserSummary, error)

	FollowNotifications(ctx context.Context) ([]models.Notification, error)
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error

	Profile(ctx context.Context, username string) (*models.Profile, error)
	Followers(ctx context.Context) ([]models.UserSummary, error)
	Following(ctx context.Context) ([]models.UserSummary, error)
	AllUsers(ctx context.Context) ([]models.UserSummary, error)

	CreatePost(ctx context.Context, title, content string) (*models.Post, error)
	ListPosts(ctx context.Context, page, limit int) ([]models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}
