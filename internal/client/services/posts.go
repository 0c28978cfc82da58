package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/blogit/internal/client/client"
	"github.com/dmitrijs2005/blogit/internal/client/models"
)

const (
	DefaultFeedPage  = 1
	DefaultFeedLimit = 100
)

var ErrEmptyPost = errors.New("title and content are required")

type PostService interface {
	Create(ctx context.Context, title, content string) (*models.Post, error)
	Feed(ctx context.Context, page, limit int) ([]models.Post, error)
	Delete(ctx context.Context, postID string) error
}

type postService struct {
	client client.Client
}

func NewPostService(c client.Client) PostService {
	return &postService{client: c}
}

func (s *postService) Create(ctx context.Context, title, content string) (*models.Post, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrEmptyPost
	}
	return s.client.CreatePost(ctx, title, content)
}

// Feed lists posts newest first as served by the backend. Non-positive
// page or limit fall back to the defaults.
func (s *postService) Feed(ctx context.Context, page, limit int) ([]models.Post, error) {
	if page <= 0 {
		page = DefaultFeedPage
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return s.client.ListPosts(ctx, page, limit)
}

func (s *postService) Delete(ctx context.Context, postID string) error {
	return s.client.DeletePost(ctx, postID)
}
