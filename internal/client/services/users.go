package services

import (
	"context"

	"github.com/dmitrijs2005/blogit/internal/client/client"
	"github.com/dmitrijs2005/blogit/internal/client/models"
)

type UserService interface {
	All(ctx context.Context) ([]models.UserSummary, error)
	Profile(ctx context.Context, username string) (*models.Profile, error)
	Followers(ctx context.Context) ([]models.UserSummary, error)
	Following(ctx context.Context) ([]models.UserSummary, error)
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) All(ctx context.Context) ([]models.UserSummary, error) {
	return s.client.AllUsers(ctx)
}

func (s *userService) Profile(ctx context.Context, username string) (*models.Profile, error) {
	return s.client.Profile(ctx, username)
}

func (s *userService) Followers(ctx context.Context) ([]models.UserSummary, error) {
	return s.client.Followers(ctx)
}

func (s *userService) Following(ctx context.Context) ([]models.UserSummary, error) {
	return s.client.Following(ctx)
}
