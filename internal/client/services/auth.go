// Package services contains the application services of the BlogIT client.
// This file defines the authentication service: backend login/register and
// durable storage of the bearer token.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogit/internal/client/client"
	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogit/internal/logging"
)

var ErrMissingCredentials = errors.New("username and password are required")

// AuthService defines authentication operations.
//
// Contract:
//   - Login: authenticate against the backend and persist the token.
//   - Register: create an account; does not sign in.
//   - StoredToken: the token persisted by an earlier Login, "" if none.
//   - Verify: attach token to the transport and ask the backend who it belongs to.
//   - ClearToken: detach and erase the persisted token.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *models.UserSummary, error)
	Register(ctx context.Context, username, email, password string) error
	StoredToken(ctx context.Context) (string, error)
	Verify(ctx context.Context, token string) (*models.UserSummary, error)
	ClearToken(ctx context.Context) error
}

type authService struct {
	client client.Client
	repo   metadata.Repository
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and key/value store.
func NewAuthService(c client.Client, repo metadata.Repository, log logging.Logger) AuthService {
	return &authService{client: c, repo: repo, log: log}
}

// Login signs in and persists the returned token. A persistence failure is
// logged, not returned: the session still works, it just won't survive a
// restart.
func (a *authService) Login(ctx context.Context, username, password string) (string, *models.UserSummary, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	token, user, err := a.client.Login(ctx, username, password)
	if err != nil {
		return "", nil, fmt.Errorf("login error: %w", err)
	}

	a.client.SetAccessToken(token)
	if err := a.repo.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
		a.log.Warn(ctx, "token not persisted", "error", err)
	}
	return token, user, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrMissingCredentials
	}
	if _, err := a.client.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

func (a *authService) StoredToken(ctx context.Context) (string, error) {
	b, err := a.repo.Get(ctx, metadata.KeyToken)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *authService) Verify(ctx context.Context, token string) (*models.UserSummary, error) {
	a.client.SetAccessToken(token)
	return a.client.CurrentUser(ctx)
}

func (a *authService) ClearToken(ctx context.Context) error {
	a.client.SetAccessToken("")
	return a.repo.Delete(ctx, metadata.KeyToken)
}
