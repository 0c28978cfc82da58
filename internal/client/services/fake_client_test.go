package services

import (
	"context"

	"github.com/dmitrijs2005/blogit/internal/client/models"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginToken string
	LoginUser  *models.UserSummary
	LoginErr   error

	RegisterErr error

	CurrentUserRet *models.UserSummary
	CurrentUserErr error

	Posts      []models.Post
	ListErr    error
	CreateErr  error
	DeleteErr  error
	Users      []models.UserSummary
	ProfileRet *models.Profile

	Token             string
	LastLoginUser     string
	LastRegisterEmail string
	LastPage          int
	LastLimit         int
	LastTitle         string
	LastContent       string
	LastDeleted       string
	LastProfile       string
	Calls             int
}

func (f *fakeClient) SetAccessToken(token string) { f.Token = token }

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, *models.UserSummary, error) {
	f.Calls++
	f.LastLoginUser = username
	return f.LoginToken, f.LoginUser, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) (*models.UserSummary, error) {
	f.Calls++
	f.LastRegisterEmail = email
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.UserSummary{ID: "new", Username: username, Email: email}, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.UserSummary, error) {
	f.Calls++
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) FollowNotifications(ctx context.Context) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeClient) Follow(ctx context.Context, userID string) error   { return nil }
func (f *fakeClient) Unfollow(ctx context.Context, userID string) error { return nil }

func (f *fakeClient) Profile(ctx context.Context, username string) (*models.Profile, error) {
	f.LastProfile = username
	return f.ProfileRet, nil
}

func (f *fakeClient) Followers(ctx context.Context) ([]models.UserSummary, error) { return f.Users, nil }
func (f *fakeClient) Following(ctx context.Context) ([]models.UserSummary, error) { return f.Users, nil }
func (f *fakeClient) AllUsers(ctx context.Context) ([]models.UserSummary, error)  { return f.Users, nil }

func (f *fakeClient) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	f.Calls++
	f.LastTitle, f.LastContent = title, content
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return &models.Post{ID: "p1", Title: title, Content: content}, nil
}

func (f *fakeClient) ListPosts(ctx context.Context, page, limit int) ([]models.Post, error) {
	f.LastPage, f.LastLimit = page, limit
	return f.Posts, f.ListErr
}

func (f *fakeClient) DeletePost(ctx context.Context, postID string) error {
	f.LastDeleted = postID
	return f.DeleteErr
}
