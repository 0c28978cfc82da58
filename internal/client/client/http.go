package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/common"
	"github.com/google/uuid"
)

// HTTPClient talks to the BlogIT REST backend with JSON payloads and a
// bearer token on authenticated calls.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.RWMutex
	accessToken    string
	onUnauthorized func(rejectedToken string)
}

// NewHTTPClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// OnUnauthorized registers fn to be called with the token the backend
// rejected whenever an authenticated call gets a 401.
func (c *HTTPClient) OnUnauthorized(fn func(rejectedToken string)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *HTTPClient) token() (string, func(string)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.onUnauthorized
}

type authResponse struct {
	Token string              `json:"token"`
	User  *models.UserSummary `json:"user"`
}

type userResponse struct {
	User *models.UserSummary `json:"user"`
}

type notificationsResponse struct {
	Notifications []struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	} `json:"notifications"`
}

type usersResponse struct {
	Users     []models.UserSummary `json:"users"`
	Followers []models.UserSummary `json:"followers"`
	Following []models.UserSummary `json:"following"`
}

type postsResponse struct {
	Posts []models.Post `json:"posts"`
}

type postResponse struct {
	Post *models.Post `json:"post"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.UserSummary, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", false, payload, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, fmt.Errorf("login response without token or user")
	}
	resp.User.Normalize()
	return resp.Token, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.UserSummary, error) {
	payload := map[string]string{"username": username, "email": email, "password": password}
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", false, payload, &resp); err != nil {
		return nil, err
	}
	if resp.User != nil {
		resp.User.Normalize()
	}
	return resp.User, nil
}

// CurrentUser returns the account the access token belongs to. The backend
// answers either {"user": {...}} or the bare user object.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.UserSummary, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/user/userdata", true, nil, &raw); err != nil {
		return nil, err
	}

	var wrapped userResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		wrapped.User.Normalize()
		return wrapped.User, nil
	}

	var u models.UserSummary
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("user response without id")
	}
	u.Normalize()
	return &u, nil
}

func (c *HTTPClient) FollowNotifications(ctx context.Context) ([]models.Notification, error) {
	var resp notificationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/follownotifications", true, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(resp.Notifications))
	for _, n := range resp.Notifications {
		out = append(out, models.Notification{SubjectUserID: n.ID, Username: n.Username})
	}
	return out, nil
}

func (c *HTTPClient) Follow(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/user/follow/"+url.PathEscape(userID), true, nil, nil)
}

func (c *HTTPClient) Unfollow(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodPost, "/user/unfollow/"+url.PathEscape(userID), true, nil, nil)
}

func (c *HTTPClient) Profile(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+url.PathEscape(username), true, nil, &p); err != nil {
		return nil, err
	}
	p.User.Normalize()
	return &p, nil
}

func (c *HTTPClient) Followers(ctx context.Context) ([]models.UserSummary, error) {
	var resp usersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/followers", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Followers, nil
}

func (c *HTTPClient) Following(ctx context.Context) ([]models.UserSummary, error) {
	var resp usersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/following", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Following, nil
}

func (c *HTTPClient) AllUsers(ctx context.Context) ([]models.UserSummary, error) {
	var resp usersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/allusers", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	payload := map[string]string{"title": title, "content": content}
	var resp postResponse
	if err := c.doJSON(ctx, http.MethodPost, "/post", true, payload, &resp); err != nil {
		return nil, err
	}
	return resp.Post, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, page, limit int) ([]models.Post, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp postsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/post?"+q.Encode(), true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/post/delete/"+url.PathEscape(postID), true, nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, authenticated bool, payload any, out any) error {
	token, onUnauthorized := c.token()
	if authenticated && token == "" {
		return ErrUnauthorized
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if authenticated {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		if authenticated && errors.Is(apiErr, ErrUnauthorized) && onUnauthorized != nil {
			onUnauthorized(token)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}
