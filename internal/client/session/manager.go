// Package session owns the client's authentication state: the bearer token,
// the signed-in user and the loading/authenticated/anonymous status.
//
// State changes only through Restore, Login, Logout and Invalidate.
// Dependents observe it with Subscribe instead of reading shared fields.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/client"
	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/services"
	"github.com/dmitrijs2005/blogit/internal/logging"
)

// Manager is an observable session container. It is safe for concurrent use.
type Manager struct {
	auth services.AuthService
	log  logging.Logger
	now  func() time.Time

	// opMu serializes flows that talk to the backend (restore, login,
	// register) so they never race on the transport's access token.
	opMu sync.Mutex

	mu            sync.Mutex
	state         models.Session
	restoreCancel context.CancelFunc
	subs   map[int]func(models.Session)
	nextID int

	notifyMu sync.Mutex
}

// NewManager returns a Manager in StatusLoading. Call Restore to resolve it.
func NewManager(auth services.AuthService, log logging.Logger) *Manager {
	return &Manager{
		auth:  auth,
		log:   log,
		now:   time.Now,
		state: models.Session{Status: models.StatusLoading},
		subs:  make(map[int]func(models.Session)),
	}
}

// Session returns a copy of the current session.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

func (m *Manager) Status() models.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Status
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Authenticated()
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *models.UserSummary {
	s := m.Session()
	if !s.Authenticated() {
		return nil
	}
	return s.User
}

// Subscribe registers fn to be called after every state transition. fn
// receives the latest session and is never called with m's lock held.
// The returned func removes the subscription.
func (m *Manager) Subscribe(fn func(models.Session)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Restore resolves the session from the persisted token.
//
// No token, or a JWT that has already expired, ends in StatusAnonymous. A
// token the backend rejects ends in StatusAnonymous with the token erased.
// Any other verification failure leaves the session in StatusLoading and is
// returned so the caller can retry later. A pending Restore is cancelled by
// Login and Register.
func (m *Manager) Restore(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.restoreCancel = cancel
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.restoreCancel = nil
		m.mu.Unlock()
		cancel()
	}()

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if s := m.Session(); s.Status != models.StatusLoading {
		return nil
	}

	token, err := m.auth.StoredToken(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored token unreadable", "error", err)
		token = ""
	}
	if token == "" {
		m.transition(models.Session{Status: models.StatusAnonymous})
		return nil
	}
	if tokenExpired(token, m.now()) {
		m.log.Info(ctx, "stored token expired")
		m.clearPersisted(ctx)
		m.transition(models.Session{Status: models.StatusAnonymous})
		return nil
	}

	m.transition(models.Session{Token: token, Status: models.StatusLoading})

	user, err := m.auth.Verify(ctx, token)
	switch {
	case err == nil:
		if m.replaceIf(token, models.StatusLoading, models.Session{Token: token, User: user, Status: models.StatusAuthenticated}) {
			m.log.Info(ctx, "session restored", "user", user.Username)
			return nil
		}
		m.log.Debug(ctx, "session changed during restore, result discarded")
		if m.Status() == models.StatusAnonymous {
			m.clearPersisted(ctx)
		}
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		m.log.Info(ctx, "stored token rejected")
		m.Invalidate(token)
		return nil
	default:
		return err
	}
}

// Login signs in. It fails with ErrAlreadyAuthenticated while another
// identity is active and with *AuthError when the backend refuses; the prior
// session is untouched in both cases.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	m.interruptRestore()
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.IsAuthenticated() {
		return models.Session{}, ErrAlreadyAuthenticated
	}

	token, user, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return models.Session{}, &AuthError{Op: "login", Err: err}
	}

	s := models.Session{Token: token, User: user, Status: models.StatusAuthenticated}
	m.transition(s)
	m.log.Info(ctx, "signed in", "user", user.Username)
	return s.Clone(), nil
}

// Register creates an account. It does not sign in.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	m.interruptRestore()
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.auth.Register(ctx, username, email, password); err != nil {
		return &AuthError{Op: "register", Err: err}
	}
	return nil
}

// Logout clears the session, erases the persisted token and notifies
// subscribers. The in-memory state is anonymous even when erasing fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.transition(models.Session{Status: models.StatusAnonymous})
	if err := m.auth.ClearToken(ctx); err != nil {
		m.log.Warn(ctx, "token not erased", "error", err)
		return err
	}
	m.log.Info(ctx, "signed out")
	return nil
}

// Invalidate drops the session after the backend rejected rejectedToken.
// It is a no-op when rejectedToken is no longer the active token, so a late
// 401 for an old identity cannot sign out a newer one.
func (m *Manager) Invalidate(rejectedToken string) {
	if rejectedToken == "" {
		return
	}
	next := models.Session{Status: models.StatusAnonymous}
	if !m.replaceIf(rejectedToken, "", next) {
		return
	}
	ctx := context.Background()
	m.clearPersisted(ctx)
	m.log.Info(ctx, "session invalidated by backend")
}

// interruptRestore cancels a Restore waiting on the backend so an explicit
// user action does not queue behind it.
func (m *Manager) interruptRestore() {
	m.mu.Lock()
	cancel := m.restoreCancel
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (m *Manager) clearPersisted(ctx context.Context) {
	if err := m.auth.ClearToken(ctx); err != nil {
		m.log.Warn(ctx, "token not erased", "error", err)
	}
}

func (m *Manager) transition(next models.Session) {
	m.mu.Lock()
	m.state = next.Clone()
	m.mu.Unlock()
	m.notify()
}

// replaceIf swaps in next when the active token is token and, if status is
// not empty, the active status is status.
func (m *Manager) replaceIf(token string, status models.Status, next models.Session) bool {
	m.mu.Lock()
	if m.state.Token != token || (status != "" && m.state.Status != status) {
		m.mu.Unlock()
		return false
	}
	m.state = next.Clone()
	m.mu.Unlock()
	m.notify()
	return true
}

// notify delivers the latest state, not the state that triggered it, so a
// subscriber never ends on a stale value when transitions interleave.
func (m *Manager) notify() {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	s := m.state.Clone()
	fns := make([]func(models.Session), 0, len(m.subs))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s.Clone())
	}
}
