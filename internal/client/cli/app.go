package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/client"
	"github.com/dmitrijs2005/blogit/internal/client/config"
	"github.com/dmitrijs2005/blogit/internal/client/follow"
	"github.com/dmitrijs2005/blogit/internal/client/guard"
	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/notifications"
	"github.com/dmitrijs2005/blogit/internal/client/quotecache"
	"github.com/dmitrijs2005/blogit/internal/client/quotes"
	"github.com/dmitrijs2005/blogit/internal/client/services"
	"github.com/dmitrijs2005/blogit/internal/client/session"
	"github.com/dmitrijs2005/blogit/internal/logging"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Manager
	guard   *guard.Guard
	poller  *notifications.Poller
	follows *follow.Synchronizer
	quotes  *quotecache.Cache
	posts   services.PostService
	users   services.UserService

	reader *bufio.Reader
	out    io.Writer
	close  func() error

	mu      sync.Mutex
	view    guard.View
	profile *models.Profile
}

// NewApp opens the local store and builds every client component from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, closeStore, err := client.OpenMetadataStore(ctx, c.StoreDriver, c.StoreDSN, c.RedisAddr)
	if err != nil {
		log.Error(ctx, "error opening local store", "driver", c.StoreDriver, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.BackendURL, c.RequestTimeout)
	sess := session.NewManager(services.NewAuthService(api, store, log), log)
	api.OnUnauthorized(sess.Invalidate)

	quoteTimeout := c.RequestTimeout
	if quoteTimeout <= 0 {
		quoteTimeout = 10 * time.Second
	}
	qc := quotecache.New(store, quotes.NewNinjasClient(c.QuoteURL, c.QuoteAPIKey, quoteTimeout), log)

	a := &App{
		config:  c,
		log:     log,
		session: sess,
		guard:   guard.New(sess),
		poller:  notifications.NewPoller(api, c.PollInterval, log),
		follows: follow.NewSynchronizer(api, log),
		quotes:  qc,
		posts:   services.NewPostService(api),
		users:   services.NewUserService(api),
		close:   closeStore,
	}
	a.setIO(os.Stdin, os.Stdout)
	return a, nil
}

func (a *App) setIO(in io.Reader, out io.Writer) {
	a.reader, a.out = bufio.NewReader(in), out
}

// Run restores the session in the background and runs the REPL until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := a.session.Subscribe(a.onSession)
	defer unsubscribe()
	defer a.poller.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.StartRestoreWatcher(gctx, a.config.RestoreRetryInterval)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		a.Root(gctx)
		return nil
	})
	err := g.Wait()

	if a.close != nil {
		if cerr := a.close(); cerr != nil {
			a.log.Warn(context.Background(), "error closing local store", "error", cerr)
		}
	}
	return err
}

// onSession keeps the poller and the displayed profile in step with the
// session.
func (a *App) onSession(s models.Session) {
	a.poller.HandleSession(s)
	if s.Status == models.StatusAnonymous {
		a.leaveProfile()
	}
}

// StartRestoreWatcher resolves the persisted session, retrying every
// interval while the backend cannot be reached.
func (a *App) StartRestoreWatcher(ctx context.Context, interval time.Duration) {
	if a.restore(ctx) {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if a.restore(ctx) {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// restore reports whether the session left the loading state.
func (a *App) restore(ctx context.Context) bool {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore pending", "error", err)
	}
	return a.session.Status() != models.StatusLoading
}

func (a *App) getStatus() string {
	s := a.session.Session()
	label := string(s.Status)
	if s.User != nil {
		label = s.User.Username + " " + label
	}
	if n := a.poller.Count(); n > 0 {
		label = fmt.Sprintf("%s, %d new", label, n)
	}
	return fmt.Sprintf("(%s)", label)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to BlogIT CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// enter routes a view through the guard. It returns false when the command
// must not run.
func (a *App) enter(v guard.View) bool {
	out := a.guard.Check(v)
	switch out.Decision {
	case guard.Allow:
		a.setView(v)
		return true
	case guard.Wait:
		fmt.Fprintln(a.out, "Restoring session, please wait...")
		return false
	default:
		fmt.Fprintln(a.out, "Please log in first.")
		a.setView(out.Target)
		return false
	}
}

func (a *App) setView(v guard.View) {
	if v != guard.ViewProfile {
		a.leaveProfile()
	}
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

func (a *App) currentView() guard.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
