// Package notifications polls the backend for new-follower events while a
// session is authenticated.
package notifications

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/logging"
)

// DefaultInterval is the reference polling period.
const DefaultInterval = 30 * time.Second

// Fetcher is the backend call the poller repeats.
type Fetcher interface {
	FollowNotifications(ctx context.Context) ([]models.Notification, error)
}

// Poller is inactive until Start and after Stop. While active it fetches
// immediately, then on every tick, never with two fetches of one run in
// flight. Each successful response replaces the displayed list.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	log      logging.Logger
	now      func() time.Time

	mu     sync.Mutex
	active bool
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	items  []models.Notification
}

func NewPoller(f Fetcher, interval time.Duration, log logging.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{fetcher: f, interval: interval, log: log, now: time.Now}
}

// Start activates the poller. Calling Start on an active poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return
	}
	p.active = true
	p.gen++

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done
	go p.run(runCtx, p.gen, done)
}

// Stop cancels the timer, clears the list and waits for the loop to exit.
// A fetch already on the wire completes but its result is dropped.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	p.gen++
	p.items = nil
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	cancel()
	<-done
}

// HandleSession starts or stops the poller to follow s. It is meant to be
// passed to session.Manager.Subscribe.
func (p *Poller) HandleSession(s models.Session) {
	if s.Authenticated() {
		p.Start(context.Background())
		return
	}
	p.Stop()
}

func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Snapshot returns a copy of the displayed notifications.
func (p *Poller) Snapshot() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Notification, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Acknowledge clears the list and count and returns the entry for
// subjectUserID so the caller can navigate to that profile. Nothing is sent
// to the backend.
func (p *Poller) Acknowledge(subjectUserID string) (models.Notification, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range p.items {
		if n.SubjectUserID == subjectUserID {
			p.items = nil
			return n, true
		}
	}
	return models.Notification{}, false
}

func (p *Poller) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	var busy atomic.Bool
	p.tick(ctx, gen, &busy)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.tick(ctx, gen, &busy)
		}
	}
}

func (p *Poller) tick(ctx context.Context, gen uint64, busy *atomic.Bool) {
	if !busy.CompareAndSwap(false, true) {
		p.log.Debug(ctx, "notification fetch still pending, tick skipped")
		return
	}
	go func() {
		defer busy.Store(false)
		list, err := p.fetcher.FollowNotifications(context.WithoutCancel(ctx))
		p.apply(ctx, gen, list, err)
	}()
}

func (p *Poller) apply(ctx context.Context, gen uint64, list []models.Notification, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active || p.gen != gen {
		p.log.Debug(ctx, "late notification result discarded")
		return
	}
	if err != nil {
		p.log.Warn(ctx, "notification fetch failed", "error", err)
		return
	}
	p.items = merge(p.items, list, p.now())
}

// merge dedupes next by subject, in response order. A subject already
// displayed keeps its first ObservedAt.
func merge(prev, next []models.Notification, now time.Time) []models.Notification {
	seen := make(map[string]time.Time, len(prev))
	for _, n := range prev {
		seen[n.SubjectUserID] = n.ObservedAt
	}

	out := make([]models.Notification, 0, len(next))
	added := make(map[string]struct{}, len(next))
	for _, n := range next {
		if n.SubjectUserID == "" {
			continue
		}
		if _, dup := added[n.SubjectUserID]; dup {
			continue
		}
		added[n.SubjectUserID] = struct{}{}

		switch at, ok := seen[n.SubjectUserID]; {
		case ok:
			n.ObservedAt = at
		case n.ObservedAt.IsZero():
			n.ObservedAt = now
		}
		out = append(out, n)
	}
	return out
}
