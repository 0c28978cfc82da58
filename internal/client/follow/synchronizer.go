// Package follow applies follow/unfollow optimistically to displayed
// profiles and rolls the change back when the backend rejects it.
package follow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/logging"
)

type Action string

const (
	ActionFollow   Action = "follow"
	ActionUnfollow Action = "unfollow"
)

// Phase tags a displayed profile. A profile is Pending only while its
// toggle is on the wire.
type Phase int

const (
	PhaseConfirmed Phase = iota
	PhasePending
)

// Client is the backend surface the synchronizer needs.
type Client interface {
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error
}

// ProfileState is what a profile view renders.
type ProfileState struct {
	User  models.UserSummary
	Phase Phase
	// Err is the last rejected toggle, cleared by the next success.
	Err error
}

type Synchronizer struct {
	client Client
	log    logging.Logger

	mu        sync.Mutex
	displayed map[string]ProfileState
	inFlight  map[string]struct{}
}

func NewSynchronizer(c Client, log logging.Logger) *Synchronizer {
	return &Synchronizer{
		client:    c,
		log:       log,
		displayed: make(map[string]ProfileState),
		inFlight:  make(map[string]struct{}),
	}
}

// Show marks u as displayed. A toggle in flight for u keeps its pending
// state; otherwise u replaces what was shown.
func (s *Synchronizer) Show(u models.UserSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[u.ID]; busy {
		if _, ok := s.displayed[u.ID]; ok {
			return
		}
	}
	s.displayed[u.ID] = ProfileState{User: u.Clone()}
}

// Hide forgets a profile. A toggle still in flight for it completes but its
// result is not applied anywhere.
func (s *Synchronizer) Hide(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.displayed, profileID)
}

func (s *Synchronizer) Displayed(profileID string) (ProfileState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.displayed[profileID]
	if !ok {
		return ProfileState{}, false
	}
	st.User = st.User.Clone()
	return st, true
}

// InFlight reports whether the toggle control for profileID is disabled.
func (s *Synchronizer) InFlight(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[profileID]
	return ok
}

// IsFollowing reports whether currentID is in profile's followers.
func IsFollowing(profile models.UserSummary, currentID string) bool {
	return profile.HasFollower(currentID)
}

// Toggle flips current's membership in profile.Followers. The flipped copy
// is displayed at once as pending, then confirmed on success or replaced by
// the exact prior copy on failure. At most one toggle per profile is in
// flight; a second call fails with ErrToggleInFlight without touching the
// backend.
func (s *Synchronizer) Toggle(ctx context.Context, profile models.UserSummary, current *models.UserSummary) (models.UserSummary, error) {
	if current == nil || current.ID == "" {
		return profile, ErrNoCurrentUser
	}
	if current.ID == profile.ID {
		return profile, ErrSelfFollow
	}

	prior := profile.Clone()
	action := ActionFollow
	optimistic := prior.WithFollower(current.ID)
	if IsFollowing(prior, current.ID) {
		action = ActionUnfollow
		optimistic = prior.WithoutFollower(current.ID)
	}

	s.mu.Lock()
	if _, busy := s.inFlight[profile.ID]; busy {
		s.mu.Unlock()
		return prior, ErrToggleInFlight
	}
	s.inFlight[profile.ID] = struct{}{}
	if _, ok := s.displayed[profile.ID]; ok {
		s.displayed[profile.ID] = ProfileState{User: optimistic.Clone(), Phase: PhasePending}
	}
	s.mu.Unlock()

	var err error
	if action == ActionFollow {
		err = s.client.Follow(ctx, profile.ID)
	} else {
		err = s.client.Unfollow(ctx, profile.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, profile.ID)
	_, shown := s.displayed[profile.ID]

	if err != nil {
		ferr := &FollowError{ProfileID: profile.ID, Action: action, Err: err}
		if shown {
			s.displayed[profile.ID] = ProfileState{User: prior.Clone(), Err: ferr}
		}
		s.log.Warn(ctx, "follow toggle rolled back", "profile", profile.ID, "action", string(action), "error", err)
		return prior, ferr
	}

	if shown {
		s.displayed[profile.ID] = ProfileState{User: optimistic.Clone()}
	} else {
		s.log.Debug(ctx, "profile no longer displayed, toggle result not applied", "profile", profile.ID)
	}
	return optimistic, nil
}
