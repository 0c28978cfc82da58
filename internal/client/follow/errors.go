package follow

import (
	"errors"
	"fmt"
)

var (
	ErrToggleInFlight = errors.New("follow request already in progress for this profile")
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrNoCurrentUser  = errors.New("not signed in")
)

// FollowError reports a rejected follow or unfollow. The profile has
// already been rolled back when it is returned.
type FollowError struct {
	ProfileID string
	Action    Action
	Err       error
}

func (e *FollowError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Action, e.ProfileID, e.Err)
}

func (e *FollowError) Unwrap() error { return e.Err }
