package session

import (
	"errors"
	"fmt"
)

// ErrAlreadyAuthenticated is returned by Login while another identity is
// signed in. Logout first.
var ErrAlreadyAuthenticated = errors.New("already signed in, log out first")

// AuthError wraps a failed login or registration. Err carries the backend's
// message.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
