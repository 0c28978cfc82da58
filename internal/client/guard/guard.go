// Package guard decides whether a view may render for the current session.
package guard

import "github.com/dmitrijs2005/blogit/internal/client/models"

type Decision int

const (
	// Wait renders a neutral placeholder while the session is restoring.
	Wait Decision = iota
	Allow
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

type View string

const (
	ViewLogin      View = "login"
	ViewRegister   View = "register"
	ViewFeed       View = "feed"
	ViewCreatePost View = "create-post"
	ViewUsers      View = "users"
	ViewProfile    View = "profile"
)

// LoginView is where anonymous users are sent.
const LoginView = ViewLogin

// IsPublic reports whether v renders regardless of the session.
func IsPublic(v View) bool {
	return v == ViewLogin || v == ViewRegister
}

// Decide maps a session status to a decision for a gated view. It never
// redirects while loading, so a restoring session does not flash the
// login view.
func Decide(status models.Status) Decision {
	switch status {
	case models.StatusAuthenticated:
		return Allow
	case models.StatusAnonymous:
		return Redirect
	default:
		return Wait
	}
}

// StatusSource is satisfied by *session.Manager.
type StatusSource interface {
	Status() models.Status
}

type Outcome struct {
	Decision Decision
	// Target is the view to navigate to when Decision is Redirect.
	Target View
}

// Guard evaluates views against a live status source. Nothing is cached;
// every Check reads the current status.
type Guard struct {
	src StatusSource
}

func New(src StatusSource) *Guard {
	return &Guard{src: src}
}

func (g *Guard) Check(v View) Outcome {
	if IsPublic(v) {
		return Outcome{Decision: Allow}
	}
	d := Decide(g.src.Status())
	if d == Redirect {
		return Outcome{Decision: Redirect, Target: LoginView}
	}
	return Outcome{Decision: d}
}
