package models

// Status is the client's belief about the authentication state.
type Status string

const (
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Session is who is currently signed in and with which bearer token.
// Status is StatusAuthenticated only while both Token and User are set.
type Session struct {
	Token  string
	User   *UserSummary
	Status Status
}

// Authenticated reports whether the session is fully established.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != "" && s.User != nil
}

// Clone returns a copy that shares no mutable state with s.
func (s Session) Clone() Session {
	if s.User != nil {
		u := s.User.Clone()
		s.User = &u
	}
	return s
}
