package models

import "slices"

// UserSummary is the public view of an account. Followers and Following hold
// user ids, never nested objects.
type UserSummary struct {
	ID        string   `json:"_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email,omitempty"`
	Followers []string `json:"followers,omitempty"`
	Following []string `json:"following,omitempty"`
}

// Clone returns a deep copy of u.
func (u UserSummary) Clone() UserSummary {
	u.Followers = slices.Clone(u.Followers)
	u.Following = slices.Clone(u.Following)
	return u
}

// HasFollower reports whether id is in u.Followers.
func (u UserSummary) HasFollower(id string) bool {
	return slices.Contains(u.Followers, id)
}

// WithFollower returns a copy of u with id added to Followers. Adding an id
// that is already present, or u's own id, leaves the set unchanged.
func (u UserSummary) WithFollower(id string) UserSummary {
	c := u.Clone()
	if id == "" || id == u.ID || c.HasFollower(id) {
		return c
	}
	c.Followers = append(c.Followers, id)
	return c
}

// WithoutFollower returns a copy of u with id removed from Followers.
func (u UserSummary) WithoutFollower(id string) UserSummary {
	c := u.Clone()
	c.Followers = slices.DeleteFunc(c.Followers, func(f string) bool { return f == id })
	return c
}

// Normalize drops duplicates and self references from both follow sets,
// keeping first-seen order. Backend payloads are normalized on receipt.
func (u *UserSummary) Normalize() {
	u.Followers = uniqueExcluding(u.Followers, u.ID)
	u.Following = uniqueExcluding(u.Following, u.ID)
}

func uniqueExcluding(ids []string, self string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || id == self {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
