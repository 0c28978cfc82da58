package models

import "time"

// Notification means "SubjectUserID began following the current user".
// SubjectUserID is the deduplication identity.
type Notification struct {
	SubjectUserID string
	Username      string
	ObservedAt    time.Time
}
