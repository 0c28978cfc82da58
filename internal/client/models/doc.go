// Package models defines the client-side data model of BlogIT: the session,
// user summaries and their follow sets, follow notifications, posts, and the
// hour-bucketed quote cache entry.
package models
