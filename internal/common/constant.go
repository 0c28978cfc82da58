// Package common contains constants and small helpers shared by the BlogIT
// client packages.
package common

// Header names used on outbound HTTP requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	APIKeyHeaderName        = "X-Api-Key"
)
