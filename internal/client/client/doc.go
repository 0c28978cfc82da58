// Package client contains the transport side of the BlogIT client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the REST backend (see Client).
//  2. HTTPClient, the net/http implementation: JSON payloads, a bearer token
//     on authenticated calls, an X-Request-ID per call, and an
//     unauthorized hook fired with the token the backend rejected.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     OpenMetadataStore) for the SQLite or Redis key/value store.
//
// # Error Handling
//
// Non-2xx responses come back as *APIError carrying the backend message.
// APIError unwraps to ErrUnauthorized (401), ErrForbidden (403), ErrNotFound (404) or
// ErrUnavailable (5xx); network failures wrap ErrUnavailable too.
package client
