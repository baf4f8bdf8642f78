// Package client is the transport layer of the admin console.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the services: a single Do method that
//     issues a REST call and returns the fully read response.
//  2. HTTPClient, which keeps the session in a cookie jar and transparently
//     recovers from an expired access cookie: on a 401 from a previously
//     authenticated session it performs one shared refresh call, replays the
//     request once, and on refresh failure clears the session marker and
//     sends the Navigator to the login location.
//  3. SessionStore implementations for the persisted session marker and the
//     local database bootstrap (InitDatabase, RunMigrations).
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError and can be matched with
// errors.Is against ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict,
// ErrBadRequest and ErrUnavailable. A failed refresh is a *RefreshError and
// matches ErrSessionExpired. Network errors are passed through untouched.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. However many requests receive a 401
// while a refresh is outstanding, the refresh endpoint is called once and all
// of them observe its outcome.
package client
