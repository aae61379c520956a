// Package client is the API gateway of the bloodlink client: the only
// code that talks to the REST backend.
//
// # Overview
//
// Client lists every endpoint family (login, registration, profiles, blood
// units, blood requests, transfers). HTTPClient implements it over net/http:
// it attaches the bearer token obtained from a TokenSource, tags each call
// with an X-Request-ID, enforces a per-call timeout and records Prometheus
// metrics per endpoint.
//
// # Error Handling
//
// Failures are classified so callers can react with errors.Is / errors.As:
//
//   - ErrUnauthenticated: no session; nothing was sent.
//   - ErrTimeout: the per-call deadline expired.
//   - ErrUnavailable: the backend could not be reached.
//   - ErrUnauthorized: 401/403 after the refresh attempt.
//   - *ServerError: any other non-2xx reply, with per-field messages.
//
// A 401 on an authenticated call triggers one token refresh and one replay of
// the original call. No other call is ever retried.
package client
