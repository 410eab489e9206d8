// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the client is rendered from an *HTTPError:
// a machine-readable code, a human-readable message, the HTTP status and,
// for validation failures, a list of per-field errors.
package errs
