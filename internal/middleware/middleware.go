// Package middleware holds the global echo middleware: request ids, the
// request-scoped logger, New Relic tracing, access logging, CORS and
// panic recovery, plus the error handler that writes every error response.
package middleware
