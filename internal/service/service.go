// Package service holds the business rules between handlers and
// repositories. Services return *errs.HTTPError values for outcomes the
// client should see; storage errors are translated through sqlerr.
package service
