// Package model holds the persisted entities and the request payloads that
// create or change them.
package model
