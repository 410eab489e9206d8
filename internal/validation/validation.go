// Package validation binds request input and checks it before it reaches
// the service layer.
//
// Rules are declared as `validate:"..."` struct tags and evaluated by
// go-playground/validator. Failures become a 422 *errs.HTTPError listing
// the offending fields.
package validation
