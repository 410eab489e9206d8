package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// Policy controls how much of a failed validation is reported.
// The zero value stops at the first violation.
type Policy struct {
	CollectAllErrors bool
}

func (p Policy) limit(fieldErrors []errs.FieldError) []errs.FieldError {
	if p.CollectAllErrors || len(fieldErrors) <= 1 {
		return fieldErrors
	}
	return fieldErrors[:1]
}

// BindAndValidate fills payload from the request and validates it.
// payload must be a pointer. Every failure is returned as a 422 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable, policy Policy) error {
	if err := c.Bind(payload); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		return errs.ValidationError("body", "could not be read")
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, true, policy.limit(fieldErrors))
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.ValidationFailedMessage, []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: messageFor(err),
		})
	}

	return errs.ValidationFailedMessage, fieldErrors
}

func messageFor(err validator.FieldError) string {
	isString := err.Kind() == reflect.String

	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "email":
		return "must be a valid email address"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
