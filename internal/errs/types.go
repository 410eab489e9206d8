package errs

import (
	"net/http"
)

// ResourceNotFoundMessage is the uniform message for every missing resource,
// no matter which layer noticed it.
const ResourceNotFoundMessage = "Resource not found"

// ValidationFailedMessage heads every 422 response.
const ValidationFailedMessage = "Validation failed"

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400. A nil code defaults to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404. A nil code defaults to "NOT_FOUND".
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewResourceNotFoundError is the 404 every layer uses for a missing row.
func NewResourceNotFoundError() *HTTPError {
	return NewNotFoundError(ResourceNotFoundMessage, false, nil)
}

// NewConflictError creates a 409. A nil code defaults to "CONFLICT".
func NewConflictError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusConflict)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewUnprocessableEntityError creates a 422 carrying field-level errors.
func NewUnprocessableEntityError(message string, override bool, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnprocessableEntity),
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: override,
		Errors:   errors,
	}
}

// NewInternalServerError creates a generic 500. The real cause is logged, never sent.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError creates a 422 for a single invalid field.
//
//	return errs.ValidationError("id", "must be an integer")
func ValidationError(field, message string) *HTTPError {
	return NewUnprocessableEntityError(ValidationFailedMessage, true, []FieldError{
		{Field: field, Error: message},
	})
}
