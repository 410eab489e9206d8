package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/labstack/echo/v4"
)

const malformedBodyMessage = "Malformed JSON body"

// StrictBinder binds path parameters and a JSON body, rejecting anything the
// payload type does not declare. It replaces echo's DefaultBinder, which
// silently drops unknown fields.
//
// Query parameters and headers are not bound.
type StrictBinder struct {
	echo.DefaultBinder
}

func NewStrictBinder() *StrictBinder {
	return &StrictBinder{}
}

func (b *StrictBinder) Bind(i interface{}, c echo.Context) error {
	if err := b.BindPathParams(c, i); err != nil {
		field := "id"
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) && bindErr.Field != "" {
			field = bindErr.Field
		}
		return errs.ValidationError(field, "must be an integer")
	}

	req := c.Request()
	if req.ContentLength == 0 || req.Method == http.MethodGet || req.Method == http.MethodDelete {
		return nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return errs.ValidationError("body", "must be "+echo.MIMEApplicationJSON)
	}

	decoder := json.NewDecoder(req.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}

	// A second value after the object is never part of the payload.
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errs.NewUnprocessableEntityError(malformedBodyMessage, true, nil)
	}

	return nil
}

// decodeError describes a JSON decoding failure as a field error where possible.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.ValidationError(typeErr.Field, "must be a "+typeErr.Type.String())
	}

	const unknownPrefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		field := strings.Trim(strings.TrimPrefix(msg, unknownPrefix), `"`)
		return errs.ValidationError(field, "is not allowed")
	}

	return errs.NewUnprocessableEntityError(malformedBodyMessage, true, nil)
}
