package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/deppfellow/go-users/internal/model"
	"github.com/deppfellow/go-users/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string, id string) echo.Context {
	e := echo.New()
	e.Binder = validation.NewStrictBinder()

	req := httptest.NewRequest(method, "/api/users", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c
}

func requireUnprocessable(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_CreateValid(t *testing.T) {
	c := newContext(http.MethodPost, `{"email":"a@b.com","name":"Alice","nickname":"Al123"}`, "")

	payload := &model.CreateUserPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload, validation.Policy{}))

	assert.Equal(t, "a@b.com", payload.Email)
	assert.Equal(t, "Alice", payload.Name)
	require.NotNil(t, payload.Nickname)
	assert.Equal(t, "Al123", *payload.Nickname)
}

func TestBindAndValidate_CreateRules(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"email without at sign", `{"email":"alice.example.com","name":"Alice"}`, "email", "must be a valid email address"},
		{"missing email", `{"name":"Alice"}`, "email", "is required"},
		{"short name", `{"email":"a@b.com","name":"Anna"}`, "name", "must be at least 5 characters"},
		{"long name", `{"email":"a@b.com","name":"` + strings.Repeat("x", 256) + `"}`, "name", "must not exceed 255 characters"},
		{"short nickname", `{"email":"a@b.com","name":"Alice","nickname":"Al"}`, "nickname", "must be at least 5 characters"},
		{"unknown field", `{"email":"a@b.com","name":"Alice","role":"admin"}`, "role", "is not allowed"},
		{"wrong type", `{"email":"a@b.com","name":12345}`, "name", "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, tt.body, "")

			httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
			assert.Equal(t, tt.message, httpErr.Errors[0].Error)
		})
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, `{"email":`, "")

	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
	assert.Equal(t, "Malformed JSON body", httpErr.Message)
}

func TestBindAndValidate_Policy(t *testing.T) {
	body := `{"email":"nope","name":"Ann"}`

	c := newContext(http.MethodPost, body, "")
	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
	assert.Len(t, httpErr.Errors, 1)

	c = newContext(http.MethodPost, body, "")
	httpErr = requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{CollectAllErrors: true}))
	assert.Len(t, httpErr.Errors, 2)
}

func TestBindAndValidate_PathID(t *testing.T) {
	c := newContext(http.MethodGet, "", "42")
	payload := &model.UserIDPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload, validation.Policy{}))
	assert.Equal(t, 42, payload.ID)

	c = newContext(http.MethodGet, "", "abc")
	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.UserIDPayload{}, validation.Policy{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "id", httpErr.Errors[0].Field)
	assert.Equal(t, "must be an integer", httpErr.Errors[0].Error)
}

func TestBindAndValidate_UpdateIsPartial(t *testing.T) {
	c := newContext(http.MethodPut, `{"name":"Alice Updated"}`, "7")

	payload := &model.UpdateUserPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload, validation.Policy{}))
	assert.Equal(t, 7, payload.ID)
	assert.Nil(t, payload.Email)
	require.NotNil(t, payload.Name)
	assert.Equal(t, "Alice Updated", *payload.Name)

	changes := payload.ToUserChanges()
	assert.Nil(t, changes.Email)
	assert.False(t, changes.IsEmpty())
}

func TestBindAndValidate_UpdateRejectsBodyID(t *testing.T) {
	c := newContext(http.MethodPut, `{"id":8,"name":"Alice Updated"}`, "7")

	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.UpdateUserPayload{}, validation.Policy{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "id", httpErr.Errors[0].Field)
}

func TestBindAndValidate_UpdateEmptyStringEmail(t *testing.T) {
	c := newContext(http.MethodPut, `{"email":""}`, "7")

	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.UpdateUserPayload{}, validation.Policy{}))
	assert.Equal(t, "email", httpErr.Errors[0].Field)
}

func TestBindAndValidate_TrailingJSONValue(t *testing.T) {
	c := newContext(http.MethodPost, `{"email":"alice@example.com","name":"Alice"} {"role":"admin"}`, "")

	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
	assert.Equal(t, "Malformed JSON body", httpErr.Message)
}

func TestBindAndValidate_TrailingWhitespace(t *testing.T) {
	c := newContext(http.MethodPost, "{\"email\":\"alice@example.com\",\"name\":\"Alice\"}\n", "")

	require.NoError(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
}

func TestBindAndValidate_NonJSONContentType(t *testing.T) {
	e := echo.New()
	e.Binder = validation.NewStrictBinder()

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`email=alice@example.com`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	c := e.NewContext(req, httptest.NewRecorder())

	httpErr := requireUnprocessable(t, validation.BindAndValidate(c, &model.CreateUserPayload{}, validation.Policy{}))
	assert.Equal(t, errs.ValidationFailedMessage, httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "body", httpErr.Errors[0].Field)
	assert.Equal(t, "must be application/json", httpErr.Errors[0].Error)
}

func TestBindAndValidate_IDOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		payload validation.Validatable
		message string
	}{
		{"get above int32", "2147483648", &model.UserIDPayload{}, "must not exceed 2147483647"},
		{"get below int32", "-2147483649", &model.UserIDPayload{}, "must be at least -2147483648"},
		{"update above int32", "2147483648", &model.UpdateUserPayload{}, "must not exceed 2147483647"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodGet, "", tt.id)

			httpErr := requireUnprocessable(t, validation.BindAndValidate(c, tt.payload, validation.Policy{}))
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, "id", httpErr.Errors[0].Field)
			assert.Equal(t, tt.message, httpErr.Errors[0].Error)
		})
	}

	c := newContext(http.MethodGet, "", "2147483647")
	payload := &model.UserIDPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload, validation.Policy{}))
	assert.Equal(t, 2147483647, payload.ID)
}
