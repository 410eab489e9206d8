package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_NotFoundIsUniform(t *testing.T) {
	for _, src := range []error{
		gorm.ErrRecordNotFound,
		fmt.Errorf("delete user 999: %w", gorm.ErrRecordNotFound),
		pgx.ErrNoRows,
		sql.ErrNoRows,
	} {
		httpErr := asHTTPError(t, HandleError(src))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, errs.ResourceNotFoundMessage, httpErr.Message)
	}
}

func TestHandleError_UniqueViolationIsConflict(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "idx_users_email",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("create user: %w", pgErr)))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "users", ColumnName: "name"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", TableName: "profiles", ColumnName: "user_id"}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The referenced User does not exist", httpErr.Message)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewConflictError("Email already exists", false, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)

	httpErr = asHTTPError(t, HandleError(&pgconn.PgError{Code: "53300"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("idx_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
}

func TestErrCode(t *testing.T) {
	sqlErr := ConvertPgError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", sqlErr)))
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"})))
	assert.Equal(t, ForeignKeyViolation, ErrCode(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}
