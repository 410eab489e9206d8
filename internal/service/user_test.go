package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/deppfellow/go-users/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStore struct {
	findAll     func(ctx context.Context) ([]model.User, error)
	findByID    func(ctx context.Context, id int) (*model.User, error)
	findByEmail func(ctx context.Context, email string) (*model.User, error)
	create      func(ctx context.Context, input model.NewUser) (*model.User, error)
	update      func(ctx context.Context, id int, changes model.UserChanges) (*model.User, error)
	delete      func(ctx context.Context, id int) error
}

func (f *fakeStore) FindAll(ctx context.Context) ([]model.User, error) { return f.findAll(ctx) }
func (f *fakeStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	return f.findByID(ctx, id)
}
func (f *fakeStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.findByEmail(ctx, email)
}
func (f *fakeStore) Create(ctx context.Context, input model.NewUser) (*model.User, error) {
	return f.create(ctx, input)
}
func (f *fakeStore) Update(ctx context.Context, id int, changes model.UserChanges) (*model.User, error) {
	return f.update(ctx, id, changes)
}
func (f *fakeStore) Delete(ctx context.Context, id int) error { return f.delete(ctx, id) }

type notifierFunc func(ctx context.Context, to, name string) error

func (f notifierFunc) EnqueueWelcomeEmail(ctx context.Context, to, name string) error {
	return f(ctx, to, name)
}

func ptr(s string) *string { return &s }

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}

func alice() *model.User {
	return &model.User{ID: 1, Email: "alice@example.com", Name: "Alice", Profile: &model.Profile{ID: 1, UserID: 1}}
}

func TestCreateUser(t *testing.T) {
	var created model.NewUser
	var welcomed string
	store := &fakeStore{
		findByEmail: func(context.Context, string) (*model.User, error) { return nil, nil },
		create: func(_ context.Context, input model.NewUser) (*model.User, error) {
			created = input
			return &model.User{ID: 7, Email: input.Email, Name: input.Name, Profile: &model.Profile{ID: 3, UserID: 7, Nickname: input.Nickname}}, nil
		},
	}
	svc := NewUserService(store, notifierFunc(func(_ context.Context, to, _ string) error {
		welcomed = to
		return nil
	}))

	user, err := svc.CreateUser(context.Background(), &model.CreateUserPayload{Email: "alice@example.com", Name: "Alice", Nickname: ptr("Ally1")})
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "Ally1", *created.Nickname)
	assert.Equal(t, "alice@example.com", welcomed)
}

func TestCreateUserEmailTaken(t *testing.T) {
	store := &fakeStore{
		findByEmail: func(context.Context, string) (*model.User, error) { return alice(), nil },
		create: func(context.Context, model.NewUser) (*model.User, error) {
			t.Fatal("create must not be called")
			return nil, nil
		},
	}
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(context.Background(), &model.CreateUserPayload{Email: "alice@example.com", Name: "Alice"})
	httpErr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, EmailConflictMessage, httpErr.Message)
}

// A concurrent write can take the email between the lookup and the insert.
// The unique index then reports the same conflict as the lookup would have.
func TestEmailTakenByConcurrentWrite(t *testing.T) {
	uniqueEmail := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "idx_users_email"}
	store := &fakeStore{
		findByID:    func(context.Context, int) (*model.User, error) { return alice(), nil },
		findByEmail: func(context.Context, string) (*model.User, error) { return nil, nil },
		create: func(context.Context, model.NewUser) (*model.User, error) {
			return nil, fmt.Errorf("create user: %w", uniqueEmail)
		},
		update: func(_ context.Context, id int, _ model.UserChanges) (*model.User, error) {
			return nil, fmt.Errorf("update user %d: %w", id, uniqueEmail)
		},
	}
	svc := NewUserService(store, notifierFunc(func(context.Context, string, string) error {
		t.Fatal("no welcome email for a rejected user")
		return nil
	}))

	_, createErr := svc.CreateUser(context.Background(), &model.CreateUserPayload{Email: "bobby@example.com", Name: "Bobby"})
	_, updateErr := svc.UpdateUser(context.Background(), &model.UpdateUserPayload{ID: 1, Email: ptr("bobby@example.com")})

	for _, err := range []error{createErr, updateErr} {
		httpErr := requireStatus(t, err, http.StatusConflict)
		assert.Equal(t, "CONFLICT", httpErr.Code)
		assert.Equal(t, EmailConflictMessage, httpErr.Message)
		assert.Empty(t, httpErr.Errors)
	}
}

func TestCreateUserNotifierFailureIsIgnored(t *testing.T) {
	store := &fakeStore{
		findByEmail: func(context.Context, string) (*model.User, error) { return nil, nil },
		create:      func(context.Context, model.NewUser) (*model.User, error) { return alice(), nil },
	}
	svc := NewUserService(store, notifierFunc(func(context.Context, string, string) error {
		return errors.New("redis unavailable")
	}))

	user, err := svc.CreateUser(context.Background(), &model.CreateUserPayload{Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestGetUser(t *testing.T) {
	store := &fakeStore{
		findByID: func(_ context.Context, id int) (*model.User, error) {
			if id == 1 {
				return alice(), nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(store, nil)

	user, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.GetUser(context.Background(), 2)
	httpErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, errs.ResourceNotFoundMessage, httpErr.Message)
}

func TestListUsersStoreFailure(t *testing.T) {
	store := &fakeStore{
		findAll: func(context.Context) ([]model.User, error) { return nil, errors.New("connection refused") },
	}

	_, err := NewUserService(store, nil).ListUsers(context.Background())
	httpErr := requireStatus(t, err, http.StatusInternalServerError)
	assert.NotContains(t, httpErr.Message, "connection refused")
}

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		name      string
		payload   model.UpdateUserPayload
		owner     *model.User
		status    int
		wantWrite bool
	}{
		{"name only", model.UpdateUserPayload{ID: 1, Name: ptr("Alice Cooper")}, nil, 0, true},
		{"own email", model.UpdateUserPayload{ID: 1, Email: ptr("alice@example.com")}, nil, 0, true},
		{"free email", model.UpdateUserPayload{ID: 1, Email: ptr("alice@new.example.com")}, nil, 0, true},
		{"email of another user", model.UpdateUserPayload{ID: 1, Email: ptr("bobby@example.com")}, &model.User{ID: 2}, http.StatusConflict, false},
		{"nickname only", model.UpdateUserPayload{ID: 1, Nickname: ptr("Other")}, nil, 0, false},
		{"missing user", model.UpdateUserPayload{ID: 9, Name: ptr("Nobody Here")}, nil, http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrote := false
			store := &fakeStore{
				findByID: func(_ context.Context, id int) (*model.User, error) {
					if id == 1 {
						return alice(), nil
					}
					return nil, nil
				},
				findByEmail: func(context.Context, string) (*model.User, error) { return tt.owner, nil },
				update: func(_ context.Context, id int, changes model.UserChanges) (*model.User, error) {
					wrote = true
					user := alice()
					if changes.Name != nil {
						user.Name = *changes.Name
					}
					if changes.Email != nil {
						user.Email = *changes.Email
					}
					return user, nil
				},
			}

			payload := tt.payload
			user, err := NewUserService(store, nil).UpdateUser(context.Background(), &payload)
			assert.Equal(t, tt.wantWrite, wrote)

			if tt.status != 0 {
				requireStatus(t, err, tt.status)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, user.Profile)
		})
	}
}

func TestDeleteUser(t *testing.T) {
	store := &fakeStore{
		delete: func(_ context.Context, id int) error {
			if id == 1 {
				return nil
			}
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewUserService(store, nil)

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	requireStatus(t, svc.DeleteUser(context.Background(), 999), http.StatusNotFound)
}
