package service

import (
	"context"

	"github.com/deppfellow/go-users/internal/errs"
	"github.com/deppfellow/go-users/internal/logger"
	"github.com/deppfellow/go-users/internal/model"
	"github.com/deppfellow/go-users/internal/sqlerr"
)

// EmailConflictMessage is reported when an email is taken by another user.
const EmailConflictMessage = "Email already exists"

// UserStore persists users together with their profile. Finders return
// nil, nil when nothing matches.
type UserStore interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, input model.NewUser) (*model.User, error)
	Update(ctx context.Context, id int, changes model.UserChanges) (*model.User, error)
	Delete(ctx context.Context, id int) error
}

// WelcomeNotifier schedules the welcome email for a new user.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

type UserService struct {
	store    UserStore
	notifier WelcomeNotifier
}

// NewUserService builds the service; notifier may be nil to disable
// welcome emails.
func NewUserService(store UserStore, notifier WelcomeNotifier) *UserService {
	return &UserService{store: store, notifier: notifier}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*model.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if user == nil {
		return nil, errs.NewResourceNotFoundError()
	}
	return user, nil
}

// CreateUser stores the user with its profile. The email must be unused.
func (s *UserService) CreateUser(ctx context.Context, payload *model.CreateUserPayload) (*model.User, error) {
	if err := s.ensureEmailAvailable(ctx, payload.Email, 0); err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, payload.ToNewUser())
	if err != nil {
		return nil, writeError(err)
	}

	s.notifyWelcome(ctx, user)
	return user, nil
}

// UpdateUser applies the present fields of payload. The profile is never
// modified here, even when a nickname is sent.
func (s *UserService) UpdateUser(ctx context.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	existing, err := s.store.FindByID(ctx, payload.ID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if existing == nil {
		return nil, errs.NewResourceNotFoundError()
	}

	if payload.Email != nil && *payload.Email != existing.Email {
		if err := s.ensureEmailAvailable(ctx, *payload.Email, payload.ID); err != nil {
			return nil, err
		}
	}

	changes := payload.ToUserChanges()
	if changes.IsEmpty() {
		return existing, nil
	}

	user, err := s.store.Update(ctx, payload.ID, changes)
	if err != nil {
		return nil, writeError(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// ensureEmailAvailable fails with a conflict when email belongs to a user
// other than ownerID. Pass 0 when there is no owner yet.
func (s *UserService) ensureEmailAvailable(ctx context.Context, email string, ownerID int) error {
	other, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if other != nil && other.ID != ownerID {
		return errs.NewConflictError(EmailConflictMessage, false, nil)
	}
	return nil
}

// writeError maps a failed insert or update. The unique email index only
// fires when a concurrent write wins the race past ensureEmailAvailable, so
// it reports the same conflict.
func writeError(err error) error {
	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
		return errs.NewConflictError(EmailConflictMessage, false, nil)
	}
	return sqlerr.HandleError(err)
}

// notifyWelcome never fails the request; the user is already stored.
func (s *UserService) notifyWelcome(ctx context.Context, user *model.User) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Int("user_id", user.ID).Msg("failed to enqueue welcome email")
	}
}
