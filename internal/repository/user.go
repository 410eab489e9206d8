package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/go-users/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// withProfile is the base query for every user read; the profile is always loaded.
func (r *UserRepository) withProfile(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Profile")
}

// FindAll returns every user ordered by id. The result is never nil.
func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.withProfile(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID returns nil, nil when no user has the id.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail returns nil, nil when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := r.withProfile(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create inserts the user and its profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, input model.NewUser) (*model.User, error) {
	user := model.User{Email: input.Email, Name: input.Name}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return err
		}

		profile := model.Profile{Nickname: input.Nickname, UserID: user.ID}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update writes only the fields present in changes and returns the reloaded
// user. gorm.ErrRecordNotFound is returned when the user does not exist.
func (r *UserRepository) Update(ctx context.Context, id int, changes model.UserChanges) (*model.User, error) {
	if !changes.IsEmpty() {
		values := map[string]any{}
		if changes.Email != nil {
			values["email"] = *changes.Email
		}
		if changes.Name != nil {
			values["name"] = *changes.Name
		}

		result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(values)
		if result.Error != nil {
			return nil, fmt.Errorf("update user %d: %w", id, result.Error)
		}
	}

	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("update user %d: %w", id, gorm.ErrRecordNotFound)
	}
	return user, nil
}

// Delete removes the user and its profile. gorm.ErrRecordNotFound is
// returned when the user does not exist.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Profile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
