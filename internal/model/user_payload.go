package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON name so errors match the request
// body. Path fields are reported by their param name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Tag.Get("param")
		}
		return name
	})
	return v
}

// ListUsersPayload carries no input; it exists so every route goes through
// the same bind-and-validate pipeline.
type ListUsersPayload struct{}

func (p *ListUsersPayload) Validate() error {
	return nil
}

type CreateUserPayload struct {
	Email    string  `json:"email" validate:"required,min=5,max=255,email"`
	Name     string  `json:"name" validate:"required,min=5,max=255"`
	Nickname *string `json:"nickname" validate:"omitempty,min=5,max=255"`
}

func (p *CreateUserPayload) Validate() error {
	return validate.Struct(p)
}

// ToNewUser maps the validated payload onto the store input.
func (p *CreateUserPayload) ToNewUser() NewUser {
	return NewUser{
		Email:    p.Email,
		Name:     p.Name,
		Nickname: p.Nickname,
	}
}

// UserIDPayload binds the :id path parameter. ids are INTEGER columns, so
// anything outside int32 can never match a row.
type UserIDPayload struct {
	ID int `param:"id" json:"-" validate:"min=-2147483648,max=2147483647"`
}

func (p *UserIDPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateUserPayload is a partial update: omitted fields keep their value.
// Nickname is validated like on create but never written.
type UpdateUserPayload struct {
	ID       int     `param:"id" json:"-" validate:"min=-2147483648,max=2147483647"`
	Email    *string `json:"email" validate:"omitempty,min=5,max=255,email"`
	Name     *string `json:"name" validate:"omitempty,min=5,max=255"`
	Nickname *string `json:"nickname" validate:"omitempty,min=5,max=255"`
}

func (p *UpdateUserPayload) Validate() error {
	return validate.Struct(p)
}

// ToUserChanges keeps only the columns an update is allowed to write.
func (p *UpdateUserPayload) ToUserChanges() UserChanges {
	return UserChanges{
		Email: p.Email,
		Name:  p.Name,
	}
}
