package model

// User is the account record. Every user owns exactly one Profile, created
// in the same transaction as the user.
type User struct {
	ID      int      `json:"id" gorm:"primaryKey"`
	Email   string   `json:"email" gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Name    string   `json:"name" gorm:"size:255;not null"`
	Profile *Profile `json:"profile" gorm:"constraint:OnDelete:CASCADE"`
}

// Profile is owned by a User and cannot be changed through the API.
type Profile struct {
	ID       int     `json:"id" gorm:"primaryKey"`
	Nickname *string `json:"nickname" gorm:"size:255"`
	UserID   int     `json:"userId" gorm:"not null;uniqueIndex:idx_profiles_user_id"`
}

// NewUser is the input to the nested user + profile insert.
type NewUser struct {
	Email    string
	Name     string
	Nickname *string
}

// UserChanges lists the columns an update may touch. Nil fields are left as-is.
type UserChanges struct {
	Email *string
	Name  *string
}

// IsEmpty reports whether there is nothing to write.
func (c UserChanges) IsEmpty() bool {
	return c.Email == nil && c.Name == nil
}
