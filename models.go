package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the role claim embedded in session tokens
type UserRole = string

const (
	// RoleUser is a regular account (i.e. self-service operations only)
	RoleUser UserRole = "user"
	// RoleAdmin is an administrator account (i.e. full lifecycle control)
	RoleAdmin UserRole = "admin"
)

// Gender is the profile gender attribute
type Gender int

const (
	// GenderUnspecified is the zero value
	GenderUnspecified Gender = iota
	// GenderMale male
	GenderMale
	// GenderFemale female
	GenderFemale
)

// MaxLoginLength bounds the login column
const MaxLoginLength = 30

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Login         string     `bun:"login,notnull,unique" json:"login,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Gender        Gender     `bun:"gender,notnull" json:"gender"`
	Birthday      *time.Time `bun:"birthday,nullzero" json:"birthday,omitempty"`
	IsAdmin       bool       `bun:"is_admin" json:"is_admin,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull" json:"created_at,omitempty"`
	CreatedBy     string     `bun:"created_by" json:"created_by,omitempty"`
	ModifiedAt    *time.Time `bun:"modified_at,nullzero" json:"modified_at,omitempty"`
	ModifiedBy    string     `bun:"modified_by" json:"modified_by,omitempty"`
	RevokedAt     *time.Time `bun:"revoked_at,nullzero" json:"revoked_at,omitempty"`
	RevokedBy     string     `bun:"revoked_by" json:"revoked_by,omitempty"`
}

// IsActive reports whether the account can authenticate. Revocation is
// reversible, the record stays in place until a hard delete removes it.
func (u *User) IsActive() bool {
	return u.RevokedAt == nil
}

// Role maps the admin flag to the session role claim
func (u *User) Role() UserRole {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Sanitize strips the password hash so the record can be returned to
// callers. The credential never leaves the package in any payload.
func (u *User) Sanitize() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	return &out
}

// Age computes full years lived as of now. The year delta drops by one
// when the birthday's month/day has not yet occurred this year.
func (u *User) Age(now time.Time) (int, bool) {
	if u.Birthday == nil {
		return 0, false
	}

	b := *u.Birthday
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}

	return age, true
}

// UserSearchView is the search-safe projection an administrator gets when
// reading another user's profile. Login and identifiers stay out of it.
type UserSearchView struct {
	Name     string     `json:"name"`
	Gender   Gender     `json:"gender"`
	Birthday *time.Time `json:"birthday,omitempty"`
	IsActive bool       `json:"is_active"`
}

// SearchView builds the admin projection for this user
func (u *User) SearchView() *UserSearchView {
	return &UserSearchView{
		Name:     u.Name,
		Gender:   u.Gender,
		Birthday: u.Birthday,
		IsActive: u.IsActive(),
	}
}
