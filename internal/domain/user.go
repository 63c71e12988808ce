package domain

import (
	"errors"
	"strings"
	"time"
)

// Role controls the admin override on user-account operations. Storage does
// not constrain the value; anything other than "admin" grants no extra
// rights.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Common validation errors for User
var (
	ErrEmptyUserEmail  = errors.New("user email cannot be empty")
	ErrEmptyUserDigest = errors.New("user password digest cannot be empty")
)

// User represents a registered account. PasswordDigest is never serialized
// in any result.
type User struct {
	ID             int64     `json:"id"         xml:"id"`
	Email          string    `json:"email"      xml:"email"`
	PasswordDigest string    `json:"-"          xml:"-"`
	Name           string    `json:"name"       xml:"name"`
	Role           Role      `json:"role"       xml:"role"`
	CreatedAt      time.Time `json:"created_at" xml:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" xml:"updated_at"`
}

// NewUser creates a User with the given email and password digest. An empty
// name defaults to the email's local part (the text before the first "@").
// Every new account gets the "user" role; there is no self-service path to
// admin. The ID is assigned by the store on insert.
func NewUser(email, passwordDigest, name string) (*User, error) {
	if name == "" {
		name = emailLocalPart(email)
	}
	now := time.Now().UTC()
	user := &User{
		Email:          email,
		PasswordDigest: passwordDigest,
		Name:           name,
		Role:           RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyUserEmail
	}

	if u.PasswordDigest == "" {
		return ErrEmptyUserDigest
	}

	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
