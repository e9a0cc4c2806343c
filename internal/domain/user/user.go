// Package user holds the local mirror of accounts provisioned by the
// external identity service. Rows are upserted from verified token claims;
// this service never issues credentials itself.
package user

import (
	"fmt"
	"net/mail"
	"time"
)

type User struct {
	id        uint
	username  string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(id uint, username, email string) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %s", email)
	}

	now := time.Now()
	return &User{
		id:        id,
		username:  username,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(id uint, username, email string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	return &User{
		id:        id,
		username:  username,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Email() string {
	return u.email
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Refresh overwrites the mirrored profile fields from fresh token claims.
func (u *User) Refresh(username, email string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}
	u.username = username
	u.email = email
	u.updatedAt = time.Now()
	return nil
}
