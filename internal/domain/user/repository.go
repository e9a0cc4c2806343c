package user

import (
	"context"
)

type UserRepository interface {
	// Upsert inserts the mirrored user or refreshes an existing row.
	Upsert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByIDs(ctx context.Context, userIDs []uint) ([]*User, error)
}
