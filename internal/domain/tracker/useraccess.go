package tracker

import (
	"fmt"
	"time"
)

// UserAccess is a per-user permission override on a tracker. At most one row
// exists per (tracker, user) pair, and the owner never has one.
type UserAccess struct {
	id          uint
	trackerID   uint
	userID      uint
	permissions AccessMask
	createdAt   time.Time
}

func NewUserAccess(trackerID, userID uint, permissions AccessMask) (*UserAccess, error) {
	if trackerID == 0 {
		return nil, fmt.Errorf("tracker ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if permissions&^AccessAll != 0 {
		return nil, fmt.Errorf("invalid permission mask")
	}

	return &UserAccess{
		trackerID:   trackerID,
		userID:      userID,
		permissions: permissions,
		createdAt:   time.Now(),
	}, nil
}

func ReconstructUserAccess(id, trackerID, userID uint, permissions AccessMask, createdAt time.Time) (*UserAccess, error) {
	if id == 0 {
		return nil, fmt.Errorf("user access ID cannot be zero")
	}
	return &UserAccess{
		id:          id,
		trackerID:   trackerID,
		userID:      userID,
		permissions: permissions,
		createdAt:   createdAt,
	}, nil
}

func (ua *UserAccess) ID() uint {
	return ua.id
}

func (ua *UserAccess) TrackerID() uint {
	return ua.trackerID
}

func (ua *UserAccess) UserID() uint {
	return ua.userID
}

func (ua *UserAccess) Permissions() AccessMask {
	return ua.permissions
}

func (ua *UserAccess) CreatedAt() time.Time {
	return ua.createdAt
}

func (ua *UserAccess) SetID(id uint) error {
	if ua.id != 0 {
		return fmt.Errorf("user access ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user access ID cannot be zero")
	}
	ua.id = id
	return nil
}
