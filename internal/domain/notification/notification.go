// Package notification holds the per-user in-app feed entries produced by
// event fan-out.
package notification

import (
	"fmt"
	"time"
)

// EventNotification links a user to an event in their feed. The (user,
// event) pair is unique; fan-out creates at most one row per recipient per
// event.
type EventNotification struct {
	id        uint
	userID    uint
	eventID   uint
	readAt    *time.Time
	createdAt time.Time
}

func NewEventNotification(userID, eventID uint) (*EventNotification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	return &EventNotification{
		userID:    userID,
		eventID:   eventID,
		createdAt: time.Now(),
	}, nil
}

func ReconstructEventNotification(id, userID, eventID uint, readAt *time.Time, createdAt time.Time) (*EventNotification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	return &EventNotification{
		id:        id,
		userID:    userID,
		eventID:   eventID,
		readAt:    readAt,
		createdAt: createdAt,
	}, nil
}

func (n *EventNotification) ID() uint {
	return n.id
}

func (n *EventNotification) UserID() uint {
	return n.userID
}

func (n *EventNotification) EventID() uint {
	return n.eventID
}

func (n *EventNotification) ReadAt() *time.Time {
	return n.readAt
}

func (n *EventNotification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *EventNotification) IsRead() bool {
	return n.readAt != nil
}

func (n *EventNotification) MarkRead() {
	if n.readAt == nil {
		now := time.Now()
		n.readAt = &now
	}
}

func (n *EventNotification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}
