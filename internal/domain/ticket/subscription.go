package ticket

import (
	"fmt"
	"time"
)

// Subscription is a standing interest registration driving notification
// fan-out. A tracker-level subscription has a nil ticket id; a ticket-level
// subscription has a concrete one. A user may hold both at once.
type Subscription struct {
	id        uint
	trackerID *uint
	ticketID  *uint
	userID    uint
	createdAt time.Time
}

// NewTrackerSubscription subscribes a user to every ticket in a tracker.
func NewTrackerSubscription(trackerID, userID uint) (*Subscription, error) {
	if trackerID == 0 {
		return nil, fmt.Errorf("tracker ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Subscription{
		trackerID: &trackerID,
		userID:    userID,
		createdAt: time.Now(),
	}, nil
}

// NewTicketSubscription subscribes a user to a single ticket.
func NewTicketSubscription(ticketID, userID uint) (*Subscription, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Subscription{
		ticketID:  &ticketID,
		userID:    userID,
		createdAt: time.Now(),
	}, nil
}

func ReconstructSubscription(id uint, trackerID, ticketID *uint, userID uint, createdAt time.Time) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if (trackerID == nil) == (ticketID == nil) {
		return nil, fmt.Errorf("subscription must target exactly one of tracker or ticket")
	}
	return &Subscription{
		id:        id,
		trackerID: trackerID,
		ticketID:  ticketID,
		userID:    userID,
		createdAt: createdAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) TrackerID() *uint {
	return s.trackerID
}

func (s *Subscription) TicketID() *uint {
	return s.ticketID
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) IsTrackerLevel() bool {
	return s.trackerID != nil
}

func (s *Subscription) IsTicketLevel() bool {
	return s.ticketID != nil
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}
