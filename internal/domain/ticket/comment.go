package ticket

import (
	"fmt"
	"time"
)

// Comment is a participant's comment on a ticket. The text is referenced by
// the event that recorded it; the comment row itself never changes.
type Comment struct {
	id        uint
	ticketID  uint
	userID    uint
	text      string
	createdAt time.Time
}

func NewComment(ticketID, userID uint, text string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(text) < 3 || len(text) > 16384 {
		return nil, fmt.Errorf("comment must be between 3 and 16384 characters")
	}

	return &Comment{
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: time.Now(),
	}, nil
}

func ReconstructComment(id, ticketID, userID uint, text string, createdAt time.Time) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		text:      text,
		createdAt: createdAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) UserID() uint {
	return c.userID
}

func (c *Comment) Text() string {
	return c.text
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
