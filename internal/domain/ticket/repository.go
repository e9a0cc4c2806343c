package ticket

import (
	"context"
)

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByScopedID(ctx context.Context, trackerID, scopedID uint) (*Ticket, error)
	List(ctx context.Context, trackerID uint, page, pageSize int) ([]*Ticket, int64, error)
	AddLabel(ctx context.Context, ticketID, labelID, userID uint) error
	RemoveLabel(ctx context.Context, ticketID, labelID uint) error
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}

// EventRepository is the append-only event log. Events are never mutated or
// deleted once committed.
type EventRepository interface {
	Append(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, eventID uint) (*Event, error)
	// ListByTicket returns events in ascending id order. The afterID cursor
	// makes the sequence restartable: pass the last seen id to resume.
	ListByTicket(ctx context.Context, ticketID uint, afterID uint, limit int) ([]*Event, error)
}

type SubscriptionRepository interface {
	Save(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, subscriptionID uint) error
	GetTrackerSubscription(ctx context.Context, trackerID, userID uint) (*Subscription, error)
	GetTicketSubscription(ctx context.Context, ticketID, userID uint) (*Subscription, error)
	ListByTracker(ctx context.Context, trackerID uint) ([]*Subscription, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Subscription, error)
}
