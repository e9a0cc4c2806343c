package notification

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
)

// EventMailer sends the email rendition of an event to the given recipients.
// Implementations run post-commit; a failed send is logged and dropped, it
// never affects the originating request.
type EventMailer interface {
	SendEventNotification(
		ctx context.Context,
		recipients []*user.User,
		tr *tracker.Tracker,
		tk *ticket.Ticket,
		ev *ticket.Event,
		comment *ticket.Comment,
	) error
}

// UnreadCounterCache caches per-user unread feed counts. Fan-out and
// mark-read invalidate; the count endpoint reads through.
type UnreadCounterCache interface {
	Get(ctx context.Context, userID uint) (int64, bool, error)
	Set(ctx context.Context, userID uint, count int64) error
	Invalidate(ctx context.Context, userID uint) error
}
