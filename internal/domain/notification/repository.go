package notification

import (
	"context"
)

type EventNotificationRepository interface {
	// SaveIgnoreDuplicate inserts the notification, silently dropping the
	// insert when a row for the same (user, event) already exists.
	SaveIgnoreDuplicate(ctx context.Context, n *EventNotification) error
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*EventNotification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}
