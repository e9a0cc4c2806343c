package usecases

import (
	"context"

	appnotification "trackd/internal/application/notification"
	"trackd/internal/domain/notification"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type MarkReadCommand struct {
	UserID uint
	// NotificationID is zero to mark the whole feed read.
	NotificationID uint
}

type MarkReadResult struct {
	UserID uint
}

// MarkReadUseCase marks one notification, or the whole feed, as read. The
// repository scopes the update to the user, so a caller cannot mark another
// user's entries.
type MarkReadUseCase struct {
	notificationRepo notification.EventNotificationRepository
	cache            appnotification.UnreadCounterCache
	logger           logger.Interface
}

func NewMarkReadUseCase(
	notificationRepo notification.EventNotificationRepository,
	cache appnotification.UnreadCounterCache,
	logger logger.Interface,
) *MarkReadUseCase {
	return &MarkReadUseCase{
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	var err error
	if cmd.NotificationID == 0 {
		err = uc.notificationRepo.MarkAllRead(ctx, cmd.UserID)
	} else {
		err = uc.notificationRepo.MarkRead(ctx, cmd.UserID, cmd.NotificationID)
	}
	if err != nil {
		uc.logger.Errorw("failed to mark notifications read", "user_id", cmd.UserID, "notification_id", cmd.NotificationID, "error", err)
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cmd.UserID); err != nil {
		uc.logger.Warnw("failed to invalidate unread counter", "user_id", cmd.UserID, "error", err)
	}
	return &MarkReadResult{UserID: cmd.UserID}, nil
}
