package usecases

import (
	"context"

	appnotification "trackd/internal/application/notification"
	"trackd/internal/domain/notification"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type UnreadCountQuery struct {
	UserID uint
}

type UnreadCountResult struct {
	Unread int64
}

// UnreadCountUseCase reads the unread counter through the cache. The badge
// is fetched on every page load, so a cache miss populates the entry and
// fan-out invalidates it.
type UnreadCountUseCase struct {
	notificationRepo notification.EventNotificationRepository
	cache            appnotification.UnreadCounterCache
	logger           logger.Interface
}

func NewUnreadCountUseCase(
	notificationRepo notification.EventNotificationRepository,
	cache appnotification.UnreadCounterCache,
	logger logger.Interface,
) *UnreadCountUseCase {
	return &UnreadCountUseCase{
		notificationRepo: notificationRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, query UnreadCountQuery) (*UnreadCountResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	if count, ok, err := uc.cache.Get(ctx, query.UserID); err == nil && ok {
		return &UnreadCountResult{Unread: count}, nil
	} else if err != nil {
		uc.logger.Warnw("unread counter cache read failed", "user_id", query.UserID, "error", err)
	}

	count, err := uc.notificationRepo.CountUnread(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", query.UserID, "error", err)
		return nil, err
	}
	if err := uc.cache.Set(ctx, query.UserID, count); err != nil {
		uc.logger.Warnw("unread counter cache write failed", "user_id", query.UserID, "error", err)
	}
	return &UnreadCountResult{Unread: count}, nil
}
