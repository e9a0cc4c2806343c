package usecases

import (
	"context"

	"trackd/internal/domain/notification"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type ListNotificationsQuery struct {
	UserID   uint
	Page     int
	PageSize int
}

type NotificationDTO struct {
	NotificationID uint
	EventID        uint
	Read           bool
	CreatedAt      string
}

type ListNotificationsResult struct {
	Notifications []*NotificationDTO
	Total         int64
	Page          int
	PageSize      int
}

// ListNotificationsUseCase pages through a user's own feed, newest first.
type ListNotificationsUseCase struct {
	notificationRepo notification.EventNotificationRepository
	logger           logger.Interface
}

func NewListNotificationsUseCase(
	notificationRepo notification.EventNotificationRepository,
	logger logger.Interface,
) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo, logger: logger}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*ListNotificationsResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 25
	}

	notifications, total, err := uc.notificationRepo.ListByUser(ctx, query.UserID, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", query.UserID, "error", err)
		return nil, err
	}

	dtos := make([]*NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, &NotificationDTO{
			NotificationID: n.ID(),
			EventID:        n.EventID(),
			Read:           n.IsRead(),
			CreatedAt:      n.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &ListNotificationsResult{
		Notifications: dtos,
		Total:         total,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}, nil
}
