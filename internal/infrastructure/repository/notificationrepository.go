package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trackd/internal/domain/notification"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

// SaveIgnoreDuplicate makes fan-out idempotent: re-delivering an event to a
// user who already has a feed row is a silent no-op.
func (r *NotificationRepository) SaveIgnoreDuplicate(ctx context.Context, n *notification.EventNotification) error {
	model := r.mapper.ToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save notification: %w", result.Error)
	}

	if result.RowsAffected > 0 && model.ID != 0 {
		return n.SetID(model.ID)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*notification.EventNotification, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.EventNotificationModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notificationModels []models.EventNotificationModel
	if err := query.
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*notification.EventNotification, len(notificationModels))
	for i, model := range notificationModels {
		n, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		notifications[i] = n
	}
	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.EventNotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.EventNotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Where("read_at IS NULL").
		Update("read_at", time.Now().UnixMilli())
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either missing, another user's row, or already read. Check which.
		var count int64
		if err := tx.
			Model(&models.EventNotificationModel{}).
			Where("id = ? AND user_id = ?", notificationID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check notification: %w", err)
		}
		if count == 0 {
			return errors.NewNotFoundError("notification not found")
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.EventNotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now().UnixMilli()).Error; err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
