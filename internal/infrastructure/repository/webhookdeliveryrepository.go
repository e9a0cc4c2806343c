package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trackd/internal/domain/webhook"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type WebhookDeliveryRepository struct {
	db     *gorm.DB
	mapper mappers.WebhookMapper
}

func NewWebhookDeliveryRepository(db *gorm.DB) *WebhookDeliveryRepository {
	return &WebhookDeliveryRepository{
		db:     db,
		mapper: mappers.NewWebhookMapper(),
	}
}

func (r *WebhookDeliveryRepository) Save(ctx context.Context, d *webhook.Delivery) error {
	model := r.mapper.DeliveryToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save webhook delivery: %w", err)
	}
	return nil
}

func (r *WebhookDeliveryRepository) Update(ctx context.Context, d *webhook.Delivery) error {
	model := r.mapper.DeliveryToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WebhookDeliveryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"attempts":        model.Attempts,
			"status":          model.Status,
			"next_attempt_at": model.NextAttemptAt,
			"last_error":      model.LastError,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update webhook delivery: %w", result.Error)
	}
	return nil
}

// ClaimDue returns pending deliveries whose next attempt time has passed, in
// creation order. A subscription with an older still-pending delivery is held
// back entirely: its newer records only become claimable once the older one
// is delivered or permanently failed, so deliveries reach each target in
// event order even across retry windows.
func (r *WebhookDeliveryRepository) ClaimDue(ctx context.Context, limit int) ([]*webhook.Delivery, error) {
	var deliveryModels []models.WebhookDeliveryModel
	tx := db.GetTxFromContext(ctx, r.db)

	pending := string(webhook.DeliveryPending)
	if err := tx.
		Where("status = ? AND next_attempt_at <= ?", pending, time.Now().UnixMilli()).
		Where(`NOT EXISTS (
			SELECT 1 FROM webhook_deliveries older
			WHERE older.subscription_id = webhook_deliveries.subscription_id
			  AND older.status = ?
			  AND older.created_at < webhook_deliveries.created_at
		)`, pending).
		Order("created_at ASC").
		Limit(limit).
		Find(&deliveryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to claim due deliveries: %w", err)
	}

	deliveries := make([]*webhook.Delivery, len(deliveryModels))
	for i, model := range deliveryModels {
		d, err := r.mapper.DeliveryToDomain(&model)
		if err != nil {
			return nil, err
		}
		deliveries[i] = d
	}
	return deliveries, nil
}

func (r *WebhookDeliveryRepository) GetByID(ctx context.Context, deliveryID string) (*webhook.Delivery, error) {
	var model models.WebhookDeliveryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("id = ?", deliveryID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("webhook delivery not found")
		}
		return nil, fmt.Errorf("failed to find webhook delivery: %w", err)
	}

	return r.mapper.DeliveryToDomain(&model)
}
