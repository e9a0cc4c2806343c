package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trackd/internal/domain/webhook"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type WebhookSubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.WebhookMapper
}

func NewWebhookSubscriptionRepository(db *gorm.DB) *WebhookSubscriptionRepository {
	return &WebhookSubscriptionRepository{
		db:     db,
		mapper: mappers.NewWebhookMapper(),
	}
}

func (r *WebhookSubscriptionRepository) Save(ctx context.Context, s *webhook.Subscription) error {
	model, err := r.mapper.SubscriptionToModel(s)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save webhook subscription: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *WebhookSubscriptionRepository) Delete(ctx context.Context, subscriptionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.WebhookSubscriptionModel{}, subscriptionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete webhook subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("webhook subscription not found")
	}
	return nil
}

func (r *WebhookSubscriptionRepository) GetByID(ctx context.Context, subscriptionID uint) (*webhook.Subscription, error) {
	var model models.WebhookSubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, subscriptionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("webhook subscription not found")
		}
		return nil, fmt.Errorf("failed to find webhook subscription: %w", err)
	}

	return r.mapper.SubscriptionToDomain(&model)
}

func (r *WebhookSubscriptionRepository) ListActiveByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	return r.list(ctx, scope, scopeID, true)
}

func (r *WebhookSubscriptionRepository) ListByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	return r.list(ctx, scope, scopeID, false)
}

func (r *WebhookSubscriptionRepository) Disable(ctx context.Context, subscriptionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.WebhookSubscriptionModel{}).
		Where("id = ?", subscriptionID).
		Update("active", false).Error; err != nil {
		return fmt.Errorf("failed to disable webhook subscription: %w", err)
	}
	return nil
}

func (r *WebhookSubscriptionRepository) list(ctx context.Context, scope webhook.Scope, scopeID uint, activeOnly bool) ([]*webhook.Subscription, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("scope = ? AND scope_id = ?", string(scope), scopeID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var subModels []models.WebhookSubscriptionModel
	if err := query.
		Order("id ASC").
		Find(&subModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list webhook subscriptions: %w", err)
	}

	subs := make([]*webhook.Subscription, len(subModels))
	for i, model := range subModels {
		s, err := r.mapper.SubscriptionToDomain(&model)
		if err != nil {
			return nil, err
		}
		subs[i] = s
	}
	return subs, nil
}
