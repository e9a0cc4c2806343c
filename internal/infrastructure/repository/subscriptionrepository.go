package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trackd/internal/domain/ticket"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type SubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *SubscriptionRepository) Save(ctx context.Context, s *ticket.Subscription) error {
	model := r.mapper.SubscriptionToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriptionID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.SubscriptionModel{}, subscriptionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("subscription not found")
	}
	return nil
}

func (r *SubscriptionRepository) GetTrackerSubscription(ctx context.Context, trackerID, userID uint) (*ticket.Subscription, error) {
	var model models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ? AND user_id = ?", trackerID, userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return r.mapper.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) GetTicketSubscription(ctx context.Context, ticketID, userID uint) (*ticket.Subscription, error) {
	var model models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return r.mapper.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*ticket.Subscription, error) {
	return r.list(ctx, "tracker_id = ?", trackerID)
}

func (r *SubscriptionRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Subscription, error) {
	return r.list(ctx, "ticket_id = ?", ticketID)
}

func (r *SubscriptionRepository) list(ctx context.Context, cond string, id uint) ([]*ticket.Subscription, error) {
	var subModels []models.SubscriptionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where(cond, id).
		Find(&subModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	subs := make([]*ticket.Subscription, len(subModels))
	for i, model := range subModels {
		s, err := r.mapper.SubscriptionToDomain(&model)
		if err != nil {
			return nil, err
		}
		subs[i] = s
	}
	return subs, nil
}
