package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trackd/internal/domain/tracker"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type UserAccessRepository struct {
	db     *gorm.DB
	mapper mappers.TrackerMapper
}

func NewUserAccessRepository(db *gorm.DB) *UserAccessRepository {
	return &UserAccessRepository{
		db:     db,
		mapper: mappers.NewTrackerMapper(),
	}
}

func (r *UserAccessRepository) Save(ctx context.Context, ua *tracker.UserAccess) error {
	model := r.mapper.UserAccessToModel(ua)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user access: %w", err)
	}

	return ua.SetID(model.ID)
}

func (r *UserAccessRepository) Delete(ctx context.Context, trackerID, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("tracker_id = ? AND user_id = ?", trackerID, userID).
		Delete(&models.UserAccessModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user access: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("access override not found")
	}
	return nil
}

func (r *UserAccessRepository) GetByTrackerAndUser(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
	var model models.UserAccessModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ? AND user_id = ?", trackerID, userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("access override not found")
		}
		return nil, fmt.Errorf("failed to find user access: %w", err)
	}

	return r.mapper.UserAccessToDomain(&model)
}

func (r *UserAccessRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.UserAccess, error) {
	var accessModels []models.UserAccessModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ?", trackerID).
		Find(&accessModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list user access: %w", err)
	}

	overrides := make([]*tracker.UserAccess, len(accessModels))
	for i, model := range accessModels {
		ua, err := r.mapper.UserAccessToDomain(&model)
		if err != nil {
			return nil, err
		}
		overrides[i] = ua
	}
	return overrides, nil
}
