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

type LabelRepository struct {
	db     *gorm.DB
	mapper mappers.TrackerMapper
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{
		db:     db,
		mapper: mappers.NewTrackerMapper(),
	}
}

func (r *LabelRepository) Save(ctx context.Context, l *tracker.Label) error {
	model := r.mapper.LabelToModel(l)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save label: %w", err)
	}

	return l.SetID(model.ID)
}

// Delete removes the label definition and every application of it.
func (r *LabelRepository) Delete(ctx context.Context, labelID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("label_id = ?", labelID).Delete(&models.TicketLabelModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete label applications: %w", err)
	}

	result := tx.Delete(&models.LabelModel{}, labelID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete label: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("label not found")
	}
	return nil
}

func (r *LabelRepository) GetByID(ctx context.Context, labelID uint) (*tracker.Label, error) {
	var model models.LabelModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, labelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("label not found")
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	return r.mapper.LabelToDomain(&model)
}

func (r *LabelRepository) GetByTrackerAndName(ctx context.Context, trackerID uint, name string) (*tracker.Label, error) {
	var model models.LabelModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ? AND name = ?", trackerID, name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("label not found")
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}

	return r.mapper.LabelToDomain(&model)
}

func (r *LabelRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.Label, error) {
	var labelModels []models.LabelModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ?", trackerID).
		Order("name ASC").
		Find(&labelModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]*tracker.Label, len(labelModels))
	for i, model := range labelModels {
		l, err := r.mapper.LabelToDomain(&model)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}
