package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trackd/internal/domain/tracker"
	"trackd/internal/infrastructure/persistence/mappers"
	"trackd/internal/infrastructure/persistence/models"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
)

type TrackerRepository struct {
	db     *gorm.DB
	mapper mappers.TrackerMapper
}

func NewTrackerRepository(db *gorm.DB) *TrackerRepository {
	return &TrackerRepository{
		db:     db,
		mapper: mappers.NewTrackerMapper(),
	}
}

func (r *TrackerRepository) Save(ctx context.Context, t *tracker.Tracker) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save tracker: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TrackerRepository) Update(ctx context.Context, t *tracker.Tracker) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TrackerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"description":             model.Description,
			"default_anonymous_perms": model.DefaultAnonymousPerms,
			"default_user_perms":      model.DefaultUserPerms,
			"default_submitter_perms": model.DefaultSubmitterPerms,
			"next_ticket_id":          model.NextTicketID,
			"updated_at":              model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tracker: %w", result.Error)
	}

	return nil
}

// Delete removes the tracker and everything scoped to it. The cascade is
// explicit because the schema carries no foreign keys.
func (r *TrackerRepository) Delete(ctx context.Context, trackerID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var ticketIDs []uint
	if err := tx.
		Model(&models.TicketModel{}).
		Where("tracker_id = ?", trackerID).
		Pluck("id", &ticketIDs).Error; err != nil {
		return fmt.Errorf("failed to list tracker tickets: %w", err)
	}

	if len(ticketIDs) > 0 {
		var eventIDs []uint
		if err := tx.
			Model(&models.EventModel{}).
			Where("ticket_id IN ?", ticketIDs).
			Pluck("id", &eventIDs).Error; err != nil {
			return fmt.Errorf("failed to list ticket events: %w", err)
		}
		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventNotificationModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete event notifications: %w", err)
			}
		}
		for _, m := range []any{
			&models.EventModel{},
			&models.CommentModel{},
			&models.TicketLabelModel{},
			&models.TicketParticipantModel{},
			&models.SubscriptionModel{},
		} {
			if err := tx.Where("ticket_id IN ?", ticketIDs).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete ticket children: %w", err)
			}
		}
		if err := tx.Delete(&models.TicketModel{}, ticketIDs).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
	}

	for _, m := range []any{
		&models.SubscriptionModel{},
		&models.UserAccessModel{},
		&models.LabelModel{},
	} {
		if err := tx.Where("tracker_id = ?", trackerID).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to delete tracker children: %w", err)
		}
	}

	result := tx.Delete(&models.TrackerModel{}, trackerID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tracker: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("tracker not found")
	}
	return nil
}

func (r *TrackerRepository) GetByID(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	var model models.TrackerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, trackerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("tracker not found")
		}
		return nil, fmt.Errorf("failed to find tracker: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TrackerRepository) GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*tracker.Tracker, error) {
	var model models.TrackerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("tracker not found")
		}
		return nil, fmt.Errorf("failed to find tracker: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// GetByIDForUpdate takes a row lock held until the enclosing transaction
// commits. Scoped id allocation depends on it.
func (r *TrackerRepository) GetByIDForUpdate(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	var model models.TrackerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, trackerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("tracker not found")
		}
		return nil, fmt.Errorf("failed to lock tracker: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TrackerRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*tracker.Tracker, error) {
	var trackerModels []models.TrackerModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&trackerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list trackers: %w", err)
	}

	trackers := make([]*tracker.Tracker, len(trackerModels))
	for i, model := range trackerModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		trackers[i] = t
	}
	return trackers, nil
}
