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

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return r.syncParticipants(ctx, model.ID, t.ParticipantIDs())
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"status":      model.Status,
			"resolution":  model.Resolution,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return r.syncParticipants(ctx, model.ID, t.ParticipantIDs())
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.toDomain(ctx, &model)
}

func (r *TicketRepository) GetByScopedID(ctx context.Context, trackerID, scopedID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("tracker_id = ? AND scoped_id = ?", trackerID, scopedID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.toDomain(ctx, &model)
}

func (r *TicketRepository) List(ctx context.Context, trackerID uint, page, pageSize int) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).Where("tracker_id = ?", trackerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.
		Order("scoped_id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.toDomain(ctx, &model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}
	return tickets, total, nil
}

func (r *TicketRepository) AddLabel(ctx context.Context, ticketID, labelID, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	model := &models.TicketLabelModel{
		TicketID: ticketID,
		LabelID:  labelID,
		UserID:   userID,
	}
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to apply label: %w", err)
	}
	return nil
}

func (r *TicketRepository) RemoveLabel(ctx context.Context, ticketID, labelID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("ticket_id = ? AND label_id = ?", ticketID, labelID).
		Delete(&models.TicketLabelModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove label: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) toDomain(ctx context.Context, model *models.TicketModel) (*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var labelIDs []uint
	if err := tx.
		Model(&models.TicketLabelModel{}).
		Where("ticket_id = ?", model.ID).
		Order("id ASC").
		Pluck("label_id", &labelIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket labels: %w", err)
	}

	var participantIDs []uint
	if err := tx.
		Model(&models.TicketParticipantModel{}).
		Where("ticket_id = ?", model.ID).
		Order("id ASC").
		Pluck("user_id", &participantIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket participants: %w", err)
	}

	return r.mapper.ToDomain(model, labelIDs, participantIDs)
}

// syncParticipants inserts any participant rows not yet present. Rows are
// never removed; participation is permanent.
func (r *TicketRepository) syncParticipants(ctx context.Context, ticketID uint, participantIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var existing []uint
	if err := tx.
		Model(&models.TicketParticipantModel{}).
		Where("ticket_id = ?", ticketID).
		Pluck("user_id", &existing).Error; err != nil {
		return fmt.Errorf("failed to load ticket participants: %w", err)
	}

	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	for _, userID := range participantIDs {
		if known[userID] {
			continue
		}
		model := &models.TicketParticipantModel{TicketID: ticketID, UserID: userID}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save ticket participant: %w", err)
		}
	}
	return nil
}
