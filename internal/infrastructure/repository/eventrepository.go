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

// EventRepository persists the append-only activity log. There is no update
// or delete path; rows are immutable once committed.
type EventRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *EventRepository) Append(ctx context.Context, e *ticket.Event) error {
	model := r.mapper.EventToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return e.SetID(model.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uint) (*ticket.Event, error) {
	var model models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return r.mapper.EventToDomain(&model)
}

func (r *EventRepository) ListByTicket(ctx context.Context, ticketID uint, afterID uint, limit int) ([]*ticket.Event, error) {
	var eventModels []models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Where("ticket_id = ?", ticketID)
	if afterID > 0 {
		query = query.Where("id > ?", afterID)
	}
	if err := query.
		Order("id ASC").
		Limit(limit).
		Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*ticket.Event, len(eventModels))
	for i, model := range eventModels {
		ev, err := r.mapper.EventToDomain(&model)
		if err != nil {
			return nil, err
		}
		events[i] = ev
	}
	return events, nil
}
