package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type ListEventsQuery struct {
	TrackerID uint
	ScopedID  uint
	Actor     tracker.Actor
	// AfterID is a cursor: only events with a greater id are returned, so a
	// consumer can resume from the last event it has seen.
	AfterID uint
	Limit   int
}

type EventDTO struct {
	EventID       uint
	TicketID      uint
	EventType     []string
	UserID        uint
	CommentID     *uint
	OldStatus     string
	NewStatus     string
	OldResolution string
	NewResolution string
	LabelID       *uint
	ByUserID      *uint
	CreatedAt     string
}

type ListEventsResult struct {
	Events []*EventDTO
	// NextAfterID feeds the next page's cursor; zero when the page is empty.
	NextAfterID uint
}

// ListEventsUseCase returns a ticket's activity in ascending id order.
// Requires browse access on the ticket.
type ListEventsUseCase struct {
	trackerRepo tracker.TrackerRepository
	ticketRepo  ticket.TicketRepository
	eventRepo   ticket.EventRepository
	resolver    AccessResolver
	logger      logger.Interface
}

func NewListEventsUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	eventRepo ticket.EventRepository,
	resolver AccessResolver,
	logger logger.Interface,
) *ListEventsUseCase {
	return &ListEventsUseCase{
		trackerRepo: trackerRepo,
		ticketRepo:  ticketRepo,
		eventRepo:   eventRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error) {
	if query.TrackerID == 0 || query.ScopedID == 0 {
		return nil, errors.NewValidationError("tracker ID and ticket number are required")
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 50
	}

	tr, err := uc.trackerRepo.GetByID(ctx, query.TrackerID)
	if err != nil {
		return nil, err
	}
	tk, err := uc.ticketRepo.GetByScopedID(ctx, query.TrackerID, query.ScopedID)
	if err != nil {
		return nil, err
	}

	mask, err := uc.resolver.ForTicket(ctx, tr, tk, query.Actor)
	if err != nil {
		return nil, err
	}
	if !mask.Contains(tracker.AccessBrowse) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	events, err := uc.eventRepo.ListByTicket(ctx, tk.ID(), query.AfterID, query.Limit)
	if err != nil {
		uc.logger.Errorw("failed to list events", "ticket_id", tk.ID(), "error", err)
		return nil, err
	}

	dtos := make([]*EventDTO, 0, len(events))
	var lastID uint
	for _, ev := range events {
		dtos = append(dtos, toEventDTO(ev))
		lastID = ev.ID()
	}
	return &ListEventsResult{Events: dtos, NextAfterID: lastID}, nil
}

func toEventDTO(ev *ticket.Event) *EventDTO {
	dto := &EventDTO{
		EventID:   ev.ID(),
		TicketID:  ev.TicketID(),
		EventType: ev.EventType().Names(),
		UserID:    ev.UserID(),
		CommentID: ev.CommentID(),
		LabelID:   ev.LabelID(),
		ByUserID:  ev.ByUserID(),
		CreatedAt: ev.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
	if ev.OldStatus() != nil {
		dto.OldStatus = ev.OldStatus().String()
		dto.NewStatus = ev.NewStatus().String()
		dto.OldResolution = ev.OldResolution().String()
		dto.NewResolution = ev.NewResolution().String()
	}
	return dto
}
