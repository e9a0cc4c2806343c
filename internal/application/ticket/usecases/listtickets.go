package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type ListTicketsQuery struct {
	TrackerID uint
	Actor     tracker.Actor
	Page      int
	PageSize  int
}

type ListTicketsResult struct {
	Tickets  []*TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// ListTicketsUseCase pages through a tracker's tickets. Requires browse
// access on the tracker.
type ListTicketsUseCase struct {
	trackerRepo tracker.TrackerRepository
	ticketRepo  ticket.TicketRepository
	resolver    AccessResolver
	logger      logger.Interface
}

func NewListTicketsUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	resolver AccessResolver,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		trackerRepo: trackerRepo,
		ticketRepo:  ticketRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if query.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 || query.PageSize > 100 {
		query.PageSize = 25
	}

	tr, err := uc.trackerRepo.GetByID(ctx, query.TrackerID)
	if err != nil {
		return nil, err
	}
	mask, err := uc.resolver.ForTracker(ctx, tr, query.Actor)
	if err != nil {
		return nil, err
	}
	if !mask.Contains(tracker.AccessBrowse) {
		return nil, errors.NewNotFoundError("tracker not found")
	}

	tickets, total, err := uc.ticketRepo.List(ctx, query.TrackerID, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "tracker_id", query.TrackerID, "error", err)
		return nil, err
	}

	dtos := make([]*TicketDTO, 0, len(tickets))
	for _, tk := range tickets {
		dtos = append(dtos, toTicketDTO(tr, tk))
	}
	return &ListTicketsResult{
		Tickets:  dtos,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}
