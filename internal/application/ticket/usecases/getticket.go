package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type GetTicketQuery struct {
	TrackerID uint
	ScopedID  uint
	Actor     tracker.Actor
}

type TicketDTO struct {
	TicketID    uint
	Ref         string
	TrackerID   uint
	ScopedID    uint
	SubmitterID uint
	Title       string
	Description string
	Status      string
	Resolution  string
	LabelIDs    []uint
	Access      []string
	CreatedAt   string
	UpdatedAt   string
}

// GetTicketUseCase fetches a ticket by tracker and number. Requires browse
// access resolved against the ticket, so a submitter can see their own
// ticket on trackers that hide tickets from the general public.
type GetTicketUseCase struct {
	trackerRepo tracker.TrackerRepository
	ticketRepo  ticket.TicketRepository
	resolver    AccessResolver
	logger      logger.Interface
}

func NewGetTicketUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	resolver AccessResolver,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		trackerRepo: trackerRepo,
		ticketRepo:  ticketRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*TicketDTO, error) {
	if query.TrackerID == 0 || query.ScopedID == 0 {
		return nil, errors.NewValidationError("tracker ID and ticket number are required")
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

	dto := toTicketDTO(tr, tk)
	dto.Access = mask.Names()
	return dto, nil
}

func toTicketDTO(tr *tracker.Tracker, tk *ticket.Ticket) *TicketDTO {
	resolution := ""
	if tk.Status().IsResolved() {
		resolution = tk.Resolution().String()
	}
	return &TicketDTO{
		TicketID:    tk.ID(),
		Ref:         ticketRef(tr, tk),
		TrackerID:   tk.TrackerID(),
		ScopedID:    tk.ScopedID(),
		SubmitterID: tk.SubmitterID(),
		Title:       tk.Title(),
		Description: tk.Description(),
		Status:      tk.Status().String(),
		Resolution:  resolution,
		LabelIDs:    tk.LabelIDs(),
		CreatedAt:   tk.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   tk.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
}
