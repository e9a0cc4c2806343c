package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type SubscribeTicketCommand struct {
	TrackerID uint
	ScopedID  uint
	UserID    uint
}

type SubscribeTicketResult struct {
	SubscriptionID uint
	TicketID       uint
}

// SubscribeTicketUseCase registers interest in a single ticket. Subscribing
// twice is idempotent and returns the existing registration.
type SubscribeTicketUseCase struct {
	trackerRepo      tracker.TrackerRepository
	ticketRepo       ticket.TicketRepository
	subscriptionRepo ticket.SubscriptionRepository
	resolver         AccessResolver
	logger           logger.Interface
}

func NewSubscribeTicketUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	resolver AccessResolver,
	logger logger.Interface,
) *SubscribeTicketUseCase {
	return &SubscribeTicketUseCase{
		trackerRepo:      trackerRepo,
		ticketRepo:       ticketRepo,
		subscriptionRepo: subscriptionRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

func (uc *SubscribeTicketUseCase) Execute(ctx context.Context, cmd SubscribeTicketCommand) (*SubscribeTicketResult, error) {
	if cmd.TrackerID == 0 || cmd.ScopedID == 0 {
		return nil, errors.NewValidationError("tracker ID and ticket number are required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	tr, err := uc.trackerRepo.GetByID(ctx, cmd.TrackerID)
	if err != nil {
		return nil, err
	}
	tk, err := uc.ticketRepo.GetByScopedID(ctx, cmd.TrackerID, cmd.ScopedID)
	if err != nil {
		return nil, err
	}

	mask, err := uc.resolver.ForTicket(ctx, tr, tk, tracker.UserActor(cmd.UserID))
	if err != nil {
		return nil, err
	}
	if !mask.Contains(tracker.AccessBrowse) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	existing, err := uc.subscriptionRepo.GetTicketSubscription(ctx, tk.ID(), cmd.UserID)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	if existing != nil {
		return &SubscribeTicketResult{SubscriptionID: existing.ID(), TicketID: tk.ID()}, nil
	}

	sub, err := ticket.NewTicketSubscription(tk.ID(), cmd.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.subscriptionRepo.Save(ctx, sub); err != nil {
		uc.logger.Errorw("failed to subscribe to ticket", "ticket_id", tk.ID(), "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket subscription created", "ticket_id", tk.ID(), "user_id", cmd.UserID)
	return &SubscribeTicketResult{SubscriptionID: sub.ID(), TicketID: tk.ID()}, nil
}
