package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type UnsubscribeTicketCommand struct {
	TrackerID uint
	ScopedID  uint
	UserID    uint
}

type UnsubscribeTicketResult struct {
	TicketID uint
}

// UnsubscribeTicketUseCase drops a ticket-level subscription. A tracker-level
// subscription the user also holds keeps delivering; the user must drop that
// one separately to go quiet.
type UnsubscribeTicketUseCase struct {
	ticketRepo       ticket.TicketRepository
	subscriptionRepo ticket.SubscriptionRepository
	logger           logger.Interface
}

func NewUnsubscribeTicketUseCase(
	ticketRepo ticket.TicketRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	logger logger.Interface,
) *UnsubscribeTicketUseCase {
	return &UnsubscribeTicketUseCase{
		ticketRepo:       ticketRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *UnsubscribeTicketUseCase) Execute(ctx context.Context, cmd UnsubscribeTicketCommand) (*UnsubscribeTicketResult, error) {
	if cmd.TrackerID == 0 || cmd.ScopedID == 0 {
		return nil, errors.NewValidationError("tracker ID and ticket number are required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	tk, err := uc.ticketRepo.GetByScopedID(ctx, cmd.TrackerID, cmd.ScopedID)
	if err != nil {
		return nil, err
	}
	sub, err := uc.subscriptionRepo.GetTicketSubscription(ctx, tk.ID(), cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Delete(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to unsubscribe from ticket", "ticket_id", tk.ID(), "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket subscription removed", "ticket_id", tk.ID(), "user_id", cmd.UserID)
	return &UnsubscribeTicketResult{TicketID: tk.ID()}, nil
}
