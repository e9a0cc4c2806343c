package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type UnsubscribeTrackerCommand struct {
	TrackerID uint
	UserID    uint
}

type UnsubscribeTrackerResult struct {
	TrackerID uint
}

// UnsubscribeTrackerUseCase drops a tracker-level subscription. Ticket-level
// subscriptions the user holds are untouched.
type UnsubscribeTrackerUseCase struct {
	subscriptionRepo ticket.SubscriptionRepository
	logger           logger.Interface
}

func NewUnsubscribeTrackerUseCase(
	subscriptionRepo ticket.SubscriptionRepository,
	logger logger.Interface,
) *UnsubscribeTrackerUseCase {
	return &UnsubscribeTrackerUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *UnsubscribeTrackerUseCase) Execute(ctx context.Context, cmd UnsubscribeTrackerCommand) (*UnsubscribeTrackerResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	sub, err := uc.subscriptionRepo.GetTrackerSubscription(ctx, cmd.TrackerID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Delete(ctx, sub.ID()); err != nil {
		uc.logger.Errorw("failed to unsubscribe from tracker", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("tracker subscription removed", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID)
	return &UnsubscribeTrackerResult{TrackerID: cmd.TrackerID}, nil
}
