package usecases

import (
	"context"

	"trackd/internal/application/access"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type SubscribeTrackerCommand struct {
	TrackerID uint
	UserID    uint
}

type SubscribeTrackerResult struct {
	SubscriptionID uint
	TrackerID      uint
}

// SubscribeTrackerUseCase registers interest in every ticket on a tracker.
// Subscribing twice is idempotent and returns the existing registration.
type SubscribeTrackerUseCase struct {
	trackerRepo      tracker.TrackerRepository
	subscriptionRepo ticket.SubscriptionRepository
	resolver         *access.Resolver
	logger           logger.Interface
}

func NewSubscribeTrackerUseCase(
	trackerRepo tracker.TrackerRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	resolver *access.Resolver,
	logger logger.Interface,
) *SubscribeTrackerUseCase {
	return &SubscribeTrackerUseCase{
		trackerRepo:      trackerRepo,
		subscriptionRepo: subscriptionRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

func (uc *SubscribeTrackerUseCase) Execute(ctx context.Context, cmd SubscribeTrackerCommand) (*SubscribeTrackerResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	tr, err := uc.trackerRepo.GetByID(ctx, cmd.TrackerID)
	if err != nil {
		return nil, err
	}
	mask, err := uc.resolver.ForTracker(ctx, tr, tracker.UserActor(cmd.UserID))
	if err != nil {
		return nil, err
	}
	if !mask.Contains(tracker.AccessBrowse) {
		return nil, errors.NewNotFoundError("tracker not found")
	}

	existing, err := uc.subscriptionRepo.GetTrackerSubscription(ctx, cmd.TrackerID, cmd.UserID)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	if existing != nil {
		return &SubscribeTrackerResult{SubscriptionID: existing.ID(), TrackerID: cmd.TrackerID}, nil
	}

	sub, err := ticket.NewTrackerSubscription(cmd.TrackerID, cmd.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.subscriptionRepo.Save(ctx, sub); err != nil {
		uc.logger.Errorw("failed to subscribe to tracker", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("tracker subscription created", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID)
	return &SubscribeTrackerResult{SubscriptionID: sub.ID(), TrackerID: cmd.TrackerID}, nil
}
