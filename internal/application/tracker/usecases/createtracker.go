package usecases

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type CreateTrackerCommand struct {
	OwnerID     uint
	Name        string
	Description string
}

type CreateTrackerResult struct {
	TrackerID   uint
	Name        string
	Description string
}

// CreateTrackerUseCase creates a tracker and subscribes the owner to it, so
// the owner receives activity on their own tracker without an explicit
// subscribe call.
type CreateTrackerUseCase struct {
	trackerRepo      tracker.TrackerRepository
	subscriptionRepo ticket.SubscriptionRepository
	txManager        db.TxManager
	logger           logger.Interface
}

func NewCreateTrackerUseCase(
	trackerRepo tracker.TrackerRepository,
	subscriptionRepo ticket.SubscriptionRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *CreateTrackerUseCase {
	return &CreateTrackerUseCase{
		trackerRepo:      trackerRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *CreateTrackerUseCase) Execute(ctx context.Context, cmd CreateTrackerCommand) (*CreateTrackerResult, error) {
	uc.logger.Infow("creating tracker", "owner_id", cmd.OwnerID, "name", cmd.Name)

	tr, err := tracker.NewTracker(cmd.OwnerID, cmd.Name, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.trackerRepo.GetByOwnerAndName(txCtx, cmd.OwnerID, cmd.Name)
		if err != nil && !errors.IsNotFoundError(err) {
			return err
		}
		if existing != nil {
			return errors.NewConflictError("a tracker with this name already exists")
		}

		if err := uc.trackerRepo.Save(txCtx, tr); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("a tracker with this name already exists")
			}
			return err
		}

		sub, err := ticket.NewTrackerSubscription(tr.ID(), cmd.OwnerID)
		if err != nil {
			return err
		}
		return uc.subscriptionRepo.Save(txCtx, sub)
	})
	if err != nil {
		uc.logger.Errorw("failed to create tracker", "owner_id", cmd.OwnerID, "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("tracker created", "tracker_id", tr.ID(), "name", tr.Name())
	return &CreateTrackerResult{
		TrackerID:   tr.ID(),
		Name:        tr.Name(),
		Description: tr.Description(),
	}, nil
}
