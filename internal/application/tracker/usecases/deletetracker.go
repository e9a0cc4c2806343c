package usecases

import (
	"context"

	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type DeleteTrackerCommand struct {
	TrackerID uint
	ActorID   uint
}

type DeleteTrackerResult struct {
	TrackerID uint
}

// DeleteTrackerUseCase removes a tracker and everything under it. The
// tracker_delete webhook rows are written before the cascade so subscribers
// get a final notification; the outbox rows survive because deliveries
// reference the subscription snapshot, not the tracker.
type DeleteTrackerUseCase struct {
	trackerRepo tracker.TrackerRepository
	dispatcher  Dispatcher
	txManager   db.TxManager
	logger      logger.Interface
}

func NewDeleteTrackerUseCase(
	trackerRepo tracker.TrackerRepository,
	dispatcher Dispatcher,
	txManager db.TxManager,
	logger logger.Interface,
) *DeleteTrackerUseCase {
	return &DeleteTrackerUseCase{
		trackerRepo: trackerRepo,
		dispatcher:  dispatcher,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteTrackerUseCase) Execute(ctx context.Context, cmd DeleteTrackerCommand) (*DeleteTrackerResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tr, err := uc.trackerRepo.GetByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		if tr.OwnerID() != cmd.ActorID {
			return errors.NewForbiddenError("only the tracker owner can delete it")
		}

		err = uc.dispatcher.Dispatch(txCtx, webhook.EventTrackerDelete,
			[]appwebhook.ScopeRef{
				{Scope: webhook.ScopeTracker, ID: tr.ID()},
				{Scope: webhook.ScopeUser, ID: tr.OwnerID()},
			},
			appwebhook.BuildTrackerPayload(tr),
		)
		if err != nil {
			return err
		}

		return uc.trackerRepo.Delete(txCtx, cmd.TrackerID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete tracker", "tracker_id", cmd.TrackerID, "error", err)
		return nil, err
	}

	uc.logger.Infow("tracker deleted", "tracker_id", cmd.TrackerID)
	return &DeleteTrackerResult{TrackerID: cmd.TrackerID}, nil
}
