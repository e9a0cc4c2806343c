package usecases

import (
	"context"

	"trackd/internal/application/access"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type DeleteLabelCommand struct {
	TrackerID uint
	LabelID   uint
	ActorID   uint
}

type DeleteLabelResult struct {
	LabelID uint
}

// DeleteLabelUseCase removes a label definition and, through the cascade,
// every application of it. Requires triage access.
type DeleteLabelUseCase struct {
	trackerRepo tracker.TrackerRepository
	labelRepo   tracker.LabelRepository
	resolver    *access.Resolver
	txManager   db.TxManager
	logger      logger.Interface
}

func NewDeleteLabelUseCase(
	trackerRepo tracker.TrackerRepository,
	labelRepo tracker.LabelRepository,
	resolver *access.Resolver,
	txManager db.TxManager,
	logger logger.Interface,
) *DeleteLabelUseCase {
	return &DeleteLabelUseCase{
		trackerRepo: trackerRepo,
		labelRepo:   labelRepo,
		resolver:    resolver,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteLabelUseCase) Execute(ctx context.Context, cmd DeleteLabelCommand) (*DeleteLabelResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if cmd.LabelID == 0 {
		return nil, errors.NewValidationError("label ID is required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tr, err := uc.trackerRepo.GetByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		mask, err := uc.resolver.ForTracker(txCtx, tr, tracker.UserActor(cmd.ActorID))
		if err != nil {
			return err
		}
		if !mask.Contains(tracker.AccessTriage) {
			return errors.NewForbiddenError("triage access is required to manage labels")
		}

		label, err := uc.labelRepo.GetByID(txCtx, cmd.LabelID)
		if err != nil {
			return err
		}
		if label.TrackerID() != cmd.TrackerID {
			return errors.NewNotFoundError("label not found on this tracker")
		}

		return uc.labelRepo.Delete(txCtx, cmd.LabelID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete label", "tracker_id", cmd.TrackerID, "label_id", cmd.LabelID, "error", err)
		return nil, err
	}

	uc.logger.Infow("label deleted", "tracker_id", cmd.TrackerID, "label_id", cmd.LabelID)
	return &DeleteLabelResult{LabelID: cmd.LabelID}, nil
}
