package usecases

import (
	"context"

	"trackd/internal/application/access"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type CreateLabelCommand struct {
	TrackerID       uint
	ActorID         uint
	Name            string
	Color           string
	BackgroundColor string
}

type CreateLabelResult struct {
	LabelID         uint
	TrackerID       uint
	Name            string
	Color           string
	BackgroundColor string
}

// CreateLabelUseCase defines a label on a tracker. Requires triage access.
type CreateLabelUseCase struct {
	trackerRepo tracker.TrackerRepository
	labelRepo   tracker.LabelRepository
	resolver    *access.Resolver
	txManager   db.TxManager
	logger      logger.Interface
}

func NewCreateLabelUseCase(
	trackerRepo tracker.TrackerRepository,
	labelRepo tracker.LabelRepository,
	resolver *access.Resolver,
	txManager db.TxManager,
	logger logger.Interface,
) *CreateLabelUseCase {
	return &CreateLabelUseCase{
		trackerRepo: trackerRepo,
		labelRepo:   labelRepo,
		resolver:    resolver,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *CreateLabelUseCase) Execute(ctx context.Context, cmd CreateLabelCommand) (*CreateLabelResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}

	label, err := tracker.NewLabel(cmd.TrackerID, cmd.Name, cmd.Color, cmd.BackgroundColor)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
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

		existing, err := uc.labelRepo.GetByTrackerAndName(txCtx, cmd.TrackerID, cmd.Name)
		if err != nil && !errors.IsNotFoundError(err) {
			return err
		}
		if existing != nil {
			return errors.NewConflictError("a label with this name already exists")
		}

		if err := uc.labelRepo.Save(txCtx, label); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("a label with this name already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create label", "tracker_id", cmd.TrackerID, "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("label created", "tracker_id", cmd.TrackerID, "label_id", label.ID(), "name", label.Name())
	return &CreateLabelResult{
		LabelID:         label.ID(),
		TrackerID:       label.TrackerID(),
		Name:            label.Name(),
		Color:           label.Color(),
		BackgroundColor: label.BackgroundColor(),
	}, nil
}
