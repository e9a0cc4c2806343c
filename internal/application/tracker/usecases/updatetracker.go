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

type UpdateTrackerCommand struct {
	TrackerID uint
	ActorID   uint

	// Each field is applied only when non-nil; a request may change the
	// description, the default masks, or both.
	Description    *string
	AnonymousPerms *tracker.AccessMask
	UserPerms      *tracker.AccessMask
	SubmitterPerms *tracker.AccessMask
}

type UpdateTrackerResult struct {
	TrackerID      uint
	Description    string
	AnonymousPerms []string
	UserPerms      []string
	SubmitterPerms []string
}

// UpdateTrackerUseCase reconfigures a tracker. Only the owner may do this;
// default-mask changes take effect for all future access resolution, and a
// tracker_update webhook is queued for the tracker's and owner's
// subscriptions.
type UpdateTrackerUseCase struct {
	trackerRepo tracker.TrackerRepository
	dispatcher  Dispatcher
	txManager   db.TxManager
	logger      logger.Interface
}

func NewUpdateTrackerUseCase(
	trackerRepo tracker.TrackerRepository,
	dispatcher Dispatcher,
	txManager db.TxManager,
	logger logger.Interface,
) *UpdateTrackerUseCase {
	return &UpdateTrackerUseCase{
		trackerRepo: trackerRepo,
		dispatcher:  dispatcher,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *UpdateTrackerUseCase) Execute(ctx context.Context, cmd UpdateTrackerCommand) (*UpdateTrackerResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}

	var tr *tracker.Tracker
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		tr, err = uc.trackerRepo.GetByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		if tr.OwnerID() != cmd.ActorID {
			return errors.NewForbiddenError("only the tracker owner can update it")
		}

		if cmd.Description != nil {
			if err := tr.UpdateDescription(*cmd.Description); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}
		if cmd.AnonymousPerms != nil || cmd.UserPerms != nil || cmd.SubmitterPerms != nil {
			anon := tr.DefaultAnonymousPerms()
			users := tr.DefaultUserPerms()
			submitters := tr.DefaultSubmitterPerms()
			if cmd.AnonymousPerms != nil {
				anon = *cmd.AnonymousPerms
			}
			if cmd.UserPerms != nil {
				users = *cmd.UserPerms
			}
			if cmd.SubmitterPerms != nil {
				submitters = *cmd.SubmitterPerms
			}
			if err := tr.ConfigureAccess(anon, users, submitters); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}

		if err := uc.trackerRepo.Update(txCtx, tr); err != nil {
			return err
		}

		return uc.dispatcher.Dispatch(txCtx, webhook.EventTrackerUpdate,
			[]appwebhook.ScopeRef{
				{Scope: webhook.ScopeTracker, ID: tr.ID()},
				{Scope: webhook.ScopeUser, ID: tr.OwnerID()},
			},
			appwebhook.BuildTrackerPayload(tr),
		)
	})
	if err != nil {
		uc.logger.Errorw("failed to update tracker", "tracker_id", cmd.TrackerID, "error", err)
		return nil, err
	}

	uc.logger.Infow("tracker updated", "tracker_id", tr.ID())
	return &UpdateTrackerResult{
		TrackerID:      tr.ID(),
		Description:    tr.Description(),
		AnonymousPerms: tr.DefaultAnonymousPerms().Names(),
		UserPerms:      tr.DefaultUserPerms().Names(),
		SubmitterPerms: tr.DefaultSubmitterPerms().Names(),
	}, nil
}
