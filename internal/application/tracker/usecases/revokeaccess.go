package usecases

import (
	"context"

	"trackd/internal/domain/tracker"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type RevokeAccessCommand struct {
	TrackerID uint
	ActorID   uint
	UserID    uint
}

type RevokeAccessResult struct {
	TrackerID uint
	UserID    uint
}

// RevokeAccessUseCase removes a per-user override; the user falls back to
// whatever default tier applies to them.
type RevokeAccessUseCase struct {
	trackerRepo tracker.TrackerRepository
	accessRepo  tracker.UserAccessRepository
	txManager   db.TxManager
	logger      logger.Interface
}

func NewRevokeAccessUseCase(
	trackerRepo tracker.TrackerRepository,
	accessRepo tracker.UserAccessRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *RevokeAccessUseCase {
	return &RevokeAccessUseCase{
		trackerRepo: trackerRepo,
		accessRepo:  accessRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *RevokeAccessUseCase) Execute(ctx context.Context, cmd RevokeAccessCommand) (*RevokeAccessResult, error) {
	if cmd.TrackerID == 0 {
		return nil, errors.NewValidationError("tracker ID is required")
	}
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tr, err := uc.trackerRepo.GetByID(txCtx, cmd.TrackerID)
		if err != nil {
			return err
		}
		if tr.OwnerID() != cmd.ActorID {
			return errors.NewForbiddenError("only the tracker owner can revoke access")
		}

		if _, err := uc.accessRepo.GetByTrackerAndUser(txCtx, cmd.TrackerID, cmd.UserID); err != nil {
			return err
		}
		return uc.accessRepo.Delete(txCtx, cmd.TrackerID, cmd.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to revoke access", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("access revoked", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID)
	return &RevokeAccessResult{TrackerID: cmd.TrackerID, UserID: cmd.UserID}, nil
}
