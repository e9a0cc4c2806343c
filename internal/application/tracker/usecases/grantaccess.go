package usecases

import (
	"context"

	"trackd/internal/domain/tracker"
	"trackd/internal/shared/db"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type GrantAccessCommand struct {
	TrackerID   uint
	ActorID     uint
	UserID      uint
	Permissions tracker.AccessMask
}

type GrantAccessResult struct {
	TrackerID   uint
	UserID      uint
	Permissions []string
}

// GrantAccessUseCase creates a per-user permission override. The override
// replaces the tier the user would otherwise fall into; granting AccessNone
// is a valid way to lock a specific user out of an otherwise public tracker.
type GrantAccessUseCase struct {
	trackerRepo tracker.TrackerRepository
	accessRepo  tracker.UserAccessRepository
	txManager   db.TxManager
	logger      logger.Interface
}

func NewGrantAccessUseCase(
	trackerRepo tracker.TrackerRepository,
	accessRepo tracker.UserAccessRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		trackerRepo: trackerRepo,
		accessRepo:  accessRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (*GrantAccessResult, error) {
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
			return errors.NewForbiddenError("only the tracker owner can grant access")
		}
		if tr.OwnerID() == cmd.UserID {
			return errors.NewValidationError("the tracker owner always has full access")
		}

		existing, err := uc.accessRepo.GetByTrackerAndUser(txCtx, cmd.TrackerID, cmd.UserID)
		if err != nil && !errors.IsNotFoundError(err) {
			return err
		}
		if existing != nil {
			return errors.NewConflictError("an access override for this user already exists")
		}

		ua, err := tracker.NewUserAccess(cmd.TrackerID, cmd.UserID, cmd.Permissions)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.accessRepo.Save(txCtx, ua); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("an access override for this user already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to grant access", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("access granted", "tracker_id", cmd.TrackerID, "user_id", cmd.UserID, "permissions", cmd.Permissions.String())
	return &GrantAccessResult{
		TrackerID:   cmd.TrackerID,
		UserID:      cmd.UserID,
		Permissions: cmd.Permissions.Names(),
	}, nil
}
