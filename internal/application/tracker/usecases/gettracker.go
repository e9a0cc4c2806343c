package usecases

import (
	"context"

	"trackd/internal/application/access"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type GetTrackerQuery struct {
	OwnerID uint
	Name    string
	Actor   tracker.Actor
}

type TrackerDTO struct {
	TrackerID      uint
	OwnerID        uint
	Name           string
	Description    string
	Access         []string
	AnonymousPerms []string
	UserPerms      []string
	SubmitterPerms []string
	CreatedAt      string
	UpdatedAt      string
}

// GetTrackerUseCase fetches a tracker by owner and name. Requires browse
// access; the response carries the caller's resolved capability set so
// clients can hide actions the caller cannot perform.
type GetTrackerUseCase struct {
	trackerRepo tracker.TrackerRepository
	resolver    *access.Resolver
	logger      logger.Interface
}

func NewGetTrackerUseCase(
	trackerRepo tracker.TrackerRepository,
	resolver *access.Resolver,
	logger logger.Interface,
) *GetTrackerUseCase {
	return &GetTrackerUseCase{
		trackerRepo: trackerRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

func (uc *GetTrackerUseCase) Execute(ctx context.Context, query GetTrackerQuery) (*TrackerDTO, error) {
	if query.OwnerID == 0 || query.Name == "" {
		return nil, errors.NewValidationError("tracker owner and name are required")
	}

	tr, err := uc.trackerRepo.GetByOwnerAndName(ctx, query.OwnerID, query.Name)
	if err != nil {
		return nil, err
	}

	mask, err := uc.resolver.ForTracker(ctx, tr, query.Actor)
	if err != nil {
		return nil, err
	}
	if !mask.Contains(tracker.AccessBrowse) {
		// Browse is also the visibility bit: without it the tracker does
		// not exist as far as this actor is concerned.
		return nil, errors.NewNotFoundError("tracker not found")
	}

	dto := toTrackerDTO(tr)
	dto.Access = mask.Names()
	return dto, nil
}

func toTrackerDTO(tr *tracker.Tracker) *TrackerDTO {
	return &TrackerDTO{
		TrackerID:      tr.ID(),
		OwnerID:        tr.OwnerID(),
		Name:           tr.Name(),
		Description:    tr.Description(),
		AnonymousPerms: tr.DefaultAnonymousPerms().Names(),
		UserPerms:      tr.DefaultUserPerms().Names(),
		SubmitterPerms: tr.DefaultSubmitterPerms().Names(),
		CreatedAt:      tr.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      tr.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
}
