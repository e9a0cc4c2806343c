package usecases

import (
	"context"

	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type ListTrackersQuery struct {
	OwnerID uint
}

type ListTrackersResult struct {
	Trackers []*TrackerDTO
}

// ListTrackersUseCase lists a user's own trackers.
type ListTrackersUseCase struct {
	trackerRepo tracker.TrackerRepository
	logger      logger.Interface
}

func NewListTrackersUseCase(trackerRepo tracker.TrackerRepository, logger logger.Interface) *ListTrackersUseCase {
	return &ListTrackersUseCase{trackerRepo: trackerRepo, logger: logger}
}

func (uc *ListTrackersUseCase) Execute(ctx context.Context, query ListTrackersQuery) (*ListTrackersResult, error) {
	if query.OwnerID == 0 {
		return nil, errors.NewValidationError("owner ID is required")
	}

	trackers, err := uc.trackerRepo.ListByOwner(ctx, query.OwnerID)
	if err != nil {
		uc.logger.Errorw("failed to list trackers", "owner_id", query.OwnerID, "error", err)
		return nil, err
	}

	dtos := make([]*TrackerDTO, 0, len(trackers))
	for _, tr := range trackers {
		dtos = append(dtos, toTrackerDTO(tr))
	}
	return &ListTrackersResult{Trackers: dtos}, nil
}
