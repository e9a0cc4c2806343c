package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/application/access"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
)

func noOverrideResolver() *access.Resolver {
	return access.NewResolver(&mockUserAccessRepository{
		GetByTrackerAndUserFunc: func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
			return nil, errors.NewNotFoundError("no override")
		},
	})
}

func TestCreateLabel_Success(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	labels := &mockLabelRepository{
		GetByTrackerAndNameFunc: func(ctx context.Context, trackerID uint, name string) (*tracker.Label, error) {
			return nil, errors.NewNotFoundError("label not found")
		},
	}
	uc := NewCreateLabelUseCase(trackers, labels, noOverrideResolver(), mockTxManager{}, nopLogger())

	result, err := uc.Execute(context.Background(), CreateLabelCommand{
		TrackerID:       1,
		ActorID:         10,
		Name:            "bug",
		Color:           "#ffffff",
		BackgroundColor: "#d93f0b",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.LabelID)
	assert.Equal(t, "bug", result.Name)
}

func TestCreateLabel_RequiresTriage(t *testing.T) {
	tr := ownedTracker(t, 10,
		tracker.AccessBrowse,
		tracker.AccessBrowse|tracker.AccessSubmit|tracker.AccessComment,
		tracker.AccessBrowse|tracker.AccessComment,
	)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	uc := NewCreateLabelUseCase(trackers, &mockLabelRepository{}, noOverrideResolver(), mockTxManager{}, nopLogger())

	_, err := uc.Execute(context.Background(), CreateLabelCommand{
		TrackerID:       1,
		ActorID:         20,
		Name:            "bug",
		Color:           "#ffffff",
		BackgroundColor: "#d93f0b",
	})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestCreateLabel_TriageOverrideSuffices(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	override, err := tracker.ReconstructUserAccess(1, 1, 20, tracker.AccessBrowse|tracker.AccessTriage, time.Now())
	require.NoError(t, err)
	resolver := access.NewResolver(&mockUserAccessRepository{
		GetByTrackerAndUserFunc: func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
			return override, nil
		},
	})
	labels := &mockLabelRepository{
		GetByTrackerAndNameFunc: func(ctx context.Context, trackerID uint, name string) (*tracker.Label, error) {
			return nil, errors.NewNotFoundError("label not found")
		},
	}
	uc := NewCreateLabelUseCase(trackers, labels, resolver, mockTxManager{}, nopLogger())

	_, err = uc.Execute(context.Background(), CreateLabelCommand{
		TrackerID:       1,
		ActorID:         20,
		Name:            "bug",
		Color:           "#ffffff",
		BackgroundColor: "#d93f0b",
	})
	assert.NoError(t, err)
}

func TestCreateLabel_DuplicateName(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	existing, err := tracker.ReconstructLabel(5, 1, "bug", "#ffffff", "#d93f0b", time.Now())
	require.NoError(t, err)
	labels := &mockLabelRepository{
		GetByTrackerAndNameFunc: func(ctx context.Context, trackerID uint, name string) (*tracker.Label, error) {
			return existing, nil
		},
	}
	uc := NewCreateLabelUseCase(trackers, labels, noOverrideResolver(), mockTxManager{}, nopLogger())

	_, err = uc.Execute(context.Background(), CreateLabelCommand{
		TrackerID:       1,
		ActorID:         10,
		Name:            "bug",
		Color:           "#ffffff",
		BackgroundColor: "#d93f0b",
	})
	assert.True(t, errors.IsConflictError(err))
}

func TestDeleteLabel_WrongTrackerIsNotFound(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	other, err := tracker.ReconstructLabel(5, 2, "bug", "#ffffff", "#d93f0b", time.Now())
	require.NoError(t, err)
	labels := &mockLabelRepository{
		GetByIDFunc: func(ctx context.Context, labelID uint) (*tracker.Label, error) {
			return other, nil
		},
	}
	uc := NewDeleteLabelUseCase(trackers, labels, noOverrideResolver(), mockTxManager{}, nopLogger())

	_, err = uc.Execute(context.Background(), DeleteLabelCommand{
		TrackerID: 1,
		ActorID:   10,
		LabelID:   5,
	})
	assert.True(t, errors.IsNotFoundError(err))
}
