package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/errors"
)

func TestDeleteTracker_DispatchesBeforeDelete(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	dispatcher := &mockDispatcher{}

	deleted := false
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
		DeleteFunc: func(ctx context.Context, trackerID uint) error {
			// The outbox row must exist before the cascade runs.
			require.Len(t, dispatcher.Calls, 1)
			deleted = true
			return nil
		},
	}
	uc := NewDeleteTrackerUseCase(trackers, dispatcher, mockTxManager{}, nopLogger())

	result, err := uc.Execute(context.Background(), DeleteTrackerCommand{TrackerID: 1, ActorID: 10})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.TrackerID)
	assert.True(t, deleted)
	assert.Equal(t, webhook.EventTrackerDelete, dispatcher.Calls[0].EventName)
}

func TestDeleteTracker_OwnerOnly(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	deleted := false
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
		DeleteFunc: func(ctx context.Context, trackerID uint) error {
			deleted = true
			return nil
		},
	}
	uc := NewDeleteTrackerUseCase(trackers, &mockDispatcher{}, mockTxManager{}, nopLogger())

	_, err := uc.Execute(context.Background(), DeleteTrackerCommand{TrackerID: 1, ActorID: 20})
	assert.True(t, errors.IsForbiddenError(err))
	assert.False(t, deleted)
}
