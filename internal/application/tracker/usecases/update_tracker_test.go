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

func maskptr(m tracker.AccessMask) *tracker.AccessMask {
	return &m
}

func TestUpdateTracker_OwnerOnly(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	dispatcher := &mockDispatcher{}
	uc := NewUpdateTrackerUseCase(trackers, dispatcher, mockTxManager{}, nopLogger())

	desc := "updated"
	_, err := uc.Execute(context.Background(), UpdateTrackerCommand{
		TrackerID:   1,
		ActorID:     20,
		Description: &desc,
	})
	assert.True(t, errors.IsForbiddenError(err))
	assert.Empty(t, dispatcher.Calls)
}

func TestUpdateTracker_PartialMaskMerge(t *testing.T) {
	tr := ownedTracker(t, 10,
		tracker.AccessBrowse,
		tracker.AccessBrowse|tracker.AccessSubmit,
		tracker.AccessBrowse|tracker.AccessComment,
	)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	dispatcher := &mockDispatcher{}
	uc := NewUpdateTrackerUseCase(trackers, dispatcher, mockTxManager{}, nopLogger())

	// Only the user mask changes; the other tiers keep their values.
	result, err := uc.Execute(context.Background(), UpdateTrackerCommand{
		TrackerID: 1,
		ActorID:   10,
		UserPerms: maskptr(tracker.AccessBrowse | tracker.AccessSubmit | tracker.AccessComment),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"browse", "submit", "comment"}, result.UserPerms)
	assert.Equal(t, []string{"browse"}, result.AnonymousPerms)
	assert.Equal(t, []string{"browse", "comment"}, result.SubmitterPerms)

	require.Len(t, dispatcher.Calls, 1)
	call := dispatcher.Calls[0]
	assert.Equal(t, webhook.EventTrackerUpdate, call.EventName)
	require.Len(t, call.Scopes, 2)
	assert.Equal(t, webhook.ScopeTracker, call.Scopes[0].Scope)
	assert.Equal(t, uint(1), call.Scopes[0].ID)
	assert.Equal(t, webhook.ScopeUser, call.Scopes[1].Scope)
	assert.Equal(t, uint(10), call.Scopes[1].ID)
}

func TestUpdateTracker_RejectsUnknownBits(t *testing.T) {
	tr := ownedTracker(t, 10, tracker.AccessBrowse, tracker.AccessBrowse, tracker.AccessBrowse)
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	uc := NewUpdateTrackerUseCase(trackers, &mockDispatcher{}, mockTxManager{}, nopLogger())

	_, err := uc.Execute(context.Background(), UpdateTrackerCommand{
		TrackerID: 1,
		ActorID:   10,
		UserPerms: maskptr(tracker.AccessMask(1 << 7)),
	})
	assert.True(t, errors.IsValidationError(err))
}
