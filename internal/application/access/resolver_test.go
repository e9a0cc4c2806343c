package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/domain/ticket"
	vo "trackd/internal/domain/ticket/valueobjects"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
)

type mockUserAccessRepository struct {
	GetByTrackerAndUserFunc func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error)
}

func (m *mockUserAccessRepository) Save(ctx context.Context, ua *tracker.UserAccess) error {
	return nil
}

func (m *mockUserAccessRepository) Delete(ctx context.Context, trackerID, userID uint) error {
	return nil
}

func (m *mockUserAccessRepository) GetByTrackerAndUser(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
	if m.GetByTrackerAndUserFunc != nil {
		return m.GetByTrackerAndUserFunc(ctx, trackerID, userID)
	}
	return nil, errors.NewNotFoundError("no override")
}

func (m *mockUserAccessRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.UserAccess, error) {
	return nil, nil
}

func resolverTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.ReconstructTracker(
		1, 10, "bugs", "",
		tracker.AccessBrowse,
		tracker.AccessBrowse|tracker.AccessSubmit,
		tracker.AccessBrowse|tracker.AccessComment,
		1,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func TestResolver_ForTracker_NoOverride(t *testing.T) {
	tr := resolverTracker(t)
	r := NewResolver(&mockUserAccessRepository{})

	mask, err := r.ForTracker(context.Background(), tr, tracker.UserActor(20))
	require.NoError(t, err)
	assert.Equal(t, tr.DefaultUserPerms(), mask)

	mask, err = r.ForTracker(context.Background(), tr, tracker.AnonymousActor())
	require.NoError(t, err)
	assert.Equal(t, tr.DefaultAnonymousPerms(), mask)
}

func TestResolver_ForTracker_OverrideApplied(t *testing.T) {
	tr := resolverTracker(t)
	override, err := tracker.ReconstructUserAccess(1, 1, 20, tracker.AccessTriage, time.Now())
	require.NoError(t, err)

	r := NewResolver(&mockUserAccessRepository{
		GetByTrackerAndUserFunc: func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
			assert.Equal(t, uint(1), trackerID)
			assert.Equal(t, uint(20), userID)
			return override, nil
		},
	})

	mask, err := r.ForTracker(context.Background(), tr, tracker.UserActor(20))
	require.NoError(t, err)
	assert.Equal(t, tracker.AccessTriage, mask)
}

func TestResolver_OwnerSkipsOverrideLookup(t *testing.T) {
	tr := resolverTracker(t)
	r := NewResolver(&mockUserAccessRepository{
		GetByTrackerAndUserFunc: func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
			t.Fatal("owner access must not hit the override table")
			return nil, nil
		},
	})

	mask, err := r.ForTracker(context.Background(), tr, tracker.UserActor(10))
	require.NoError(t, err)
	assert.Equal(t, tracker.AccessAll, mask)
}

func TestResolver_ForTicket_SubmitterTier(t *testing.T) {
	tr := resolverTracker(t)
	tk, err := ticket.ReconstructTicket(
		100, 1, 1, 30,
		"crash", "",
		vo.StatusOpen, vo.ResolutionUnresolved,
		nil, []uint{30},
		time.Now(), time.Now(),
	)
	require.NoError(t, err)

	r := NewResolver(&mockUserAccessRepository{})

	mask, err := r.ForTicket(context.Background(), tr, tk, tracker.UserActor(30))
	require.NoError(t, err)
	assert.Equal(t, tr.DefaultSubmitterPerms(), mask)

	// A different authenticated user stays on the user tier.
	mask, err = r.ForTicket(context.Background(), tr, tk, tracker.UserActor(31))
	require.NoError(t, err)
	assert.Equal(t, tr.DefaultUserPerms(), mask)
}
