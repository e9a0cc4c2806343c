package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/application/access"
	vo "trackd/internal/domain/ticket/valueobjects"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/errors"

	"trackd/internal/domain/ticket"
)

func publicTracker(t *testing.T, ownerID uint) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.ReconstructTracker(
		1, ownerID, "bugs", "",
		tracker.AccessBrowse,
		tracker.AccessBrowse|tracker.AccessSubmit,
		tracker.AccessBrowse|tracker.AccessComment,
		1,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func hiddenTracker(t *testing.T, ownerID uint) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.ReconstructTracker(
		1, ownerID, "bugs", "",
		tracker.AccessNone, tracker.AccessNone, tracker.AccessNone,
		1,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return tr
}

func noOverrideResolver() *access.Resolver {
	return access.NewResolver(&mockUserAccessRepository{
		GetByTrackerAndUserFunc: func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
			return nil, errors.NewNotFoundError("no override")
		},
	})
}

func TestCreateWebhook_TrackerScope(t *testing.T) {
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return publicTracker(t, 10), nil
		},
	}
	subs := &mockSubscriptionRepository{}
	uc := NewCreateWebhookUseCase(trackers, &mockTicketRepository{}, subs, noOverrideResolver(), nopLogger())

	result, err := uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeTracker,
		ScopeID:   1,
		UserID:    20,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventTicketCreate},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.SubscriptionID)
	assert.Equal(t, "tracker", result.Scope)
	require.Len(t, subs.Saved, 1)
	assert.True(t, subs.Saved[0].IsActive())
}

func TestCreateWebhook_HiddenTrackerIsNotFound(t *testing.T) {
	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return hiddenTracker(t, 10), nil
		},
	}
	subs := &mockSubscriptionRepository{}
	uc := NewCreateWebhookUseCase(trackers, &mockTicketRepository{}, subs, noOverrideResolver(), nopLogger())

	_, err := uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeTracker,
		ScopeID:   1,
		UserID:    20,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventTicketCreate},
	})
	assert.True(t, errors.IsNotFoundError(err))
	assert.Empty(t, subs.Saved)
}

func TestCreateWebhook_TicketScopeUsesSubmitterTier(t *testing.T) {
	// The tracker hides from regular users but the submitter keeps browse
	// through the submitter tier, so they may watch their own ticket.
	tr, err := tracker.ReconstructTracker(
		1, 10, "bugs", "",
		tracker.AccessNone, tracker.AccessNone,
		tracker.AccessBrowse|tracker.AccessComment,
		2,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	tk, err := ticket.ReconstructTicket(
		100, 1, 1, 30,
		"crash", "",
		vo.StatusOpen, vo.ResolutionUnresolved,
		nil, []uint{30},
		time.Now(), time.Now(),
	)
	require.NoError(t, err)

	trackers := &mockTrackerRepository{
		GetByIDFunc: func(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
			return tr, nil
		},
	}
	tickets := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
	uc := NewCreateWebhookUseCase(trackers, tickets, &mockSubscriptionRepository{}, noOverrideResolver(), nopLogger())

	_, err = uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeTicket,
		ScopeID:   100,
		UserID:    30,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventEventCreate},
	})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeTicket,
		ScopeID:   100,
		UserID:    31,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventEventCreate},
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCreateWebhook_UserScopeSelfOnly(t *testing.T) {
	uc := NewCreateWebhookUseCase(&mockTrackerRepository{}, &mockTicketRepository{}, &mockSubscriptionRepository{}, noOverrideResolver(), nopLogger())

	_, err := uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeUser,
		ScopeID:   21,
		UserID:    20,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventTicketCreate},
	})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeUser,
		ScopeID:   20,
		UserID:    20,
		TargetURL: "https://example.com/hook",
		Events:    []string{webhook.EventTicketCreate},
	})
	assert.NoError(t, err)
}

func TestCreateWebhook_InvalidTarget(t *testing.T) {
	uc := NewCreateWebhookUseCase(&mockTrackerRepository{}, &mockTicketRepository{}, &mockSubscriptionRepository{}, noOverrideResolver(), nopLogger())

	_, err := uc.Execute(context.Background(), CreateWebhookCommand{
		Scope:     webhook.ScopeUser,
		ScopeID:   20,
		UserID:    20,
		TargetURL: "ftp://example.com/hook",
		Events:    []string{webhook.EventTicketCreate},
	})
	assert.True(t, errors.IsValidationError(err))
}
