package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/domain/webhook"
	"trackd/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	byScope map[webhook.Scope][]*webhook.Subscription
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, s *webhook.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriptionID uint) error {
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, subscriptionID uint) (*webhook.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) ListActiveByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	var active []*webhook.Subscription
	for _, s := range m.byScope[scope] {
		if s.ScopeID() == scopeID && s.IsActive() {
			active = append(active, s)
		}
	}
	return active, nil
}

func (m *mockSubscriptionRepository) ListByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	return m.byScope[scope], nil
}

func (m *mockSubscriptionRepository) Disable(ctx context.Context, subscriptionID uint) error {
	return nil
}

type mockDeliveryRepository struct {
	saved []*webhook.Delivery
}

func (m *mockDeliveryRepository) Save(ctx context.Context, d *webhook.Delivery) error {
	m.saved = append(m.saved, d)
	return nil
}

func (m *mockDeliveryRepository) Update(ctx context.Context, d *webhook.Delivery) error {
	return nil
}

func (m *mockDeliveryRepository) ClaimDue(ctx context.Context, limit int) ([]*webhook.Delivery, error) {
	return nil, nil
}

func (m *mockDeliveryRepository) GetByID(ctx context.Context, deliveryID string) (*webhook.Delivery, error) {
	return nil, nil
}

func testSubscription(t *testing.T, id uint, scope webhook.Scope, scopeID uint, events []string, active bool) *webhook.Subscription {
	t.Helper()
	s, err := webhook.ReconstructSubscription(id, scope, scopeID, 1, "https://example.com/hook", events, active, time.Now())
	require.NoError(t, err)
	return s
}

func TestDispatcher_MatchesScopeAndEvent(t *testing.T) {
	subs := &mockSubscriptionRepository{byScope: map[webhook.Scope][]*webhook.Subscription{
		webhook.ScopeTracker: {
			testSubscription(t, 1, webhook.ScopeTracker, 1, []string{webhook.EventTicketCreate}, true),
			testSubscription(t, 2, webhook.ScopeTracker, 1, []string{webhook.EventTrackerUpdate}, true),
			testSubscription(t, 3, webhook.ScopeTracker, 2, []string{webhook.EventTicketCreate}, true),
		},
		webhook.ScopeUser: {
			testSubscription(t, 4, webhook.ScopeUser, 5, []string{webhook.EventTicketCreate}, true),
		},
	}}
	deliveries := &mockDeliveryRepository{}
	d := NewDispatcher(subs, deliveries, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	err := d.Dispatch(context.Background(), webhook.EventTicketCreate,
		[]ScopeRef{
			{Scope: webhook.ScopeTracker, ID: 1},
			{Scope: webhook.ScopeUser, ID: 5},
		},
		map[string]any{"id": 1},
	)
	require.NoError(t, err)

	// Subscription 1 (tracker 1, right event) and 4 (user 5) match;
	// 2 wants a different event, 3 is on another tracker.
	require.Len(t, deliveries.saved, 2)
	assert.Equal(t, uint(1), deliveries.saved[0].SubscriptionID())
	assert.Equal(t, uint(4), deliveries.saved[1].SubscriptionID())
	for _, del := range deliveries.saved {
		assert.Equal(t, webhook.EventTicketCreate, del.EventName())
		assert.Equal(t, webhook.DeliveryPending, del.Status())
	}
}

func TestDispatcher_PayloadCapturedAtDispatchTime(t *testing.T) {
	subs := &mockSubscriptionRepository{byScope: map[webhook.Scope][]*webhook.Subscription{
		webhook.ScopeTicket: {
			testSubscription(t, 1, webhook.ScopeTicket, 100, []string{webhook.EventEventCreate}, true),
		},
	}}
	deliveries := &mockDeliveryRepository{}
	d := NewDispatcher(subs, deliveries, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	payload := map[string]any{"status": "open"}
	err := d.Dispatch(context.Background(), webhook.EventEventCreate,
		[]ScopeRef{{Scope: webhook.ScopeTicket, ID: 100}}, payload)
	require.NoError(t, err)

	// Mutating the source after dispatch must not change the stored body.
	payload["status"] = "resolved"

	require.Len(t, deliveries.saved, 1)
	var captured map[string]any
	require.NoError(t, json.Unmarshal(deliveries.saved[0].Payload(), &captured))
	assert.Equal(t, "open", captured["status"])
}

func TestDispatcher_SkipsDisabledSubscriptions(t *testing.T) {
	subs := &mockSubscriptionRepository{byScope: map[webhook.Scope][]*webhook.Subscription{
		webhook.ScopeTracker: {
			testSubscription(t, 1, webhook.ScopeTracker, 1, []string{webhook.EventTicketCreate}, false),
		},
	}}
	deliveries := &mockDeliveryRepository{}
	d := NewDispatcher(subs, deliveries, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	err := d.Dispatch(context.Background(), webhook.EventTicketCreate,
		[]ScopeRef{{Scope: webhook.ScopeTracker, ID: 1}}, map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, deliveries.saved)
}
