package notification

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/domain/notification"
	"trackd/internal/domain/ticket"
	"trackd/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	trackerSubs []*ticket.Subscription
	ticketSubs  []*ticket.Subscription
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, s *ticket.Subscription) error {
	return nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriptionID uint) error {
	return nil
}

func (m *mockSubscriptionRepository) GetTrackerSubscription(ctx context.Context, trackerID, userID uint) (*ticket.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) GetTicketSubscription(ctx context.Context, ticketID, userID uint) (*ticket.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*ticket.Subscription, error) {
	return m.trackerSubs, nil
}

func (m *mockSubscriptionRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Subscription, error) {
	return m.ticketSubs, nil
}

type mockNotificationRepository struct {
	saved []*notification.EventNotification
}

func (m *mockNotificationRepository) SaveIgnoreDuplicate(ctx context.Context, n *notification.EventNotification) error {
	m.saved = append(m.saved, n)
	return nil
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*notification.EventNotification, int64, error) {
	return nil, 0, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return nil
}

func trackerSub(t *testing.T, id, trackerID, userID uint) *ticket.Subscription {
	t.Helper()
	s, err := ticket.ReconstructSubscription(id, &trackerID, nil, userID, time.Now())
	require.NoError(t, err)
	return s
}

func ticketSub(t *testing.T, id, ticketID, userID uint) *ticket.Subscription {
	t.Helper()
	s, err := ticket.ReconstructSubscription(id, nil, &ticketID, userID, time.Now())
	require.NoError(t, err)
	return s
}

func testEvent(t *testing.T, actorID uint) *ticket.Event {
	t.Helper()
	ev, err := ticket.ReconstructEvent(
		7, 100, ticket.EventComment, actorID,
		nil, nil, nil, nil, nil, nil, nil,
		time.Now(),
	)
	require.NoError(t, err)
	return ev
}

func TestFanout_UnionDeduplicated(t *testing.T) {
	// User 5 subscribes at both levels; they must get exactly one feed row.
	subs := &mockSubscriptionRepository{
		trackerSubs: []*ticket.Subscription{
			trackerSub(t, 1, 1, 5),
			trackerSub(t, 2, 1, 6),
		},
		ticketSubs: []*ticket.Subscription{
			ticketSub(t, 3, 100, 5),
			ticketSub(t, 4, 100, 7),
		},
	}
	notifications := &mockNotificationRepository{}
	svc := NewFanoutService(subs, notifications, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	mailTo, err := svc.Fanout(context.Background(), testEvent(t, 9), 1)
	require.NoError(t, err)

	require.Len(t, notifications.saved, 3)
	seen := map[uint]bool{}
	for _, n := range notifications.saved {
		assert.False(t, seen[n.UserID()])
		seen[n.UserID()] = true
		assert.Equal(t, uint(7), n.EventID())
	}
	assert.ElementsMatch(t, []uint{5, 6, 7}, mailTo)
}

func TestFanout_ActorGetsFeedRowButNoEmail(t *testing.T) {
	subs := &mockSubscriptionRepository{
		trackerSubs: []*ticket.Subscription{
			trackerSub(t, 1, 1, 9),
			trackerSub(t, 2, 1, 6),
		},
	}
	notifications := &mockNotificationRepository{}
	svc := NewFanoutService(subs, notifications, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	// User 9 triggered the event.
	mailTo, err := svc.Fanout(context.Background(), testEvent(t, 9), 1)
	require.NoError(t, err)

	assert.Len(t, notifications.saved, 2)
	assert.Equal(t, []uint{6}, mailTo)
}

func TestFanout_NoSubscribers(t *testing.T) {
	svc := NewFanoutService(&mockSubscriptionRepository{}, &mockNotificationRepository{}, logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))

	mailTo, err := svc.Fanout(context.Background(), testEvent(t, 9), 1)
	require.NoError(t, err)
	assert.Empty(t, mailTo)
}
