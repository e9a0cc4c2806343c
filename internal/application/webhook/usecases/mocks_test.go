package usecases

import (
	"context"
	"log/slog"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/logger"
)

func nopLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

type mockTrackerRepository struct {
	GetByIDFunc func(ctx context.Context, trackerID uint) (*tracker.Tracker, error)
}

func (m *mockTrackerRepository) Save(ctx context.Context, t *tracker.Tracker) error {
	return nil
}

func (m *mockTrackerRepository) Update(ctx context.Context, t *tracker.Tracker) error {
	return nil
}

func (m *mockTrackerRepository) Delete(ctx context.Context, trackerID uint) error {
	return nil
}

func (m *mockTrackerRepository) GetByID(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, trackerID)
	}
	return nil, nil
}

func (m *mockTrackerRepository) GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*tracker.Tracker, error) {
	return nil, nil
}

func (m *mockTrackerRepository) GetByIDForUpdate(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	return nil, nil
}

func (m *mockTrackerRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*tracker.Tracker, error) {
	return nil, nil
}

type mockTicketRepository struct {
	GetByIDFunc func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByScopedID(ctx context.Context, trackerID, scopedID uint) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, trackerID uint, page, pageSize int) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) AddLabel(ctx context.Context, ticketID, labelID, userID uint) error {
	return nil
}

func (m *mockTicketRepository) RemoveLabel(ctx context.Context, ticketID, labelID uint) error {
	return nil
}

type mockSubscriptionRepository struct {
	SaveFunc        func(ctx context.Context, s *webhook.Subscription) error
	DeleteFunc      func(ctx context.Context, subscriptionID uint) error
	GetByIDFunc     func(ctx context.Context, subscriptionID uint) (*webhook.Subscription, error)
	ListByScopeFunc func(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error)

	Saved   []*webhook.Subscription
	Deleted []uint
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, s *webhook.Subscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	m.Saved = append(m.Saved, s)
	return s.SetID(uint(len(m.Saved)))
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriptionID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, subscriptionID)
	}
	m.Deleted = append(m.Deleted, subscriptionID)
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, subscriptionID uint) (*webhook.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, subscriptionID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListActiveByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByScope(ctx context.Context, scope webhook.Scope, scopeID uint) ([]*webhook.Subscription, error) {
	if m.ListByScopeFunc != nil {
		return m.ListByScopeFunc(ctx, scope, scopeID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Disable(ctx context.Context, subscriptionID uint) error {
	return nil
}

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
	return nil, nil
}

func (m *mockUserAccessRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.UserAccess, error) {
	return nil, nil
}
