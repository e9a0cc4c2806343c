package usecases

import (
	"context"
	"log/slog"

	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/logger"
)

func nopLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

type mockTxManager struct{}

func (mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockTrackerRepository struct {
	SaveFunc              func(ctx context.Context, t *tracker.Tracker) error
	UpdateFunc            func(ctx context.Context, t *tracker.Tracker) error
	DeleteFunc            func(ctx context.Context, trackerID uint) error
	GetByIDFunc           func(ctx context.Context, trackerID uint) (*tracker.Tracker, error)
	GetByOwnerAndNameFunc func(ctx context.Context, ownerID uint, name string) (*tracker.Tracker, error)
	GetByIDForUpdateFunc  func(ctx context.Context, trackerID uint) (*tracker.Tracker, error)
	ListByOwnerFunc       func(ctx context.Context, ownerID uint) ([]*tracker.Tracker, error)
}

func (m *mockTrackerRepository) Save(ctx context.Context, t *tracker.Tracker) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTrackerRepository) Update(ctx context.Context, t *tracker.Tracker) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTrackerRepository) Delete(ctx context.Context, trackerID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, trackerID)
	}
	return nil
}

func (m *mockTrackerRepository) GetByID(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, trackerID)
	}
	return nil, nil
}

func (m *mockTrackerRepository) GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*tracker.Tracker, error) {
	if m.GetByOwnerAndNameFunc != nil {
		return m.GetByOwnerAndNameFunc(ctx, ownerID, name)
	}
	return nil, nil
}

func (m *mockTrackerRepository) GetByIDForUpdate(ctx context.Context, trackerID uint) (*tracker.Tracker, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, trackerID)
	}
	return nil, nil
}

func (m *mockTrackerRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*tracker.Tracker, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

type mockUserAccessRepository struct {
	SaveFunc                func(ctx context.Context, ua *tracker.UserAccess) error
	DeleteFunc              func(ctx context.Context, trackerID, userID uint) error
	GetByTrackerAndUserFunc func(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error)
	ListByTrackerFunc       func(ctx context.Context, trackerID uint) ([]*tracker.UserAccess, error)
}

func (m *mockUserAccessRepository) Save(ctx context.Context, ua *tracker.UserAccess) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ua)
	}
	return ua.SetID(1)
}

func (m *mockUserAccessRepository) Delete(ctx context.Context, trackerID, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, trackerID, userID)
	}
	return nil
}

func (m *mockUserAccessRepository) GetByTrackerAndUser(ctx context.Context, trackerID, userID uint) (*tracker.UserAccess, error) {
	if m.GetByTrackerAndUserFunc != nil {
		return m.GetByTrackerAndUserFunc(ctx, trackerID, userID)
	}
	return nil, nil
}

func (m *mockUserAccessRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.UserAccess, error) {
	if m.ListByTrackerFunc != nil {
		return m.ListByTrackerFunc(ctx, trackerID)
	}
	return nil, nil
}

type mockLabelRepository struct {
	SaveFunc                func(ctx context.Context, l *tracker.Label) error
	DeleteFunc              func(ctx context.Context, labelID uint) error
	GetByIDFunc             func(ctx context.Context, labelID uint) (*tracker.Label, error)
	GetByTrackerAndNameFunc func(ctx context.Context, trackerID uint, name string) (*tracker.Label, error)
	ListByTrackerFunc       func(ctx context.Context, trackerID uint) ([]*tracker.Label, error)
}

func (m *mockLabelRepository) Save(ctx context.Context, l *tracker.Label) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, l)
	}
	return l.SetID(1)
}

func (m *mockLabelRepository) Delete(ctx context.Context, labelID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, labelID)
	}
	return nil
}

func (m *mockLabelRepository) GetByID(ctx context.Context, labelID uint) (*tracker.Label, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, labelID)
	}
	return nil, nil
}

func (m *mockLabelRepository) GetByTrackerAndName(ctx context.Context, trackerID uint, name string) (*tracker.Label, error) {
	if m.GetByTrackerAndNameFunc != nil {
		return m.GetByTrackerAndNameFunc(ctx, trackerID, name)
	}
	return nil, nil
}

func (m *mockLabelRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*tracker.Label, error) {
	if m.ListByTrackerFunc != nil {
		return m.ListByTrackerFunc(ctx, trackerID)
	}
	return nil, nil
}

type mockSubscriptionRepository struct {
	SaveFunc                   func(ctx context.Context, s *ticket.Subscription) error
	DeleteFunc                 func(ctx context.Context, subscriptionID uint) error
	GetTrackerSubscriptionFunc func(ctx context.Context, trackerID, userID uint) (*ticket.Subscription, error)
	GetTicketSubscriptionFunc  func(ctx context.Context, ticketID, userID uint) (*ticket.Subscription, error)
	ListByTrackerFunc          func(ctx context.Context, trackerID uint) ([]*ticket.Subscription, error)
	ListByTicketFunc           func(ctx context.Context, ticketID uint) ([]*ticket.Subscription, error)

	Saved []*ticket.Subscription
}

func (m *mockSubscriptionRepository) Save(ctx context.Context, s *ticket.Subscription) error {
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
	return nil
}

func (m *mockSubscriptionRepository) GetTrackerSubscription(ctx context.Context, trackerID, userID uint) (*ticket.Subscription, error) {
	if m.GetTrackerSubscriptionFunc != nil {
		return m.GetTrackerSubscriptionFunc(ctx, trackerID, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetTicketSubscription(ctx context.Context, ticketID, userID uint) (*ticket.Subscription, error) {
	if m.GetTicketSubscriptionFunc != nil {
		return m.GetTicketSubscriptionFunc(ctx, ticketID, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByTracker(ctx context.Context, trackerID uint) ([]*ticket.Subscription, error) {
	if m.ListByTrackerFunc != nil {
		return m.ListByTrackerFunc(ctx, trackerID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Subscription, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type dispatchedCall struct {
	EventName string
	Scopes    []appwebhook.ScopeRef
	Payload   any
}

type mockDispatcher struct {
	DispatchFunc func(ctx context.Context, eventName string, scopes []appwebhook.ScopeRef, payload any) error

	Calls []dispatchedCall
}

func (m *mockDispatcher) Dispatch(ctx context.Context, eventName string, scopes []appwebhook.ScopeRef, payload any) error {
	m.Calls = append(m.Calls, dispatchedCall{EventName: eventName, Scopes: scopes, Payload: payload})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, eventName, scopes, payload)
	}
	return nil
}
