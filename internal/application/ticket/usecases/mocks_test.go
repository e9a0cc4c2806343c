package usecases

import (
	"context"
	"log/slog"

	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
	"trackd/internal/shared/logger"
)

func nopLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

// mockTxManager runs the body directly; unit tests assert behavior, not
// transaction plumbing.
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
	return nil
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

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc       func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByScopedIDFunc func(ctx context.Context, trackerID, scopedID uint) (*ticket.Ticket, error)
	ListFunc          func(ctx context.Context, trackerID uint, page, pageSize int) ([]*ticket.Ticket, int64, error)
	AddLabelFunc      func(ctx context.Context, ticketID, labelID, userID uint) error
	RemoveLabelFunc   func(ctx context.Context, ticketID, labelID uint) error
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByScopedID(ctx context.Context, trackerID, scopedID uint) (*ticket.Ticket, error) {
	if m.GetByScopedIDFunc != nil {
		return m.GetByScopedIDFunc(ctx, trackerID, scopedID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, trackerID uint, page, pageSize int) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, trackerID, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) AddLabel(ctx context.Context, ticketID, labelID, userID uint) error {
	if m.AddLabelFunc != nil {
		return m.AddLabelFunc(ctx, ticketID, labelID, userID)
	}
	return nil
}

func (m *mockTicketRepository) RemoveLabel(ctx context.Context, ticketID, labelID uint) error {
	if m.RemoveLabelFunc != nil {
		return m.RemoveLabelFunc(ctx, ticketID, labelID)
	}
	return nil
}

type mockCommentRepository struct {
	SaveFunc         func(ctx context.Context, c *ticket.Comment) error
	GetByIDFunc      func(ctx context.Context, commentID uint) (*ticket.Comment, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return c.SetID(1)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID uint) (*ticket.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, commentID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockEventRepository struct {
	nextID           uint
	AppendFunc       func(ctx context.Context, e *ticket.Event) error
	GetByIDFunc      func(ctx context.Context, eventID uint) (*ticket.Event, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint, afterID uint, limit int) ([]*ticket.Event, error)

	Appended []*ticket.Event
}

func (m *mockEventRepository) Append(ctx context.Context, e *ticket.Event) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, e)
	}
	m.nextID++
	if err := e.SetID(m.nextID); err != nil {
		return err
	}
	m.Appended = append(m.Appended, e)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, eventID uint) (*ticket.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockEventRepository) ListByTicket(ctx context.Context, ticketID uint, afterID uint, limit int) ([]*ticket.Event, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, afterID, limit)
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
	return nil
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

type mockUserRepository struct {
	UpsertFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, userID uint) (*user.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
	ListByIDsFunc     func(ctx context.Context, userIDs []uint) ([]*user.User, error)
}

func (m *mockUserRepository) Upsert(ctx context.Context, u *user.User) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepository) ListByIDs(ctx context.Context, userIDs []uint) ([]*user.User, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, userIDs)
	}
	return nil, nil
}

type mockResolver struct {
	ForTrackerFunc func(ctx context.Context, tr *tracker.Tracker, actor tracker.Actor) (tracker.AccessMask, error)
	ForTicketFunc  func(ctx context.Context, tr *tracker.Tracker, tk *ticket.Ticket, actor tracker.Actor) (tracker.AccessMask, error)
}

func (m *mockResolver) ForTracker(ctx context.Context, tr *tracker.Tracker, actor tracker.Actor) (tracker.AccessMask, error) {
	if m.ForTrackerFunc != nil {
		return m.ForTrackerFunc(ctx, tr, actor)
	}
	return tr.AccessFor(actor, nil, nil), nil
}

func (m *mockResolver) ForTicket(ctx context.Context, tr *tracker.Tracker, tk *ticket.Ticket, actor tracker.Actor) (tracker.AccessMask, error) {
	if m.ForTicketFunc != nil {
		return m.ForTicketFunc(ctx, tr, tk, actor)
	}
	submitterID := tk.SubmitterID()
	return tr.AccessFor(actor, nil, &submitterID), nil
}

type mockFanout struct {
	FanoutFunc func(ctx context.Context, ev *ticket.Event, trackerID uint) ([]uint, error)

	Calls []*ticket.Event
}

func (m *mockFanout) Fanout(ctx context.Context, ev *ticket.Event, trackerID uint) ([]uint, error) {
	m.Calls = append(m.Calls, ev)
	if m.FanoutFunc != nil {
		return m.FanoutFunc(ctx, ev, trackerID)
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

type mockMailer struct {
	SendFunc func(ctx context.Context, recipients []*user.User, tr *tracker.Tracker, tk *ticket.Ticket, ev *ticket.Event, comment *ticket.Comment) error
}

func (m *mockMailer) SendEventNotification(ctx context.Context, recipients []*user.User, tr *tracker.Tracker, tk *ticket.Ticket, ev *ticket.Event, comment *ticket.Comment) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, recipients, tr, tk, ev, comment)
	}
	return nil
}

type mockUnreadCache struct {
	GetFunc        func(ctx context.Context, userID uint) (int64, bool, error)
	SetFunc        func(ctx context.Context, userID uint, count int64) error
	InvalidateFunc func(ctx context.Context, userID uint) error
}

func (m *mockUnreadCache) Get(ctx context.Context, userID uint) (int64, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return 0, false, nil
}

func (m *mockUnreadCache) Set(ctx context.Context, userID uint, count int64) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, userID, count)
	}
	return nil
}

func (m *mockUnreadCache) Invalidate(ctx context.Context, userID uint) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID)
	}
	return nil
}
