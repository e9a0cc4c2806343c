package usecases

import (
	"context"
	"fmt"

	appwebhook "trackd/internal/application/webhook"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
)

// AccessResolver resolves the effective permission mask for an actor.
type AccessResolver interface {
	ForTracker(ctx context.Context, tr *tracker.Tracker, actor tracker.Actor) (tracker.AccessMask, error)
	ForTicket(ctx context.Context, tr *tracker.Tracker, tk *ticket.Ticket, actor tracker.Actor) (tracker.AccessMask, error)
}

// Fanout writes the feed rows for an event and returns the user ids that
// should receive an email.
type Fanout interface {
	Fanout(ctx context.Context, ev *ticket.Event, trackerID uint) ([]uint, error)
}

// Dispatcher queues webhook deliveries for an event.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventName string, scopes []appwebhook.ScopeRef, payload any) error
}

type SubmitTicketExecutor interface {
	Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context, query ListEventsQuery) (*ListEventsResult, error)
}

type SubscribeTicketExecutor interface {
	Execute(ctx context.Context, cmd SubscribeTicketCommand) (*SubscribeTicketResult, error)
}

type UnsubscribeTicketExecutor interface {
	Execute(ctx context.Context, cmd UnsubscribeTicketCommand) (*UnsubscribeTicketResult, error)
}

func ticketRef(tr *tracker.Tracker, tk *ticket.Ticket) string {
	return fmt.Sprintf("%s#%d", tr.Name(), tk.ScopedID())
}
