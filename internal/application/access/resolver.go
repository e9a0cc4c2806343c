// Package access resolves the effective permission mask for an actor on a
// tracker or ticket.
package access

import (
	"context"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/shared/errors"
)

// Resolver loads the per-user override row, when one exists, and delegates
// tier selection to the tracker aggregate. The resolved mask is computed
// once per request and checked once, even when a request exercises several
// capabilities.
type Resolver struct {
	accessRepo tracker.UserAccessRepository
}

func NewResolver(accessRepo tracker.UserAccessRepository) *Resolver {
	return &Resolver{accessRepo: accessRepo}
}

// ForTracker resolves the actor's mask against the tracker alone.
func (r *Resolver) ForTracker(ctx context.Context, tr *tracker.Tracker, actor tracker.Actor) (tracker.AccessMask, error) {
	override, err := r.override(ctx, tr, actor)
	if err != nil {
		return tracker.AccessNone, err
	}
	return tr.AccessFor(actor, override, nil), nil
}

// ForTicket resolves the actor's mask with the ticket's submitter in scope,
// so the submitter tier can apply.
func (r *Resolver) ForTicket(ctx context.Context, tr *tracker.Tracker, tk *ticket.Ticket, actor tracker.Actor) (tracker.AccessMask, error) {
	override, err := r.override(ctx, tr, actor)
	if err != nil {
		return tracker.AccessNone, err
	}
	submitterID := tk.SubmitterID()
	return tr.AccessFor(actor, override, &submitterID), nil
}

func (r *Resolver) override(ctx context.Context, tr *tracker.Tracker, actor tracker.Actor) (*tracker.UserAccess, error) {
	if !actor.IsAuthenticated() || actor.Is(tr.OwnerID()) {
		return nil, nil
	}
	ua, err := r.accessRepo.GetByTrackerAndUser(ctx, tr.ID(), actor.ID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return ua, nil
}
