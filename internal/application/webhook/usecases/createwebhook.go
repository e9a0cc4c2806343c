package usecases

import (
	"context"

	"trackd/internal/application/access"
	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type CreateWebhookCommand struct {
	Scope     webhook.Scope
	ScopeID   uint
	UserID    uint
	TargetURL string
	Events    []string
}

type CreateWebhookResult struct {
	SubscriptionID uint
	Scope          string
	ScopeID        uint
	TargetURL      string
	Events         []string
}

// CreateWebhookUseCase registers a delivery target. Tracker- and
// ticket-scoped subscriptions require browse access on the scope; a
// user-scoped subscription can only target the caller themself.
type CreateWebhookUseCase struct {
	trackerRepo      tracker.TrackerRepository
	ticketRepo       ticket.TicketRepository
	subscriptionRepo webhook.SubscriptionRepository
	resolver         *access.Resolver
	logger           logger.Interface
}

func NewCreateWebhookUseCase(
	trackerRepo tracker.TrackerRepository,
	ticketRepo ticket.TicketRepository,
	subscriptionRepo webhook.SubscriptionRepository,
	resolver *access.Resolver,
	logger logger.Interface,
) *CreateWebhookUseCase {
	return &CreateWebhookUseCase{
		trackerRepo:      trackerRepo,
		ticketRepo:       ticketRepo,
		subscriptionRepo: subscriptionRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

func (uc *CreateWebhookUseCase) Execute(ctx context.Context, cmd CreateWebhookCommand) (*CreateWebhookResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	sub, err := webhook.NewSubscription(cmd.Scope, cmd.ScopeID, cmd.UserID, cmd.TargetURL, cmd.Events)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.authorizeScope(ctx, cmd); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Save(ctx, sub); err != nil {
		uc.logger.Errorw("failed to create webhook subscription", "scope", cmd.Scope, "scope_id", cmd.ScopeID, "error", err)
		return nil, err
	}

	uc.logger.Infow("webhook subscription created",
		"subscription_id", sub.ID(),
		"scope", sub.Scope(),
		"scope_id", sub.ScopeID(),
		"url", sub.TargetURL(),
	)
	return &CreateWebhookResult{
		SubscriptionID: sub.ID(),
		Scope:          string(sub.Scope()),
		ScopeID:        sub.ScopeID(),
		TargetURL:      sub.TargetURL(),
		Events:         sub.Events(),
	}, nil
}

func (uc *CreateWebhookUseCase) authorizeScope(ctx context.Context, cmd CreateWebhookCommand) error {
	actor := tracker.UserActor(cmd.UserID)
	switch cmd.Scope {
	case webhook.ScopeTracker:
		tr, err := uc.trackerRepo.GetByID(ctx, cmd.ScopeID)
		if err != nil {
			return err
		}
		mask, err := uc.resolver.ForTracker(ctx, tr, actor)
		if err != nil {
			return err
		}
		if !mask.Contains(tracker.AccessBrowse) {
			return errors.NewNotFoundError("tracker not found")
		}
	case webhook.ScopeTicket:
		tk, err := uc.ticketRepo.GetByID(ctx, cmd.ScopeID)
		if err != nil {
			return err
		}
		tr, err := uc.trackerRepo.GetByID(ctx, tk.TrackerID())
		if err != nil {
			return err
		}
		mask, err := uc.resolver.ForTicket(ctx, tr, tk, actor)
		if err != nil {
			return err
		}
		if !mask.Contains(tracker.AccessBrowse) {
			return errors.NewNotFoundError("ticket not found")
		}
	case webhook.ScopeUser:
		if cmd.ScopeID != cmd.UserID {
			return errors.NewForbiddenError("user-scoped webhooks can only target yourself")
		}
	}
	return nil
}
