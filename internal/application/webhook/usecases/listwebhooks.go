package usecases

import (
	"context"

	"trackd/internal/domain/webhook"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type ListWebhooksQuery struct {
	Scope   webhook.Scope
	ScopeID uint
	UserID  uint
}

type WebhookDTO struct {
	SubscriptionID uint
	Scope          string
	ScopeID        uint
	TargetURL      string
	Events         []string
	Active         bool
	CreatedAt      string
}

type ListWebhooksResult struct {
	Webhooks []*WebhookDTO
}

// ListWebhooksUseCase lists the caller's own subscriptions on a scope.
// Other users' subscriptions on the same scope stay invisible; the target
// URLs are theirs to know.
type ListWebhooksUseCase struct {
	subscriptionRepo webhook.SubscriptionRepository
	logger           logger.Interface
}

func NewListWebhooksUseCase(
	subscriptionRepo webhook.SubscriptionRepository,
	logger logger.Interface,
) *ListWebhooksUseCase {
	return &ListWebhooksUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *ListWebhooksUseCase) Execute(ctx context.Context, query ListWebhooksQuery) (*ListWebhooksResult, error) {
	if !query.Scope.IsValid() {
		return nil, errors.NewValidationError("invalid webhook scope")
	}
	if query.ScopeID == 0 {
		return nil, errors.NewValidationError("scope ID is required")
	}
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	subs, err := uc.subscriptionRepo.ListByScope(ctx, query.Scope, query.ScopeID)
	if err != nil {
		uc.logger.Errorw("failed to list webhook subscriptions", "scope", query.Scope, "scope_id", query.ScopeID, "error", err)
		return nil, err
	}

	dtos := make([]*WebhookDTO, 0, len(subs))
	for _, sub := range subs {
		if sub.UserID() != query.UserID {
			continue
		}
		dtos = append(dtos, &WebhookDTO{
			SubscriptionID: sub.ID(),
			Scope:          string(sub.Scope()),
			ScopeID:        sub.ScopeID(),
			TargetURL:      sub.TargetURL(),
			Events:         sub.Events(),
			Active:         sub.IsActive(),
			CreatedAt:      sub.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &ListWebhooksResult{Webhooks: dtos}, nil
}
