package usecases

import (
	"context"

	"trackd/internal/domain/webhook"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

type DeleteWebhookCommand struct {
	SubscriptionID uint
	UserID         uint
}

type DeleteWebhookResult struct {
	SubscriptionID uint
}

// DeleteWebhookUseCase removes a webhook subscription. Only its creator may
// delete it; pending deliveries for it are abandoned by the worker when the
// subscription row is gone.
type DeleteWebhookUseCase struct {
	subscriptionRepo webhook.SubscriptionRepository
	logger           logger.Interface
}

func NewDeleteWebhookUseCase(
	subscriptionRepo webhook.SubscriptionRepository,
	logger logger.Interface,
) *DeleteWebhookUseCase {
	return &DeleteWebhookUseCase{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (uc *DeleteWebhookUseCase) Execute(ctx context.Context, cmd DeleteWebhookCommand) (*DeleteWebhookResult, error) {
	if cmd.SubscriptionID == 0 {
		return nil, errors.NewValidationError("subscription ID is required")
	}

	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID() != cmd.UserID {
		return nil, errors.NewNotFoundError("webhook subscription not found")
	}

	if err := uc.subscriptionRepo.Delete(ctx, cmd.SubscriptionID); err != nil {
		uc.logger.Errorw("failed to delete webhook subscription", "subscription_id", cmd.SubscriptionID, "error", err)
		return nil, err
	}

	uc.logger.Infow("webhook subscription deleted", "subscription_id", cmd.SubscriptionID)
	return &DeleteWebhookResult{SubscriptionID: cmd.SubscriptionID}, nil
}
