package usecases

import (
	"context"
)

type CreateWebhookExecutor interface {
	Execute(ctx context.Context, cmd CreateWebhookCommand) (*CreateWebhookResult, error)
}

type DeleteWebhookExecutor interface {
	Execute(ctx context.Context, cmd DeleteWebhookCommand) (*DeleteWebhookResult, error)
}

type ListWebhooksExecutor interface {
	Execute(ctx context.Context, query ListWebhooksQuery) (*ListWebhooksResult, error)
}
