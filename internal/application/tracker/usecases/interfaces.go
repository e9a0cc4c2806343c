package usecases

import (
	"context"

	appwebhook "trackd/internal/application/webhook"
)

// Dispatcher queues webhook deliveries for tracker lifecycle events.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventName string, scopes []appwebhook.ScopeRef, payload any) error
}

type CreateTrackerExecutor interface {
	Execute(ctx context.Context, cmd CreateTrackerCommand) (*CreateTrackerResult, error)
}

type UpdateTrackerExecutor interface {
	Execute(ctx context.Context, cmd UpdateTrackerCommand) (*UpdateTrackerResult, error)
}

type DeleteTrackerExecutor interface {
	Execute(ctx context.Context, cmd DeleteTrackerCommand) (*DeleteTrackerResult, error)
}

type GetTrackerExecutor interface {
	Execute(ctx context.Context, query GetTrackerQuery) (*TrackerDTO, error)
}

type ListTrackersExecutor interface {
	Execute(ctx context.Context, query ListTrackersQuery) (*ListTrackersResult, error)
}

type GrantAccessExecutor interface {
	Execute(ctx context.Context, cmd GrantAccessCommand) (*GrantAccessResult, error)
}

type RevokeAccessExecutor interface {
	Execute(ctx context.Context, cmd RevokeAccessCommand) (*RevokeAccessResult, error)
}

type CreateLabelExecutor interface {
	Execute(ctx context.Context, cmd CreateLabelCommand) (*CreateLabelResult, error)
}

type DeleteLabelExecutor interface {
	Execute(ctx context.Context, cmd DeleteLabelCommand) (*DeleteLabelResult, error)
}

type SubscribeTrackerExecutor interface {
	Execute(ctx context.Context, cmd SubscribeTrackerCommand) (*SubscribeTrackerResult, error)
}

type UnsubscribeTrackerExecutor interface {
	Execute(ctx context.Context, cmd UnsubscribeTrackerCommand) (*UnsubscribeTrackerResult, error)
}
