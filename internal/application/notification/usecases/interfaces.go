package usecases

import (
	"context"
)

type ListNotificationsExecutor interface {
	Execute(ctx context.Context, query ListNotificationsQuery) (*ListNotificationsResult, error)
}

type UnreadCountExecutor interface {
	Execute(ctx context.Context, query UnreadCountQuery) (*UnreadCountResult, error)
}

type MarkReadExecutor interface {
	Execute(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error)
}
