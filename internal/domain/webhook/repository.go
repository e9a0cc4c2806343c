package webhook

import (
	"context"
)

type SubscriptionRepository interface {
	Save(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, subscriptionID uint) error
	GetByID(ctx context.Context, subscriptionID uint) (*Subscription, error)
	// ListActiveByScope returns every active subscription on the given
	// scope id, regardless of subscribed event names.
	ListActiveByScope(ctx context.Context, scope Scope, scopeID uint) ([]*Subscription, error)
	ListByScope(ctx context.Context, scope Scope, scopeID uint) ([]*Subscription, error)
	Disable(ctx context.Context, subscriptionID uint) error
}

type DeliveryRepository interface {
	Save(ctx context.Context, d *Delivery) error
	Update(ctx context.Context, d *Delivery) error
	// ClaimDue returns up to limit pending deliveries whose next attempt
	// time has passed, ordered by creation. A subscription with an older
	// still-pending delivery contributes nothing: its newer records wait
	// until the older one is delivered or permanently failed, keeping
	// per-subscription delivery order aligned with event creation order.
	ClaimDue(ctx context.Context, limit int) ([]*Delivery, error)
	GetByID(ctx context.Context, deliveryID string) (*Delivery, error)
}
