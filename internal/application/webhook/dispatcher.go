// Package webhook matches events against subscriptions and writes the
// durable outbox rows the delivery worker drains.
package webhook

import (
	"context"
	"encoding/json"

	"trackd/internal/domain/webhook"
	"trackd/internal/shared/logger"
)

// Dispatcher runs inside the mutating transaction: the outbox rows commit
// atomically with the event that triggered them. The payload is serialized
// once, at dispatch time, so later deliveries reflect the state as of the
// event and not whatever the ticket looks like by retry time.
type Dispatcher struct {
	subscriptionRepo webhook.SubscriptionRepository
	deliveryRepo     webhook.DeliveryRepository
	logger           logger.Interface
}

func NewDispatcher(
	subscriptionRepo webhook.SubscriptionRepository,
	deliveryRepo webhook.DeliveryRepository,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		logger:           logger,
	}
}

// ScopeRef identifies one scope to match subscriptions against.
type ScopeRef struct {
	Scope webhook.Scope
	ID    uint
}

// Dispatch queues one delivery per matching active subscription across the
// given scopes. A subscription matches when it listens on a scope and has
// the event name in its set.
func (d *Dispatcher) Dispatch(ctx context.Context, eventName string, scopes []ScopeRef, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	queued := 0
	for _, ref := range scopes {
		subs, err := d.subscriptionRepo.ListActiveByScope(ctx, ref.Scope, ref.ID)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if !sub.Matches(eventName) {
				continue
			}
			delivery, err := webhook.NewDelivery(sub.ID(), eventName, body)
			if err != nil {
				return err
			}
			if err := d.deliveryRepo.Save(ctx, delivery); err != nil {
				return err
			}
			queued++
		}
	}

	if queued > 0 {
		d.logger.Debugw("webhook deliveries queued", "event", eventName, "count", queued)
	}
	return nil
}
