// Package webhook drains the delivery outbox: due records are posted to
// their subscription's target URL with retry and backoff.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"trackd/internal/domain/webhook"
	sharedConfig "trackd/internal/shared/config"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
)

const claimBatchSize = 50

// Deliverer polls for due outbox records and attempts HTTP delivery. A 2xx
// response marks the record delivered; anything else schedules a retry, and
// a record that exhausts its attempts disables the owning subscription.
type Deliverer struct {
	deliveryRepo     webhook.DeliveryRepository
	subscriptionRepo webhook.SubscriptionRepository
	client           *http.Client
	cfg              sharedConfig.WebhookConfig
	logger           logger.Interface
	stopChan         chan struct{}
}

func NewDeliverer(
	deliveryRepo webhook.DeliveryRepository,
	subscriptionRepo webhook.SubscriptionRepository,
	cfg sharedConfig.WebhookConfig,
	lg logger.Interface,
) *Deliverer {
	return &Deliverer{
		deliveryRepo:     deliveryRepo,
		subscriptionRepo: subscriptionRepo,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		cfg:      cfg,
		logger:   lg.With("component", "webhook.deliverer"),
		stopChan: make(chan struct{}),
	}
}

// Start polls until the context is cancelled or Stop is called.
func (d *Deliverer) Start(ctx context.Context) {
	interval := time.Duration(d.cfg.PollIntervalSeconds) * time.Second
	d.logger.Infow("starting webhook deliverer", "interval", interval)

	// Drain immediately on start
	d.drain(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Infow("webhook deliverer stopped due to context cancellation")
			return
		case <-d.stopChan:
			d.logger.Infow("webhook deliverer stopped")
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

// Stop stops the polling loop.
func (d *Deliverer) Stop() {
	close(d.stopChan)
}

// drain processes due deliveries until a claim comes back empty.
func (d *Deliverer) drain(ctx context.Context) {
	for {
		deliveries, err := d.deliveryRepo.ClaimDue(ctx, claimBatchSize)
		if err != nil {
			d.logger.Errorw("failed to claim due deliveries", "error", err)
			return
		}
		if len(deliveries) == 0 {
			return
		}

		for _, delivery := range deliveries {
			if ctx.Err() != nil {
				return
			}
			d.deliver(ctx, delivery)
		}

		if len(deliveries) < claimBatchSize {
			return
		}
	}
}

func (d *Deliverer) deliver(ctx context.Context, delivery *webhook.Delivery) {
	sub, err := d.subscriptionRepo.GetByID(ctx, delivery.SubscriptionID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			// Subscription deleted after the outbox row was written.
			delivery.MarkFailed("subscription deleted", d.backoffBase(), d.cfg.MaxAttempts)
			d.update(ctx, delivery)
			return
		}
		d.logger.Errorw("failed to load subscription for delivery",
			"delivery_id", delivery.ID(), "error", err)
		return
	}

	if !sub.IsActive() {
		delivery.MarkFailed("subscription disabled", d.backoffBase(), d.cfg.MaxAttempts)
		d.update(ctx, delivery)
		return
	}

	if err := d.post(ctx, sub.TargetURL(), delivery); err != nil {
		exhausted := delivery.MarkFailed(err.Error(), d.backoffBase(), d.cfg.MaxAttempts)
		d.update(ctx, delivery)

		if exhausted {
			d.logger.Warnw("delivery exhausted retries, disabling subscription",
				"delivery_id", delivery.ID(),
				"subscription_id", sub.ID(),
				"error", err)
			if err := d.subscriptionRepo.Disable(ctx, sub.ID()); err != nil {
				d.logger.Errorw("failed to disable subscription",
					"subscription_id", sub.ID(), "error", err)
			}
			return
		}

		d.logger.Debugw("delivery attempt failed, scheduled retry",
			"delivery_id", delivery.ID(),
			"attempts", delivery.Attempts(),
			"next_attempt_at", delivery.NextAttemptAt(),
			"error", err)
		return
	}

	delivery.MarkDelivered()
	d.update(ctx, delivery)
	d.logger.Debugw("webhook delivered",
		"delivery_id", delivery.ID(),
		"event", delivery.EventName(),
		"subscription_id", sub.ID())
}

func (d *Deliverer) post(ctx context.Context, targetURL string, delivery *webhook.Delivery) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(delivery.Payload()))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", delivery.EventName())
	req.Header.Set("X-Delivery-Id", delivery.ID())

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (d *Deliverer) update(ctx context.Context, delivery *webhook.Delivery) {
	if err := d.deliveryRepo.Update(ctx, delivery); err != nil {
		d.logger.Errorw("failed to persist delivery state",
			"delivery_id", delivery.ID(), "error", err)
	}
}

func (d *Deliverer) backoffBase() time.Duration {
	return time.Duration(d.cfg.BackoffBaseSeconds) * time.Second
}
