package webhook

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the lifecycle state of an outbox record.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Delivery is a durable outbox record: one pending delivery per matching
// subscription per event, written in the same transaction as the event
// itself. The payload is captured at event-creation time; the worker never
// re-reads live state.
type Delivery struct {
	id             string
	subscriptionID uint
	eventName      string
	payload        []byte
	attempts       int
	status         DeliveryStatus
	nextAttemptAt  time.Time
	lastError      string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewDelivery(subscriptionID uint, eventName string, payload []byte) (*Delivery, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if !IsValidEventName(eventName) {
		return nil, fmt.Errorf("unknown event name: %s", eventName)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("payload is required")
	}

	now := time.Now()
	return &Delivery{
		id:             uuid.NewString(),
		subscriptionID: subscriptionID,
		eventName:      eventName,
		payload:        payload,
		status:         DeliveryPending,
		nextAttemptAt:  now,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructDelivery(
	id string,
	subscriptionID uint,
	eventName string,
	payload []byte,
	attempts int,
	status DeliveryStatus,
	nextAttemptAt time.Time,
	lastError string,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if id == "" {
		return nil, fmt.Errorf("delivery ID cannot be empty")
	}
	return &Delivery{
		id:             id,
		subscriptionID: subscriptionID,
		eventName:      eventName,
		payload:        payload,
		attempts:       attempts,
		status:         status,
		nextAttemptAt:  nextAttemptAt,
		lastError:      lastError,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (d *Delivery) ID() string {
	return d.id
}

func (d *Delivery) SubscriptionID() uint {
	return d.subscriptionID
}

func (d *Delivery) EventName() string {
	return d.eventName
}

func (d *Delivery) Payload() []byte {
	payload := make([]byte, len(d.payload))
	copy(payload, d.payload)
	return payload
}

func (d *Delivery) Attempts() int {
	return d.attempts
}

func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

func (d *Delivery) NextAttemptAt() time.Time {
	return d.nextAttemptAt
}

func (d *Delivery) LastError() string {
	return d.lastError
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsDue reports whether the delivery should be attempted now.
func (d *Delivery) IsDue(now time.Time) bool {
	return d.status == DeliveryPending && !d.nextAttemptAt.After(now)
}

// MarkDelivered records a successful attempt.
func (d *Delivery) MarkDelivered() {
	d.attempts++
	d.status = DeliveryDelivered
	d.lastError = ""
	d.updatedAt = time.Now()
}

// MarkFailed records a failed attempt and schedules the next one with
// exponential backoff (backoffBase, 2x per attempt). Once maxAttempts is
// exhausted the delivery is failed permanently and the caller should
// disable the subscription. Returns true when retries are exhausted.
func (d *Delivery) MarkFailed(deliveryErr string, backoffBase time.Duration, maxAttempts int) bool {
	d.attempts++
	d.lastError = deliveryErr
	d.updatedAt = time.Now()

	if d.attempts >= maxAttempts {
		d.status = DeliveryFailed
		return true
	}

	backoff := backoffBase << (d.attempts - 1)
	d.nextAttemptAt = time.Now().Add(backoff)
	return false
}
