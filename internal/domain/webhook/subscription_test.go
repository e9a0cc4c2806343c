package webhook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	sub, err := NewSubscription(ScopeTracker, 1, 2, "https://example.com/hook", []string{EventTicketCreate, EventEventCreate})
	require.NoError(t, err)

	assert.True(t, sub.IsActive())
	assert.Equal(t, ScopeTracker, sub.Scope())
	assert.Equal(t, []string{EventTicketCreate, EventEventCreate}, sub.Events())
}

func TestNewSubscription_Validation(t *testing.T) {
	tests := []struct {
		name      string
		scope     Scope
		targetURL string
		events    []string
	}{
		{name: "invalid scope", scope: Scope("global"), targetURL: "https://example.com", events: []string{EventEventCreate}},
		{name: "bad url scheme", scope: ScopeTracker, targetURL: "ftp://example.com", events: []string{EventEventCreate}},
		{name: "not a url", scope: ScopeTracker, targetURL: "://", events: []string{EventEventCreate}},
		{name: "no events", scope: ScopeTracker, targetURL: "https://example.com", events: nil},
		{name: "unknown event", scope: ScopeTracker, targetURL: "https://example.com", events: []string{"ticket_explode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSubscription(tt.scope, 1, 2, tt.targetURL, tt.events)
			assert.Error(t, err)
		})
	}
}

func TestSubscription_Matches(t *testing.T) {
	sub, err := NewSubscription(ScopeTracker, 1, 2, "https://example.com/hook", []string{EventTicketCreate})
	require.NoError(t, err)

	assert.True(t, sub.Matches(EventTicketCreate))
	assert.False(t, sub.Matches(EventEventCreate))

	sub.Disable()
	assert.False(t, sub.Matches(EventTicketCreate))
}

func TestNewDelivery(t *testing.T) {
	d, err := NewDelivery(1, EventEventCreate, []byte(`{"id":1}`))
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID())
	assert.Equal(t, DeliveryPending, d.Status())
	assert.Equal(t, 0, d.Attempts())
	assert.True(t, d.IsDue(time.Now()))

	_, err = NewDelivery(1, "nope", []byte(`{}`))
	assert.Error(t, err)

	_, err = NewDelivery(1, EventEventCreate, nil)
	assert.Error(t, err)
}

func TestDelivery_MarkDelivered(t *testing.T) {
	d, err := NewDelivery(1, EventEventCreate, []byte(`{}`))
	require.NoError(t, err)

	d.MarkDelivered()

	assert.Equal(t, DeliveryDelivered, d.Status())
	assert.Equal(t, 1, d.Attempts())
	assert.False(t, d.IsDue(time.Now()))
}

func TestDelivery_MarkFailed_Backoff(t *testing.T) {
	d, err := NewDelivery(1, EventEventCreate, []byte(`{}`))
	require.NoError(t, err)

	base := 10 * time.Second

	// Backoff doubles per attempt: 10s, 20s, 40s.
	for i, want := range []time.Duration{10 * time.Second, 20 * time.Second, 40 * time.Second} {
		before := time.Now()
		exhausted := d.MarkFailed("connection refused", base, 5)
		assert.False(t, exhausted)
		assert.Equal(t, i+1, d.Attempts())
		assert.Equal(t, DeliveryPending, d.Status())

		gap := d.NextAttemptAt().Sub(before)
		assert.InDelta(t, want.Seconds(), gap.Seconds(), 1)
	}

	assert.Equal(t, "connection refused", d.LastError())
}

func TestDelivery_MarkFailed_Exhaustion(t *testing.T) {
	d, err := NewDelivery(1, EventEventCreate, []byte(`{}`))
	require.NoError(t, err)

	assert.False(t, d.MarkFailed("timeout", time.Second, 3))
	assert.False(t, d.MarkFailed("timeout", time.Second, 3))
	assert.True(t, d.MarkFailed("timeout", time.Second, 3))

	assert.Equal(t, DeliveryFailed, d.Status())
	assert.False(t, d.IsDue(time.Now().Add(time.Hour)))
}
