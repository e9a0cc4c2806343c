package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackd/internal/domain/webhook"
)

func pendingDelivery(t *testing.T, subscriptionID uint, createdAt time.Time) *webhook.Delivery {
	t.Helper()
	d, err := webhook.ReconstructDelivery(
		uuid.NewString(), subscriptionID, webhook.EventEventCreate,
		[]byte(`{"event":{}}`), 0, webhook.DeliveryPending,
		createdAt, "", createdAt, createdAt,
	)
	require.NoError(t, err)
	return d
}

func claimedIDs(deliveries []*webhook.Delivery) []string {
	ids := make([]string, len(deliveries))
	for i, d := range deliveries {
		ids[i] = d.ID()
	}
	return ids
}

func TestWebhookDeliveryRepository_ClaimDue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWebhookDeliveryRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	first := pendingDelivery(t, 1, base)
	second := pendingDelivery(t, 1, base.Add(time.Second))
	other := pendingDelivery(t, 2, base.Add(2*time.Second))
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	t.Run("older pending delivery holds back the rest of its subscription", func(t *testing.T) {
		due, err := repo.ClaimDue(ctx, 10)
		require.NoError(t, err)

		// Only the oldest pending record per subscription is claimable, so a
		// retrying subscription cannot post a newer event ahead of an older one.
		ids := claimedIDs(due)
		assert.Equal(t, []string{first.ID(), other.ID()}, ids)
		assert.NotContains(t, ids, second.ID())
	})

	t.Run("next record becomes claimable once the older one is delivered", func(t *testing.T) {
		first.MarkDelivered()
		require.NoError(t, repo.Update(ctx, first))

		due, err := repo.ClaimDue(ctx, 10)
		require.NoError(t, err)
		assert.Contains(t, claimedIDs(due), second.ID())
	})

	t.Run("permanently failed record also unblocks its successors", func(t *testing.T) {
		exhausted := second.MarkFailed("connection refused", time.Second, 1)
		require.True(t, exhausted)
		require.NoError(t, repo.Update(ctx, second))

		third := pendingDelivery(t, 1, base.Add(3*time.Second))
		require.NoError(t, repo.Save(ctx, third))

		due, err := repo.ClaimDue(ctx, 10)
		require.NoError(t, err)
		assert.Contains(t, claimedIDs(due), third.ID())
	})

	t.Run("future next attempt is not due", func(t *testing.T) {
		later := pendingDelivery(t, 3, base)
		require.NoError(t, repo.Save(ctx, later))
		require.False(t, later.MarkFailed("503", time.Hour, 5))
		require.NoError(t, repo.Update(ctx, later))

		due, err := repo.ClaimDue(ctx, 10)
		require.NoError(t, err)
		assert.NotContains(t, claimedIDs(due), later.ID())
	})
}
