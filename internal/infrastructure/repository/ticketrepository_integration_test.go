package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trackd/internal/domain/notification"
	"trackd/internal/domain/ticket"
	"trackd/internal/infrastructure/migration"
	"trackd/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(migration.AutoMigrateModels()...)
	require.NoError(t, err)

	return db
}

func createTestTicket(t *testing.T, trackerID, scopedID, submitterID uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(trackerID, scopedID, submitterID, "Crash on startup", "Stack trace attached")
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("save new ticket successfully", func(t *testing.T) {
		tk := createTestTicket(t, 1, 1, 10)

		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("submitter recorded as participant", func(t *testing.T) {
		tk := createTestTicket(t, 1, 2, 10)
		err := repo.Save(ctx, tk)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{10}, found.ParticipantIDs())
	})

	t.Run("duplicate scoped id on same tracker should fail", func(t *testing.T) {
		tk1 := createTestTicket(t, 2, 1, 10)
		require.NoError(t, repo.Save(ctx, tk1))

		tk2 := createTestTicket(t, 2, 1, 11)
		err := repo.Save(ctx, tk2)
		assert.Error(t, err)
	})

	t.Run("same scoped id on another tracker is fine", func(t *testing.T) {
		tk := createTestTicket(t, 3, 1, 10)
		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
	})
}

func TestTicketRepository_GetByScopedID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, 1, 7, 10)
	require.NoError(t, repo.Save(ctx, tk))

	t.Run("found by tracker and scoped id", func(t *testing.T) {
		found, err := repo.GetByScopedID(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
		assert.Equal(t, "Crash on startup", found.Title())
	})

	t.Run("missing scoped id is not found", func(t *testing.T) {
		_, err := repo.GetByScopedID(ctx, 1, 99)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestTicketRepository_Labels(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, 1, 1, 10)
	require.NoError(t, repo.Save(ctx, tk))

	err := repo.AddLabel(ctx, tk.ID(), 5, 10)
	require.NoError(t, err)
	err = repo.AddLabel(ctx, tk.ID(), 6, 10)
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 6}, found.LabelIDs())

	err = repo.RemoveLabel(ctx, tk.ID(), 5)
	require.NoError(t, err)

	found, err = repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{6}, found.LabelIDs())
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	for scopedID := uint(1); scopedID <= 5; scopedID++ {
		require.NoError(t, repo.Save(ctx, createTestTicket(t, 1, scopedID, 10)))
	}
	// Another tracker's ticket must not leak into the listing.
	require.NoError(t, repo.Save(ctx, createTestTicket(t, 2, 1, 10)))

	t.Run("newest first with total", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, 1, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, tickets, 3)
		assert.Equal(t, uint(5), tickets[0].ScopedID())
		assert.Equal(t, uint(3), tickets[2].ScopedID())
	})

	t.Run("second page", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, 1, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, tickets, 2)
		assert.Equal(t, uint(2), tickets[0].ScopedID())
	})
}

func TestTicketRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, 1, 1, 10)
	require.NoError(t, repo.Save(ctx, tk))

	_, err := tk.Resolve(10, "fixed", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.True(t, found.Status().IsResolved())
	assert.Equal(t, "fixed", found.Resolution().String())
}

func TestNotificationRepository_SaveIgnoreDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	first, err := notification.NewEventNotification(10, 1)
	require.NoError(t, err)
	require.NoError(t, repo.SaveIgnoreDuplicate(ctx, first))
	assert.NotZero(t, first.ID())

	// Same user and event again is a silent no-op.
	dup, err := notification.NewEventNotification(10, 1)
	require.NoError(t, err)
	require.NoError(t, repo.SaveIgnoreDuplicate(ctx, dup))

	count, err := repo.CountUnread(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
