package tracker

import (
	"context"
)

type TrackerRepository interface {
	Save(ctx context.Context, t *Tracker) error
	Update(ctx context.Context, t *Tracker) error
	Delete(ctx context.Context, trackerID uint) error
	GetByID(ctx context.Context, trackerID uint) (*Tracker, error)
	GetByOwnerAndName(ctx context.Context, ownerID uint, name string) (*Tracker, error)
	// GetByIDForUpdate locks the tracker row for the rest of the enclosing
	// transaction. Ticket submission uses it to serialize scoped id
	// allocation.
	GetByIDForUpdate(ctx context.Context, trackerID uint) (*Tracker, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Tracker, error)
}

type UserAccessRepository interface {
	Save(ctx context.Context, ua *UserAccess) error
	Delete(ctx context.Context, trackerID, userID uint) error
	GetByTrackerAndUser(ctx context.Context, trackerID, userID uint) (*UserAccess, error)
	ListByTracker(ctx context.Context, trackerID uint) ([]*UserAccess, error)
}

type LabelRepository interface {
	Save(ctx context.Context, l *Label) error
	Delete(ctx context.Context, labelID uint) error
	GetByID(ctx context.Context, labelID uint) (*Label, error)
	GetByTrackerAndName(ctx context.Context, trackerID uint, name string) (*Label, error)
	ListByTracker(ctx context.Context, trackerID uint) ([]*Label, error)
}
