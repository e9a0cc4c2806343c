package tracker

import (
	"fmt"
	"regexp"
	"time"
)

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)

// Tracker is a named collection of tickets owned by a user. It carries the
// default permission masks consulted by access resolution and the counter
// that assigns tracker-scoped ticket numbers.
type Tracker struct {
	id                    uint
	ownerID               uint
	name                  string
	description           string
	defaultAnonymousPerms AccessMask
	defaultUserPerms      AccessMask
	defaultSubmitterPerms AccessMask
	nextTicketID          uint
	createdAt             time.Time
	updatedAt             time.Time
}

func NewTracker(ownerID uint, name, description string) (*Tracker, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if len(description) >= 4096 {
		return nil, fmt.Errorf("description must be less than 4096 characters")
	}

	now := time.Now()
	return &Tracker{
		ownerID:               ownerID,
		name:                  name,
		description:           description,
		defaultAnonymousPerms: AccessBrowse,
		defaultUserPerms:      AccessBrowse | AccessSubmit | AccessComment,
		defaultSubmitterPerms: AccessBrowse | AccessSubmit | AccessComment,
		nextTicketID:          1,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// ValidateName checks tracker name constraints: 2-255 characters, lowercase
// alphanumeric with -_. separators, starting with a letter.
func ValidateName(name string) error {
	if len(name) <= 2 || len(name) >= 256 {
		return fmt.Errorf("name must be between 2 and 256 characters")
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("name must start with a lowercase letter and contain only lowercase alphanumeric characters or -_.")
	}
	return nil
}

func ReconstructTracker(
	id uint,
	ownerID uint,
	name string,
	description string,
	defaultAnonymousPerms AccessMask,
	defaultUserPerms AccessMask,
	defaultSubmitterPerms AccessMask,
	nextTicketID uint,
	createdAt, updatedAt time.Time,
) (*Tracker, error) {
	if id == 0 {
		return nil, fmt.Errorf("tracker ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}

	return &Tracker{
		id:                    id,
		ownerID:               ownerID,
		name:                  name,
		description:           description,
		defaultAnonymousPerms: defaultAnonymousPerms,
		defaultUserPerms:      defaultUserPerms,
		defaultSubmitterPerms: defaultSubmitterPerms,
		nextTicketID:          nextTicketID,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}, nil
}

func (t *Tracker) ID() uint {
	return t.id
}

func (t *Tracker) OwnerID() uint {
	return t.ownerID
}

func (t *Tracker) Name() string {
	return t.name
}

func (t *Tracker) Description() string {
	return t.description
}

func (t *Tracker) DefaultAnonymousPerms() AccessMask {
	return t.defaultAnonymousPerms
}

func (t *Tracker) DefaultUserPerms() AccessMask {
	return t.defaultUserPerms
}

func (t *Tracker) DefaultSubmitterPerms() AccessMask {
	return t.defaultSubmitterPerms
}

func (t *Tracker) NextTicketID() uint {
	return t.nextTicketID
}

func (t *Tracker) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tracker) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Tracker) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tracker ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tracker ID cannot be zero")
	}
	t.id = id
	return nil
}

// AccessFor resolves the access mask for an actor. Tiers are exclusive: the
// first matching tier determines the mask, never unioned with lower tiers.
//
//  1. tracker owner: full mask
//  2. UserAccess override: that mask exactly
//  3. ticket submitter: default submitter perms
//  4. any authenticated user: default user perms
//  5. anonymous: default anonymous perms
//
// override must be the UserAccess row for (tracker, actor) or nil;
// ticketSubmitterID is the submitter of the ticket in scope, or nil when
// access is resolved against the tracker alone.
func (t *Tracker) AccessFor(actor Actor, override *UserAccess, ticketSubmitterID *uint) AccessMask {
	if actor.Is(t.ownerID) {
		return AccessAll
	}
	if override != nil && actor.Is(override.UserID()) {
		return override.Permissions()
	}
	if ticketSubmitterID != nil && actor.Is(*ticketSubmitterID) {
		return t.defaultSubmitterPerms
	}
	if actor.IsAuthenticated() {
		return t.defaultUserPerms
	}
	return t.defaultAnonymousPerms
}

// ConfigureAccess replaces the three default permission masks.
func (t *Tracker) ConfigureAccess(anonymous, user, submitter AccessMask) error {
	if anonymous&^AccessAll != 0 || user&^AccessAll != 0 || submitter&^AccessAll != 0 {
		return fmt.Errorf("invalid permission mask")
	}
	t.defaultAnonymousPerms = anonymous
	t.defaultUserPerms = user
	t.defaultSubmitterPerms = submitter
	t.updatedAt = time.Now()
	return nil
}

func (t *Tracker) UpdateDescription(description string) error {
	if len(description) >= 4096 {
		return fmt.Errorf("description must be less than 4096 characters")
	}
	t.description = description
	t.updatedAt = time.Now()
	return nil
}

// AllocateScopedID hands out the next tracker-scoped ticket number. The
// caller must hold the tracker row lock and persist the tracker in the same
// transaction as the ticket insert; scoped ids are never reused.
func (t *Tracker) AllocateScopedID() uint {
	scopedID := t.nextTicketID
	t.nextTicketID++
	t.updatedAt = time.Now()
	return scopedID
}
