package ticket

import (
	"fmt"
	"time"

	vo "trackd/internal/domain/ticket/valueobjects"
)

// Ticket is a unit of tracked work within a tracker, identified by a
// tracker-scoped sequential number. State transitions go through the
// methods below; every successful transition produces the Event record the
// caller must append to the ticket's activity stream.
type Ticket struct {
	id             uint
	trackerID      uint
	scopedID       uint
	submitterID    uint
	title          string
	description    string
	status         vo.TicketStatus
	resolution     vo.TicketResolution
	labelIDs       []uint
	participantIDs []uint
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTicket(trackerID, scopedID, submitterID uint, title, description string) (*Ticket, error) {
	if trackerID == 0 {
		return nil, fmt.Errorf("tracker ID is required")
	}
	if scopedID == 0 {
		return nil, fmt.Errorf("scoped ID is required")
	}
	if submitterID == 0 {
		return nil, fmt.Errorf("submitter ID is required")
	}
	if len(title) < 3 || len(title) > 2048 {
		return nil, fmt.Errorf("title must be between 3 and 2048 characters")
	}
	if len(description) > 16384 {
		return nil, fmt.Errorf("description must be no more than 16384 characters")
	}

	now := time.Now()
	return &Ticket{
		trackerID:      trackerID,
		scopedID:       scopedID,
		submitterID:    submitterID,
		title:          title,
		description:    description,
		status:         vo.StatusOpen,
		resolution:     vo.ResolutionUnresolved,
		labelIDs:       []uint{},
		participantIDs: []uint{submitterID},
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTicket(
	id uint,
	trackerID uint,
	scopedID uint,
	submitterID uint,
	title string,
	description string,
	status vo.TicketStatus,
	resolution vo.TicketResolution,
	labelIDs []uint,
	participantIDs []uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !resolution.IsValid() {
		return nil, fmt.Errorf("invalid resolution")
	}

	if labelIDs == nil {
		labelIDs = []uint{}
	}
	if participantIDs == nil {
		participantIDs = []uint{}
	}

	return &Ticket{
		id:             id,
		trackerID:      trackerID,
		scopedID:       scopedID,
		submitterID:    submitterID,
		title:          title,
		description:    description,
		status:         status,
		resolution:     resolution,
		labelIDs:       labelIDs,
		participantIDs: participantIDs,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) TrackerID() uint {
	return t.trackerID
}

func (t *Ticket) ScopedID() uint {
	return t.scopedID
}

func (t *Ticket) SubmitterID() uint {
	return t.submitterID
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Resolution() vo.TicketResolution {
	return t.resolution
}

func (t *Ticket) LabelIDs() []uint {
	ids := make([]uint, len(t.labelIDs))
	copy(ids, t.labelIDs)
	return ids
}

func (t *Ticket) ParticipantIDs() []uint {
	ids := make([]uint, len(t.participantIDs))
	copy(ids, t.participantIDs)
	return ids
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// HasLabel reports whether the label is currently applied.
func (t *Ticket) HasLabel(labelID uint) bool {
	for _, id := range t.labelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// Resolve transitions the ticket to resolved with the given reason. A
// resolution request against an already-resolved ticket is still treated as
// a state change: it requires a valid reason and produces an event
// recording the old and new resolution.
func (t *Ticket) Resolve(userID uint, resolution vo.TicketResolution, commentID *uint) (*Event, error) {
	if !resolution.IsReason() {
		return nil, fmt.Errorf("a resolution reason is required to resolve a ticket")
	}

	oldStatus := t.status
	oldResolution := t.resolution
	t.status = vo.StatusResolved
	t.resolution = resolution
	t.updatedAt = time.Now()
	t.addParticipant(userID)

	return NewStatusChangeEvent(
		t.id, userID,
		oldStatus, t.status,
		oldResolution, t.resolution,
		commentID,
	)
}

// Reopen transitions a resolved ticket back to open and clears the
// resolution.
func (t *Ticket) Reopen(userID uint, commentID *uint) (*Event, error) {
	if !t.status.IsResolved() {
		return nil, fmt.Errorf("only resolved tickets can be reopened")
	}

	oldStatus := t.status
	oldResolution := t.resolution
	t.status = vo.StatusOpen
	t.resolution = vo.ResolutionUnresolved
	t.updatedAt = time.Now()
	t.addParticipant(userID)

	return NewStatusChangeEvent(
		t.id, userID,
		oldStatus, t.status,
		oldResolution, t.resolution,
		commentID,
	)
}

// RecordComment records a comment-only mutation. The status is untouched.
func (t *Ticket) RecordComment(userID, commentID uint) (*Event, error) {
	t.updatedAt = time.Now()
	t.addParticipant(userID)
	return NewCommentEvent(t.id, userID, commentID)
}

// AddLabel applies a label. Adding a label that is already present is a
// no-op and produces no event.
func (t *Ticket) AddLabel(labelID, userID uint) (*Event, error) {
	if labelID == 0 {
		return nil, fmt.Errorf("label ID is required")
	}
	if t.HasLabel(labelID) {
		return nil, nil
	}

	t.labelIDs = append(t.labelIDs, labelID)
	t.updatedAt = time.Now()
	t.addParticipant(userID)
	return NewLabelEvent(t.id, userID, labelID, true)
}

// RemoveLabel removes a label. Removing a label that is not present is a
// no-op and produces no event.
func (t *Ticket) RemoveLabel(labelID, userID uint) (*Event, error) {
	if !t.HasLabel(labelID) {
		return nil, nil
	}

	kept := make([]uint, 0, len(t.labelIDs)-1)
	for _, id := range t.labelIDs {
		if id != labelID {
			kept = append(kept, id)
		}
	}
	t.labelIDs = kept
	t.updatedAt = time.Now()
	t.addParticipant(userID)
	return NewLabelEvent(t.id, userID, labelID, false)
}

func (t *Ticket) addParticipant(userID uint) {
	for _, id := range t.participantIDs {
		if id == userID {
			return
		}
	}
	t.participantIDs = append(t.participantIDs, userID)
}
