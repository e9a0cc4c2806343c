package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "trackd/internal/domain/ticket/valueobjects"
)

// EventType is a bit-flag enumeration of the kinds of activity recorded on
// a ticket. A single event may carry several flags: a status change applied
// together with a comment is one event with both bits set.
type EventType uint32

const (
	EventCreated        EventType = 1
	EventComment        EventType = 2
	EventStatusChange   EventType = 4
	EventLabelAdded     EventType = 8
	EventLabelRemoved   EventType = 16
	EventAssignedUser   EventType = 32
	EventUnassignedUser EventType = 64
)

var eventTypeNames = []struct {
	flag EventType
	name string
}{
	{EventCreated, "created"},
	{EventComment, "comment"},
	{EventStatusChange, "status_change"},
	{EventLabelAdded, "label_added"},
	{EventLabelRemoved, "label_removed"},
	{EventAssignedUser, "assigned_user"},
	{EventUnassignedUser, "unassigned_user"},
}

func (et EventType) Has(flag EventType) bool {
	return et&flag != 0
}

func (et EventType) String() string {
	parts := make([]string, 0, 2)
	for _, tn := range eventTypeNames {
		if et&tn.flag != 0 {
			parts = append(parts, tn.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// Names returns the set flags as names, for wire payloads.
func (et EventType) Names() []string {
	names := make([]string, 0, 2)
	for _, tn := range eventTypeNames {
		if et&tn.flag != 0 {
			names = append(names, tn.name)
		}
	}
	return names
}

// Event is an immutable record of a single state change on a ticket. Events
// are strictly ordered by id within a ticket and are the sole trigger for
// notification fan-out and webhook dispatch. Payload fields are present
// only for the relevant variant.
type Event struct {
	id            uint
	ticketID      uint
	eventType     EventType
	userID        uint
	commentID     *uint
	oldStatus     *vo.TicketStatus
	newStatus     *vo.TicketStatus
	oldResolution *vo.TicketResolution
	newResolution *vo.TicketResolution
	labelID       *uint
	byUserID      *uint
	createdAt     time.Time
}

// NewCreatedEvent records the transition from nonexistent to open.
func NewCreatedEvent(ticketID, userID uint) (*Event, error) {
	return newEvent(ticketID, EventCreated, userID)
}

// NewCommentEvent records a comment with no status change.
func NewCommentEvent(ticketID, userID, commentID uint) (*Event, error) {
	ev, err := newEvent(ticketID, EventComment, userID)
	if err != nil {
		return nil, err
	}
	ev.commentID = &commentID
	return ev, nil
}

// NewStatusChangeEvent records a status transition, optionally combined
// with a comment made in the same request.
func NewStatusChangeEvent(
	ticketID, userID uint,
	oldStatus, newStatus vo.TicketStatus,
	oldResolution, newResolution vo.TicketResolution,
	commentID *uint,
) (*Event, error) {
	eventType := EventStatusChange
	if commentID != nil {
		eventType |= EventComment
	}
	ev, err := newEvent(ticketID, eventType, userID)
	if err != nil {
		return nil, err
	}
	ev.oldStatus = &oldStatus
	ev.newStatus = &newStatus
	ev.oldResolution = &oldResolution
	ev.newResolution = &newResolution
	ev.commentID = commentID
	return ev, nil
}

// NewLabelEvent records a label being added to or removed from a ticket.
func NewLabelEvent(ticketID, userID, labelID uint, added bool) (*Event, error) {
	eventType := EventLabelAdded
	if !added {
		eventType = EventLabelRemoved
	}
	ev, err := newEvent(ticketID, eventType, userID)
	if err != nil {
		return nil, err
	}
	ev.labelID = &labelID
	return ev, nil
}

// NewAssignmentEvent records a user being assigned to or unassigned from a
// ticket.
func NewAssignmentEvent(ticketID, userID, assigneeID uint, assigned bool) (*Event, error) {
	eventType := EventAssignedUser
	if !assigned {
		eventType = EventUnassignedUser
	}
	ev, err := newEvent(ticketID, eventType, userID)
	if err != nil {
		return nil, err
	}
	ev.byUserID = &assigneeID
	return ev, nil
}

func newEvent(ticketID uint, eventType EventType, userID uint) (*Event, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Event{
		ticketID:  ticketID,
		eventType: eventType,
		userID:    userID,
		createdAt: time.Now(),
	}, nil
}

func ReconstructEvent(
	id uint,
	ticketID uint,
	eventType EventType,
	userID uint,
	commentID *uint,
	oldStatus, newStatus *vo.TicketStatus,
	oldResolution, newResolution *vo.TicketResolution,
	labelID *uint,
	byUserID *uint,
	createdAt time.Time,
) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	return &Event{
		id:            id,
		ticketID:      ticketID,
		eventType:     eventType,
		userID:        userID,
		commentID:     commentID,
		oldStatus:     oldStatus,
		newStatus:     newStatus,
		oldResolution: oldResolution,
		newResolution: newResolution,
		labelID:       labelID,
		byUserID:      byUserID,
		createdAt:     createdAt,
	}, nil
}

func (e *Event) ID() uint {
	return e.id
}

func (e *Event) TicketID() uint {
	return e.ticketID
}

func (e *Event) EventType() EventType {
	return e.eventType
}

func (e *Event) UserID() uint {
	return e.userID
}

func (e *Event) CommentID() *uint {
	return e.commentID
}

func (e *Event) OldStatus() *vo.TicketStatus {
	return e.oldStatus
}

func (e *Event) NewStatus() *vo.TicketStatus {
	return e.newStatus
}

func (e *Event) OldResolution() *vo.TicketResolution {
	return e.oldResolution
}

func (e *Event) NewResolution() *vo.TicketResolution {
	return e.newResolution
}

func (e *Event) LabelID() *uint {
	return e.labelID
}

func (e *Event) ByUserID() *uint {
	return e.byUserID
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}
