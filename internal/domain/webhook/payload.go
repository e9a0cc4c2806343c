package webhook

import "time"

// Wire payload types. These are a versioned contract with third-party
// subscribers: field names and shapes must remain stable.

// UserRef identifies a participant in a payload.
type UserRef struct {
	ID uint `json:"id"`
}

// TicketPayload is the full ticket representation as of the moment the
// triggering event was created.
type TicketPayload struct {
	ID          uint      `json:"id"`
	Ref         string    `json:"ref"`
	TrackerID   uint      `json:"tracker_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Resolution  string    `json:"resolution,omitempty"`
	Submitter   UserRef   `json:"submitter"`
	Labels      []string  `json:"labels"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// CommentPayload carries the comment attached to an event, when present.
type CommentPayload struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// EventPayload is the body delivered for event_create (and, with the
// ticket embedded, for ticket_create).
type EventPayload struct {
	ID            uint            `json:"id"`
	EventType     []string        `json:"event_type"`
	Ticket        *TicketPayload  `json:"ticket"`
	Participant   UserRef         `json:"participant"`
	Timestamp     time.Time       `json:"timestamp"`
	Comment       *CommentPayload `json:"comment,omitempty"`
	OldStatus     string          `json:"old_status,omitempty"`
	NewStatus     string          `json:"new_status,omitempty"`
	OldResolution string          `json:"old_resolution,omitempty"`
	NewResolution string          `json:"new_resolution,omitempty"`
	Label         string          `json:"label,omitempty"`
}

// TrackerPayload is the body delivered for tracker_update and
// tracker_delete.
type TrackerPayload struct {
	ID          uint      `json:"id"`
	Owner       UserRef   `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}
