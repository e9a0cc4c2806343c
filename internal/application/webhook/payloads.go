package webhook

import (
	"fmt"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/webhook"
)

// BuildTicketPayload snapshots a ticket for the wire. labelNames must be the
// names of the ticket's current labels, resolved by the caller.
func BuildTicketPayload(tr *tracker.Tracker, tk *ticket.Ticket, labelNames []string) *webhook.TicketPayload {
	if labelNames == nil {
		labelNames = []string{}
	}
	resolution := ""
	if tk.Status().IsResolved() {
		resolution = tk.Resolution().String()
	}
	return &webhook.TicketPayload{
		ID:          tk.ID(),
		Ref:         fmt.Sprintf("%s#%d", tr.Name(), tk.ScopedID()),
		TrackerID:   tk.TrackerID(),
		Title:       tk.Title(),
		Description: tk.Description(),
		Status:      tk.Status().String(),
		Resolution:  resolution,
		Submitter:   webhook.UserRef{ID: tk.SubmitterID()},
		Labels:      labelNames,
		Created:     tk.CreatedAt(),
		Updated:     tk.UpdatedAt(),
	}
}

// BuildEventPayload snapshots an event for the wire. comment and labelName
// are nil/empty when the event does not carry them.
func BuildEventPayload(ev *ticket.Event, ticketPayload *webhook.TicketPayload, comment *ticket.Comment, labelName string) webhook.EventPayload {
	payload := webhook.EventPayload{
		ID:          ev.ID(),
		EventType:   ev.EventType().Names(),
		Ticket:      ticketPayload,
		Participant: webhook.UserRef{ID: ev.UserID()},
		Timestamp:   ev.CreatedAt(),
		Label:       labelName,
	}
	if comment != nil {
		payload.Comment = &webhook.CommentPayload{
			ID:   comment.ID(),
			Text: comment.Text(),
		}
	}
	if ev.OldStatus() != nil {
		payload.OldStatus = ev.OldStatus().String()
		payload.NewStatus = ev.NewStatus().String()
		payload.OldResolution = ev.OldResolution().String()
		payload.NewResolution = ev.NewResolution().String()
	}
	return payload
}

// BuildTrackerPayload snapshots a tracker for tracker_update and
// tracker_delete deliveries.
func BuildTrackerPayload(tr *tracker.Tracker) webhook.TrackerPayload {
	return webhook.TrackerPayload{
		ID:          tr.ID(),
		Owner:       webhook.UserRef{ID: tr.OwnerID()},
		Name:        tr.Name(),
		Description: tr.Description(),
		Created:     tr.CreatedAt(),
		Updated:     tr.UpdatedAt(),
	}
}
