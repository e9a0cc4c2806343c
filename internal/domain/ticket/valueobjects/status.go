package valueobjects

import "fmt"

// TicketStatus is the ticket lifecycle state. There is exactly one open
// state; every other state is resolved and carries a resolution reason.
type TicketStatus string

const (
	StatusOpen     TicketStatus = "open"
	StatusResolved TicketStatus = "resolved"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:     true,
	StatusResolved: true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
