package valueobjects

import "fmt"

// TicketResolution is the reason a ticket was resolved. It is
// ResolutionUnresolved while the ticket is open; reopening clears it back
// to that value.
type TicketResolution string

const (
	ResolutionUnresolved  TicketResolution = "unresolved"
	ResolutionFixed       TicketResolution = "fixed"
	ResolutionImplemented TicketResolution = "implemented"
	ResolutionWontFix     TicketResolution = "wont_fix"
	ResolutionInvalid     TicketResolution = "invalid"
	ResolutionDuplicate   TicketResolution = "duplicate"
	ResolutionNotOurBug   TicketResolution = "not_our_bug"
)

var validResolutions = map[TicketResolution]bool{
	ResolutionUnresolved:  true,
	ResolutionFixed:       true,
	ResolutionImplemented: true,
	ResolutionWontFix:     true,
	ResolutionInvalid:     true,
	ResolutionDuplicate:   true,
	ResolutionNotOurBug:   true,
}

func (tr TicketResolution) String() string {
	return string(tr)
}

func (tr TicketResolution) IsValid() bool {
	return validResolutions[tr]
}

// IsReason reports whether the value is an actual resolution reason, i.e.
// acceptable when resolving a ticket.
func (tr TicketResolution) IsReason() bool {
	return tr.IsValid() && tr != ResolutionUnresolved
}

func NewTicketResolution(s string) (TicketResolution, error) {
	tr := TicketResolution(s)
	if !tr.IsValid() {
		return "", fmt.Errorf("invalid ticket resolution: %s", s)
	}
	return tr, nil
}
