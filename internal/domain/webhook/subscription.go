// Package webhook models third-party delivery targets and the durable
// outbox that feeds the delivery worker.
package webhook

import (
	"fmt"
	"net/url"
	"time"
)

// Scope is the kind of resource a subscription listens on.
type Scope string

const (
	ScopeTracker Scope = "tracker"
	ScopeTicket  Scope = "ticket"
	ScopeUser    Scope = "user"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeTracker, ScopeTicket, ScopeUser:
		return true
	}
	return false
}

// Event names form the versioned wire contract with third-party
// subscribers. EventCreate is the coarse category matched by any ticket
// activity event.
const (
	EventTicketCreate  = "ticket_create"
	EventEventCreate   = "event_create"
	EventTrackerUpdate = "tracker_update"
	EventTrackerDelete = "tracker_delete"
)

var validEventNames = map[string]bool{
	EventTicketCreate:  true,
	EventEventCreate:   true,
	EventTrackerUpdate: true,
	EventTrackerDelete: true,
}

func IsValidEventName(name string) bool {
	return validEventNames[name]
}

// Subscription registers a delivery target for specific event names at a
// given scope. A disabled subscription stops matching until re-enabled.
type Subscription struct {
	id        uint
	scope     Scope
	scopeID   uint
	userID    uint
	targetURL string
	events    []string
	active    bool
	createdAt time.Time
}

func NewSubscription(scope Scope, scopeID, userID uint, targetURL string, events []string) (*Subscription, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid webhook scope: %s", scope)
	}
	if scopeID == 0 {
		return nil, fmt.Errorf("scope ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	u, err := url.Parse(targetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("target URL must be a valid http or https URL")
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("at least one event name is required")
	}
	for _, name := range events {
		if !IsValidEventName(name) {
			return nil, fmt.Errorf("unknown event name: %s", name)
		}
	}

	return &Subscription{
		scope:     scope,
		scopeID:   scopeID,
		userID:    userID,
		targetURL: targetURL,
		events:    append([]string{}, events...),
		active:    true,
		createdAt: time.Now(),
	}, nil
}

func ReconstructSubscription(
	id uint,
	scope Scope,
	scopeID uint,
	userID uint,
	targetURL string,
	events []string,
	active bool,
	createdAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid webhook scope: %s", scope)
	}
	if events == nil {
		events = []string{}
	}
	return &Subscription{
		id:        id,
		scope:     scope,
		scopeID:   scopeID,
		userID:    userID,
		targetURL: targetURL,
		events:    events,
		active:    active,
		createdAt: createdAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) Scope() Scope {
	return s.scope
}

func (s *Subscription) ScopeID() uint {
	return s.scopeID
}

func (s *Subscription) UserID() uint {
	return s.userID
}

func (s *Subscription) TargetURL() string {
	return s.targetURL
}

func (s *Subscription) Events() []string {
	events := make([]string, len(s.events))
	copy(events, s.events)
	return events
}

func (s *Subscription) IsActive() bool {
	return s.active
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// Matches reports whether the subscription wants the named event.
func (s *Subscription) Matches(eventName string) bool {
	if !s.active {
		return false
	}
	for _, e := range s.events {
		if e == eventName {
			return true
		}
	}
	return false
}

// Disable turns the subscription off. Delivery exhaustion disables
// subscriptions rather than dropping deliveries silently forever.
func (s *Subscription) Disable() {
	s.active = false
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}
