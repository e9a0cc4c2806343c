package tracker

import (
	"fmt"
	"strings"
)

// AccessMask is the bitwise union of capabilities granted to an actor
// against a tracker or ticket.
type AccessMask uint32

const (
	AccessNone    AccessMask = 0
	AccessBrowse  AccessMask = 1
	AccessSubmit  AccessMask = 2
	AccessComment AccessMask = 4
	AccessEdit    AccessMask = 8
	AccessTriage  AccessMask = 16

	AccessAll = AccessBrowse | AccessSubmit | AccessComment | AccessEdit | AccessTriage
)

var accessNames = []struct {
	flag AccessMask
	name string
}{
	{AccessBrowse, "browse"},
	{AccessSubmit, "submit"},
	{AccessComment, "comment"},
	{AccessEdit, "edit"},
	{AccessTriage, "triage"},
}

// Union combines independently granted capabilities.
func (m AccessMask) Union(o AccessMask) AccessMask {
	return m | o
}

// Contains reports whether every capability in required is granted.
// Multi-capability actions union their required bits before this check so a
// request is authorized atomically or not at all.
func (m AccessMask) Contains(required AccessMask) bool {
	return m&required == required
}

func (m AccessMask) String() string {
	if m == AccessNone {
		return "none"
	}
	parts := make([]string, 0, len(accessNames))
	for _, an := range accessNames {
		if m&an.flag != 0 {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}

// Names returns the granted capability names, for API responses.
func (m AccessMask) Names() []string {
	names := make([]string, 0, len(accessNames))
	for _, an := range accessNames {
		if m&an.flag != 0 {
			names = append(names, an.name)
		}
	}
	return names
}

// AccessMaskFromNames builds a mask from capability names.
func AccessMaskFromNames(names []string) (AccessMask, error) {
	var mask AccessMask
	for _, name := range names {
		found := false
		for _, an := range accessNames {
			if an.name == name {
				mask |= an.flag
				found = true
				break
			}
		}
		if !found {
			return AccessNone, fmt.Errorf("unknown capability: %s", name)
		}
	}
	return mask, nil
}

// Actor is the authenticated (or anonymous) identity a request acts as.
type Actor struct {
	id            uint
	authenticated bool
}

func AnonymousActor() Actor {
	return Actor{}
}

func UserActor(id uint) Actor {
	return Actor{id: id, authenticated: true}
}

func (a Actor) ID() uint {
	return a.id
}

func (a Actor) IsAuthenticated() bool {
	return a.authenticated
}

// Is reports whether the actor is the authenticated user with the given id.
func (a Actor) Is(userID uint) bool {
	return a.authenticated && a.id == userID
}
