package tracker

import (
	"fmt"
	"regexp"
	"time"
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Label is a tracker-scoped tag applied to tickets. Names are unique within
// a tracker.
type Label struct {
	id              uint
	trackerID       uint
	name            string
	color           string
	backgroundColor string
	createdAt       time.Time
}

func NewLabel(trackerID uint, name, color, backgroundColor string) (*Label, error) {
	if trackerID == 0 {
		return nil, fmt.Errorf("tracker ID is required")
	}
	if len(name) == 0 || len(name) > 50 {
		return nil, fmt.Errorf("label name must be between 1 and 50 characters")
	}
	if color == "" {
		color = "#000000"
	}
	if backgroundColor == "" {
		backgroundColor = "#ffffff"
	}
	if !colorRe.MatchString(color) || !colorRe.MatchString(backgroundColor) {
		return nil, fmt.Errorf("colors must be in #rrggbb format")
	}

	return &Label{
		trackerID:       trackerID,
		name:            name,
		color:           color,
		backgroundColor: backgroundColor,
		createdAt:       time.Now(),
	}, nil
}

func ReconstructLabel(id, trackerID uint, name, color, backgroundColor string, createdAt time.Time) (*Label, error) {
	if id == 0 {
		return nil, fmt.Errorf("label ID cannot be zero")
	}
	return &Label{
		id:              id,
		trackerID:       trackerID,
		name:            name,
		color:           color,
		backgroundColor: backgroundColor,
		createdAt:       createdAt,
	}, nil
}

func (l *Label) ID() uint {
	return l.id
}

func (l *Label) TrackerID() uint {
	return l.trackerID
}

func (l *Label) Name() string {
	return l.name
}

func (l *Label) Color() string {
	return l.color
}

func (l *Label) BackgroundColor() string {
	return l.backgroundColor
}

func (l *Label) CreatedAt() time.Time {
	return l.createdAt
}

func (l *Label) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("label ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("label ID cannot be zero")
	}
	l.id = id
	return nil
}
