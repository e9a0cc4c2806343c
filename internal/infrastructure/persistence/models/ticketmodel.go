package models

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	TrackerID   uint   `gorm:"not null;uniqueIndex:idx_ticket_tracker_scoped"`
	ScopedID    uint   `gorm:"not null;uniqueIndex:idx_ticket_tracker_scoped"`
	SubmitterID uint   `gorm:"not null;index"`
	Title       string `gorm:"size:2048;not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"size:20;not null;index"`
	Resolution  string `gorm:"size:20;not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// TicketLabelModel records a label applied to a ticket and who applied it.
type TicketLabelModel struct {
	ID        uint  `gorm:"primaryKey"`
	TicketID  uint  `gorm:"not null;uniqueIndex:idx_ticket_label"`
	LabelID   uint  `gorm:"not null;uniqueIndex:idx_ticket_label;index"`
	UserID    uint  `gorm:"not null"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (TicketLabelModel) TableName() string {
	return "ticket_labels"
}

// TicketParticipantModel tracks the users who have touched a ticket.
type TicketParticipantModel struct {
	ID       uint `gorm:"primaryKey"`
	TicketID uint `gorm:"not null;uniqueIndex:idx_ticket_participant"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_ticket_participant"`
}

func (TicketParticipantModel) TableName() string {
	return "ticket_participants"
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

// EventModel rows are append-only: no update or delete path exists for them.
type EventModel struct {
	ID            uint    `gorm:"primaryKey"`
	TicketID      uint    `gorm:"not null;index:idx_event_ticket"`
	EventType     uint32  `gorm:"not null"`
	UserID        uint    `gorm:"not null;index"`
	CommentID     *uint   `gorm:"index"`
	OldStatus     *string `gorm:"size:20"`
	NewStatus     *string `gorm:"size:20"`
	OldResolution *string `gorm:"size:20"`
	NewResolution *string `gorm:"size:20"`
	LabelID       *uint
	ByUserID      *uint
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
}

func (EventModel) TableName() string {
	return "events"
}

type SubscriptionModel struct {
	ID        uint  `gorm:"primaryKey"`
	TrackerID *uint `gorm:"uniqueIndex:idx_sub_tracker_user"`
	TicketID  *uint `gorm:"uniqueIndex:idx_sub_ticket_user"`
	UserID    uint  `gorm:"not null;uniqueIndex:idx_sub_tracker_user;uniqueIndex:idx_sub_ticket_user;index"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (SubscriptionModel) TableName() string {
	return "ticket_subscriptions"
}
