package models

type TrackerModel struct {
	ID                    uint   `gorm:"primaryKey"`
	OwnerID               uint   `gorm:"not null;index;uniqueIndex:idx_tracker_owner_name"`
	Name                  string `gorm:"size:256;not null;uniqueIndex:idx_tracker_owner_name"`
	Description           string `gorm:"type:text"`
	DefaultAnonymousPerms uint32 `gorm:"not null"`
	DefaultUserPerms      uint32 `gorm:"not null"`
	DefaultSubmitterPerms uint32 `gorm:"not null"`
	NextTicketID          uint   `gorm:"not null;default:1"`
	CreatedAt             int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt             int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TrackerModel) TableName() string {
	return "trackers"
}

type UserAccessModel struct {
	ID          uint   `gorm:"primaryKey"`
	TrackerID   uint   `gorm:"not null;uniqueIndex:idx_access_tracker_user"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_access_tracker_user;index"`
	Permissions uint32 `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (UserAccessModel) TableName() string {
	return "tracker_user_access"
}

type LabelModel struct {
	ID              uint   `gorm:"primaryKey"`
	TrackerID       uint   `gorm:"not null;uniqueIndex:idx_label_tracker_name"`
	Name            string `gorm:"size:256;not null;uniqueIndex:idx_label_tracker_name"`
	Color           string `gorm:"size:9;not null"`
	BackgroundColor string `gorm:"size:9;not null"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null"`
}

func (LabelModel) TableName() string {
	return "labels"
}
