package models

type EventNotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_notification_user_event;index:idx_notification_user_read"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_notification_user_event"`
	ReadAt    *int64 `gorm:"index:idx_notification_user_read"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (EventNotificationModel) TableName() string {
	return "event_notifications"
}
