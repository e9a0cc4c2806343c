package models

import "gorm.io/datatypes"

type WebhookSubscriptionModel struct {
	ID        uint           `gorm:"primaryKey"`
	Scope     string         `gorm:"size:20;not null;index:idx_webhook_scope"`
	ScopeID   uint           `gorm:"not null;index:idx_webhook_scope"`
	UserID    uint           `gorm:"not null;index"`
	TargetURL string         `gorm:"size:2048;not null"`
	Events    datatypes.JSON `gorm:"not null"`
	Active    bool           `gorm:"not null;default:true"`
	CreatedAt int64          `gorm:"autoCreateTime:milli;not null"`
}

func (WebhookSubscriptionModel) TableName() string {
	return "webhook_subscriptions"
}

// WebhookDeliveryModel is the durable outbox. Rows keep their own payload
// snapshot, so they stay deliverable after the source rows are gone.
type WebhookDeliveryModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	SubscriptionID uint   `gorm:"not null;index"`
	EventName      string `gorm:"size:50;not null"`
	Payload        []byte `gorm:"type:blob;not null"`
	Attempts       int    `gorm:"not null;default:0"`
	Status         string `gorm:"size:20;not null;index:idx_delivery_due"`
	NextAttemptAt  int64  `gorm:"not null;index:idx_delivery_due"`
	LastError      string `gorm:"type:text"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (WebhookDeliveryModel) TableName() string {
	return "webhook_deliveries"
}
