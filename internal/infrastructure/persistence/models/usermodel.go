package models

// UserModel mirrors accounts owned by the external identity service. Rows
// are upserted from verified token claims, never created locally.
type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:256;not null;uniqueIndex"`
	Email     string `gorm:"size:256;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
