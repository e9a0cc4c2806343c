package migration

import (
	"fmt"

	"gorm.io/gorm"

	"trackd/internal/infrastructure/persistence/models"
)

// AutoMigrateModels returns every persisted model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.TrackerModel{},
		&models.UserAccessModel{},
		&models.LabelModel{},
		&models.TicketModel{},
		&models.TicketLabelModel{},
		&models.TicketParticipantModel{},
		&models.CommentModel{},
		&models.EventModel{},
		&models.SubscriptionModel{},
		&models.EventNotificationModel{},
		&models.WebhookSubscriptionModel{},
		&models.WebhookDeliveryModel{},
	}
}

// Run applies the schema for all registered models.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to run auto migration: %w", err)
	}
	return nil
}
