package mappers

import (
	"trackd/internal/domain/notification"
	"trackd/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.EventNotification) *models.EventNotificationModel
	ToDomain(model *models.EventNotificationModel) (*notification.EventNotification, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToModel(n *notification.EventNotification) *models.EventNotificationModel {
	return &models.EventNotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		EventID:   n.EventID(),
		ReadAt:    timePtrToMillis(n.ReadAt()),
		CreatedAt: n.CreatedAt().UnixMilli(),
	}
}

func (m *NotificationMapperImpl) ToDomain(model *models.EventNotificationModel) (*notification.EventNotification, error) {
	return notification.ReconstructEventNotification(
		model.ID,
		model.UserID,
		model.EventID,
		millisPtrToTime(model.ReadAt),
		millisToTime(model.CreatedAt),
	)
}
