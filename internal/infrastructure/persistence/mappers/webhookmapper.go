package mappers

import (
	"encoding/json"
	"fmt"

	"trackd/internal/domain/webhook"
	"trackd/internal/infrastructure/persistence/models"
)

type WebhookMapper interface {
	SubscriptionToModel(s *webhook.Subscription) (*models.WebhookSubscriptionModel, error)
	SubscriptionToDomain(model *models.WebhookSubscriptionModel) (*webhook.Subscription, error)
	DeliveryToModel(d *webhook.Delivery) *models.WebhookDeliveryModel
	DeliveryToDomain(model *models.WebhookDeliveryModel) (*webhook.Delivery, error)
}

type WebhookMapperImpl struct{}

func NewWebhookMapper() WebhookMapper {
	return &WebhookMapperImpl{}
}

func (m *WebhookMapperImpl) SubscriptionToModel(s *webhook.Subscription) (*models.WebhookSubscriptionModel, error) {
	events, err := json.Marshal(s.Events())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook events: %w", err)
	}
	return &models.WebhookSubscriptionModel{
		ID:        s.ID(),
		Scope:     string(s.Scope()),
		ScopeID:   s.ScopeID(),
		UserID:    s.UserID(),
		TargetURL: s.TargetURL(),
		Events:    events,
		Active:    s.IsActive(),
		CreatedAt: s.CreatedAt().UnixMilli(),
	}, nil
}

func (m *WebhookMapperImpl) SubscriptionToDomain(model *models.WebhookSubscriptionModel) (*webhook.Subscription, error) {
	var events []string
	if len(model.Events) > 0 {
		if err := json.Unmarshal(model.Events, &events); err != nil {
			return nil, fmt.Errorf("failed to unmarshal webhook events (id=%d): %w", model.ID, err)
		}
	}
	return webhook.ReconstructSubscription(
		model.ID,
		webhook.Scope(model.Scope),
		model.ScopeID,
		model.UserID,
		model.TargetURL,
		events,
		model.Active,
		millisToTime(model.CreatedAt),
	)
}

func (m *WebhookMapperImpl) DeliveryToModel(d *webhook.Delivery) *models.WebhookDeliveryModel {
	return &models.WebhookDeliveryModel{
		ID:             d.ID(),
		SubscriptionID: d.SubscriptionID(),
		EventName:      d.EventName(),
		Payload:        d.Payload(),
		Attempts:       d.Attempts(),
		Status:         string(d.Status()),
		NextAttemptAt:  d.NextAttemptAt().UnixMilli(),
		LastError:      d.LastError(),
		CreatedAt:      d.CreatedAt().UnixMilli(),
		UpdatedAt:      d.UpdatedAt().UnixMilli(),
	}
}

func (m *WebhookMapperImpl) DeliveryToDomain(model *models.WebhookDeliveryModel) (*webhook.Delivery, error) {
	return webhook.ReconstructDelivery(
		model.ID,
		model.SubscriptionID,
		model.EventName,
		model.Payload,
		model.Attempts,
		webhook.DeliveryStatus(model.Status),
		millisToTime(model.NextAttemptAt),
		model.LastError,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
