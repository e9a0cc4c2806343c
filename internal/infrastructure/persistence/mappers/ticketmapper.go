package mappers

import (
	"trackd/internal/domain/ticket"
	vo "trackd/internal/domain/ticket/valueobjects"
	"trackd/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models. Label and participant ids live in their own tables
// and are loaded by the repository before calling ToDomain.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel, labelIDs, participantIDs []uint) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
	EventToModel(e *ticket.Event) *models.EventModel
	EventToDomain(model *models.EventModel) (*ticket.Event, error)
	SubscriptionToModel(s *ticket.Subscription) *models.SubscriptionModel
	SubscriptionToDomain(model *models.SubscriptionModel) (*ticket.Subscription, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		TrackerID:   t.TrackerID(),
		ScopedID:    t.ScopedID(),
		SubmitterID: t.SubmitterID(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Resolution:  t.Resolution().String(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, labelIDs, participantIDs []uint) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, err
	}
	resolution, err := vo.NewTicketResolution(model.Resolution)
	if err != nil {
		return nil, err
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TrackerID,
		model.ScopedID,
		model.SubmitterID,
		model.Title,
		model.Description,
		status,
		resolution,
		labelIDs,
		participantIDs,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		UserID:    c.UserID(),
		Text:      c.Text(),
		CreatedAt: c.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Text,
		millisToTime(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) EventToModel(e *ticket.Event) *models.EventModel {
	return &models.EventModel{
		ID:            e.ID(),
		TicketID:      e.TicketID(),
		EventType:     uint32(e.EventType()),
		UserID:        e.UserID(),
		CommentID:     e.CommentID(),
		OldStatus:     statusToString(e.OldStatus()),
		NewStatus:     statusToString(e.NewStatus()),
		OldResolution: resolutionToString(e.OldResolution()),
		NewResolution: resolutionToString(e.NewResolution()),
		LabelID:       e.LabelID(),
		ByUserID:      e.ByUserID(),
		CreatedAt:     e.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) EventToDomain(model *models.EventModel) (*ticket.Event, error) {
	oldStatus, err := stringToStatus(model.OldStatus)
	if err != nil {
		return nil, err
	}
	newStatus, err := stringToStatus(model.NewStatus)
	if err != nil {
		return nil, err
	}
	oldResolution, err := stringToResolution(model.OldResolution)
	if err != nil {
		return nil, err
	}
	newResolution, err := stringToResolution(model.NewResolution)
	if err != nil {
		return nil, err
	}

	return ticket.ReconstructEvent(
		model.ID,
		model.TicketID,
		ticket.EventType(model.EventType),
		model.UserID,
		model.CommentID,
		oldStatus,
		newStatus,
		oldResolution,
		newResolution,
		model.LabelID,
		model.ByUserID,
		millisToTime(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) SubscriptionToModel(s *ticket.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:        s.ID(),
		TrackerID: s.TrackerID(),
		TicketID:  s.TicketID(),
		UserID:    s.UserID(),
		CreatedAt: s.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) SubscriptionToDomain(model *models.SubscriptionModel) (*ticket.Subscription, error) {
	return ticket.ReconstructSubscription(
		model.ID,
		model.TrackerID,
		model.TicketID,
		model.UserID,
		millisToTime(model.CreatedAt),
	)
}

func statusToString(s *vo.TicketStatus) *string {
	if s == nil {
		return nil
	}
	str := s.String()
	return &str
}

func stringToStatus(s *string) (*vo.TicketStatus, error) {
	if s == nil {
		return nil, nil
	}
	status, err := vo.NewTicketStatus(*s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func resolutionToString(r *vo.TicketResolution) *string {
	if r == nil {
		return nil
	}
	str := r.String()
	return &str
}

func stringToResolution(s *string) (*vo.TicketResolution, error) {
	if s == nil {
		return nil, nil
	}
	resolution, err := vo.NewTicketResolution(*s)
	if err != nil {
		return nil, err
	}
	return &resolution, nil
}
