package mappers

import (
	"trackd/internal/domain/tracker"
	"trackd/internal/infrastructure/persistence/models"
)

// TrackerMapper handles the conversion between tracker domain entities and
// persistence models.
type TrackerMapper interface {
	ToModel(t *tracker.Tracker) *models.TrackerModel
	ToDomain(model *models.TrackerModel) (*tracker.Tracker, error)
	UserAccessToModel(ua *tracker.UserAccess) *models.UserAccessModel
	UserAccessToDomain(model *models.UserAccessModel) (*tracker.UserAccess, error)
	LabelToModel(l *tracker.Label) *models.LabelModel
	LabelToDomain(model *models.LabelModel) (*tracker.Label, error)
}

type TrackerMapperImpl struct{}

func NewTrackerMapper() TrackerMapper {
	return &TrackerMapperImpl{}
}

func (m *TrackerMapperImpl) ToModel(t *tracker.Tracker) *models.TrackerModel {
	return &models.TrackerModel{
		ID:                    t.ID(),
		OwnerID:               t.OwnerID(),
		Name:                  t.Name(),
		Description:           t.Description(),
		DefaultAnonymousPerms: uint32(t.DefaultAnonymousPerms()),
		DefaultUserPerms:      uint32(t.DefaultUserPerms()),
		DefaultSubmitterPerms: uint32(t.DefaultSubmitterPerms()),
		NextTicketID:          t.NextTicketID(),
		CreatedAt:             t.CreatedAt().UnixMilli(),
		UpdatedAt:             t.UpdatedAt().UnixMilli(),
	}
}

func (m *TrackerMapperImpl) ToDomain(model *models.TrackerModel) (*tracker.Tracker, error) {
	return tracker.ReconstructTracker(
		model.ID,
		model.OwnerID,
		model.Name,
		model.Description,
		tracker.AccessMask(model.DefaultAnonymousPerms),
		tracker.AccessMask(model.DefaultUserPerms),
		tracker.AccessMask(model.DefaultSubmitterPerms),
		model.NextTicketID,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *TrackerMapperImpl) UserAccessToModel(ua *tracker.UserAccess) *models.UserAccessModel {
	return &models.UserAccessModel{
		ID:          ua.ID(),
		TrackerID:   ua.TrackerID(),
		UserID:      ua.UserID(),
		Permissions: uint32(ua.Permissions()),
		CreatedAt:   ua.CreatedAt().UnixMilli(),
	}
}

func (m *TrackerMapperImpl) UserAccessToDomain(model *models.UserAccessModel) (*tracker.UserAccess, error) {
	return tracker.ReconstructUserAccess(
		model.ID,
		model.TrackerID,
		model.UserID,
		tracker.AccessMask(model.Permissions),
		millisToTime(model.CreatedAt),
	)
}

func (m *TrackerMapperImpl) LabelToModel(l *tracker.Label) *models.LabelModel {
	return &models.LabelModel{
		ID:              l.ID(),
		TrackerID:       l.TrackerID(),
		Name:            l.Name(),
		Color:           l.Color(),
		BackgroundColor: l.BackgroundColor(),
		CreatedAt:       l.CreatedAt().UnixMilli(),
	}
}

func (m *TrackerMapperImpl) LabelToDomain(model *models.LabelModel) (*tracker.Label, error) {
	return tracker.ReconstructLabel(
		model.ID,
		model.TrackerID,
		model.Name,
		model.Color,
		model.BackgroundColor,
		millisToTime(model.CreatedAt),
	)
}
