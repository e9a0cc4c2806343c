package mappers

import (
	"trackd/internal/domain/user"
	"trackd/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt().UnixMilli(),
		UpdatedAt: u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
