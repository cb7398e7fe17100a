package mapper

import (
	"coreclad-be/internal/entity"
	"coreclad-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:           a.Id,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         entity.AccountRole(a.Role),
		IsActive:     a.IsActive,
		LastLogin:    a.LastLogin,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		Id:           a.Id,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		IsActive:     a.IsActive,
		LastLogin:    a.LastLogin,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (m *AccountMapper) ToEntities(accounts []*model.Account) []*entity.Account {
	result := make([]*entity.Account, len(accounts))
	for i, a := range accounts {
		result[i] = m.ToEntity(a)
	}
	return result
}
