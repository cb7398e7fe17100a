package specification

import (
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ActiveAccounts struct{}

func (s ActiveAccounts) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
