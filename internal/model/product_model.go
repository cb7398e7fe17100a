package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Type        string         `gorm:"type:varchar(50);not null;index"`
	Core        string         `gorm:"type:varchar(100)"`
	Thickness   int            `gorm:"not null;default:0"`
	Image       string         `gorm:"type:text"`
	Status      string         `gorm:"type:varchar(20);not null;default:'active';index"`
	Features    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
