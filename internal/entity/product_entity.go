package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProductType string
type ProductStatus string

const (
	ProductTypeRoof        ProductType = "roof"
	ProductTypeWall        ProductType = "wall"
	ProductTypeColdRoom    ProductType = "cold-room"
	ProductTypeFireRated   ProductType = "fire-rated"
	ProductTypeDoors       ProductType = "doors"
	ProductTypeAccessories ProductType = "accessories"

	ProductStatusActive ProductStatus = "active"
	ProductStatusDraft  ProductStatus = "draft"
)

// ProductTypes lists the catalog categories in display order.
var ProductTypes = []ProductType{
	ProductTypeRoof,
	ProductTypeWall,
	ProductTypeColdRoom,
	ProductTypeFireRated,
	ProductTypeDoors,
	ProductTypeAccessories,
}

type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	Type        ProductType
	Core        string
	Thickness   int // mm
	Image       string
	Status      ProductStatus
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
