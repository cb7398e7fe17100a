package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Core        string    `json:"core"`
	Thickness   int       `json:"thickness"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	Features    []string  `json:"features"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminProductResponse marks whether the row is in the caller's selection.
type AdminProductResponse struct {
	ProductResponse
	Selected bool `json:"selected"`
}

type ProductQuery struct {
	Search string `query:"q" validate:"max=100"`
	Type   string `query:"type" validate:"omitempty,oneof=all roof wall cold-room fire-rated doors accessories"`
}

type ProductCounts struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Selected int `json:"selected"`
}

type AdminProductListResponse struct {
	Items    []AdminProductResponse `json:"items"`
	Search   string                 `json:"search"`
	Type     string                 `json:"type"`
	Types    []string               `json:"types"`
	Selected []uuid.UUID            `json:"selected"`
	Counts   ProductCounts          `json:"counts"`
}

type SelectionResponse struct {
	Selected []uuid.UUID   `json:"selected"`
	Counts   ProductCounts `json:"counts"`
}

type BulkDeleteRequest struct {
	Confirm *bool `json:"confirm" validate:"required"`
}

type BulkDeleteResponse struct {
	Deleted []uuid.UUID   `json:"deleted"`
	Removed int           `json:"removed"`
	Counts  ProductCounts `json:"counts"`
}

// ProductFilter carries only the filters present on the request; nil leaves a filter as it is.
type ProductFilter struct {
	Search *string
	Type   *string
}
