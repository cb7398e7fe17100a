package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecentProduct struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminDashboardStats struct {
	TotalProducts    int              `json:"total_products"`
	ProductsByType   map[string]int64 `json:"products_by_type"`
	ProductsByStatus map[string]int64 `json:"products_by_status"`
	TotalAdmins      int              `json:"total_admins"`
	ActiveAdmins     int              `json:"active_admins"`
	RecentProducts   []RecentProduct  `json:"recent_products"`
}
