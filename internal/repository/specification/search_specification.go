package specification

import "gorm.io/gorm"

// ProductSearchQuery matches name or description, case-insensitive.
type ProductSearchQuery struct {
	Query string
}

func (s ProductSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	if s.Query == "" {
		return db
	}
	pattern := "%" + s.Query + "%"
	return db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
}
