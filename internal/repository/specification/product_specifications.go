package specification

import "gorm.io/gorm"

// AllTypes is the sentinel that disables the type filter.
const AllTypes = "all"

type ByProductType struct {
	Type string
}

func (s ByProductType) Apply(db *gorm.DB) *gorm.DB {
	if s.Type == "" || s.Type == AllTypes {
		return db
	}
	return db.Where("type = ?", s.Type)
}

type ByProductStatus struct {
	Status string
}

func (s ByProductStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
