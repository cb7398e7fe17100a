package mapper

import (
	"encoding/json"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/model"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	// Malformed feature JSON degrades to an empty list rather than failing the read
	var features []string
	if len(p.Features) > 0 {
		if err := json.Unmarshal(p.Features, &features); err != nil {
			features = nil
		}
	}

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Type:        entity.ProductType(p.Type),
		Core:        p.Core,
		Thickness:   p.Thickness,
		Image:       p.Image,
		Status:      entity.ProductStatus(p.Status),
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	features := datatypes.JSON("[]")
	if len(p.Features) > 0 {
		if b, err := json.Marshal(p.Features); err == nil {
			features = datatypes.JSON(b)
		}
	}

	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Core:        p.Core,
		Thickness:   p.Thickness,
		Image:       p.Image,
		Status:      string(p.Status),
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	result := make([]*entity.Product, len(products))
	for i, p := range products {
		result[i] = m.ToEntity(p)
	}
	return result
}
