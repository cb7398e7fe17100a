package implementation

import (
	"context"
	"errors"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/mapper"
	"coreclad-be/internal/model"
	"coreclad-be/internal/repository/contract"
	"coreclad-be/internal/repository/scope"
	"coreclad-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var rows []*model.Product
	db := r.db.WithContext(ctx)
	if !hasOrdering(specs) {
		db = db.Scopes(scope.CatalogOrder)
	}
	query := r.applySpecifications(db, specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductRepositoryImpl) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := specification.ByIDs{IDs: ids}.Apply(r.db.WithContext(ctx)).Delete(&model.Product{})
	return result.RowsAffected, result.Error
}

func (r *ProductRepositoryImpl) CountByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "type")
}

func (r *ProductRepositoryImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

func (r *ProductRepositoryImpl) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(column + " AS key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Total
	}
	return result, nil
}

func hasOrdering(specs []specification.Specification) bool {
	for _, spec := range specs {
		if _, ok := spec.(specification.OrderBy); ok {
			return true
		}
	}
	return false
}
