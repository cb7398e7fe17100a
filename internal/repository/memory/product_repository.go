package memory

import (
	"context"
	"fmt"
	"time"

	"coreclad-be/internal/entity"
	"coreclad-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if product.Id == uuid.Nil {
		product.Id = uuid.New()
	}
	if product.Status == "" {
		product.Status = entity.ProductStatusActive
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	r.store.products[product.Id] = *product
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.Id]; !ok {
		return fmt.Errorf("product %s not found", product.Id)
	}
	product.UpdatedAt = time.Now()
	r.store.products[product.Id] = *product
	return nil
}

func (r *ProductRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *ProductRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	q := splitSpecs(specs)
	var out []*entity.Product
	for _, p := range r.store.products {
		ok, err := matchProduct(p, q.filters)
		if err != nil {
			return nil, err
		}
		if ok {
			cp := p
			out = append(out, &cp)
		}
	}

	if q.order == nil {
		sortStable(out, func(a, b *entity.Product) bool {
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return a.Name < b.Name
		}, false)
	} else {
		field := q.order.Field
		sortStable(out, func(a, b *entity.Product) bool {
			switch field {
			case "name":
				return a.Name < b.Name
			case "created_at":
				return a.CreatedAt.Before(b.CreatedAt)
			case "thickness":
				return a.Thickness < b.Thickness
			default:
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		}, q.order.Desc)
	}

	return paginate(out, q.page), nil
}

func (r *ProductRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *ProductRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for _, id := range ids {
		if _, ok := r.store.products[id]; ok {
			delete(r.store.products, id)
			removed++
		}
	}
	return removed, nil
}

func (r *ProductRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	return r.countBy(func(p entity.Product) string { return string(p.Type) }), nil
}

func (r *ProductRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(func(p entity.Product) string { return string(p.Status) }), nil
}

func (r *ProductRepository) countBy(key func(entity.Product) string) map[string]int64 {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]int64)
	for _, p := range r.store.products {
		out[key(p)]++
	}
	return out
}

func matchProduct(p entity.Product, filters []specification.Specification) (bool, error) {
	for _, spec := range filters {
		switch s := spec.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false, nil
			}
		case specification.ByIDs:
			if !containsID(s.IDs, p.Id) {
				return false, nil
			}
		case specification.ProductSearchQuery:
			if s.Query != "" && !containsFold(p.Name, s.Query) && !containsFold(p.Description, s.Query) {
				return false, nil
			}
		case specification.ByProductType:
			if s.Type != "" && s.Type != specification.AllTypes && string(p.Type) != s.Type {
				return false, nil
			}
		case specification.ByProductStatus:
			if string(p.Status) != s.Status {
				return false, nil
			}
		default:
			return false, unsupported(spec)
		}
	}
	return true, nil
}
