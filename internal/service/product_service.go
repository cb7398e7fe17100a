package service

import (
	"context"
	"errors"
	"fmt"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/entity"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/internal/repository/unitofwork"
	adminEvents "coreclad-be/pkg/admin/events"
	"coreclad-be/pkg/catalog"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

type IProductService interface {
	// Public catalog
	ListPublic(ctx context.Context, productType string) ([]dto.ProductResponse, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)

	// Admin product view
	AdminList(ctx context.Context, client *AdminClient, filter dto.ProductFilter) (*dto.AdminProductListResponse, error)
	ToggleSelect(ctx context.Context, client *AdminClient, id uuid.UUID) (*dto.SelectionResponse, error)
	ToggleSelectAll(ctx context.Context, client *AdminClient) (*dto.SelectionResponse, error)
	BulkDelete(ctx context.Context, client *AdminClient, confirm bool) (*dto.BulkDeleteResponse, error)
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	sync       ICatalogSyncService
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	sync ICatalogSyncService,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) IProductService {
	return &productService{
		uowFactory: uowFactory,
		sync:       sync,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *productService) ListPublic(ctx context.Context, productType string) ([]dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx,
		specification.ByProductStatus{Status: string(entity.ProductStatusActive)},
		specification.ByProductType{Type: productType},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

func (s *productService) GetPublic(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := uow.ProductRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByProductStatus{Status: string(entity.ProductStatusActive)},
	)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	res := toProductResponse(p)
	return &res, nil
}

// AdminList refreshes the client's snapshot from the store, applies any
// filters given on the request and renders the view.
func (s *productService) AdminList(ctx context.Context, client *AdminClient, filter dto.ProductFilter) (*dto.AdminProductListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	products, err := uow.ProductRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]entity.Product, len(products))
	for i, p := range products {
		snapshot[i] = *p
	}

	view := client.View
	view.Replace(snapshot)
	if filter.Search != nil {
		view.SetSearchTerm(*filter.Search)
	}
	if filter.Type != nil {
		view.SetTypeFilter(*filter.Type)
	}

	filtered := view.Filtered()
	items := make([]dto.AdminProductResponse, 0, len(filtered))
	for i := range filtered {
		items = append(items, dto.AdminProductResponse{
			ProductResponse: toProductResponse(&filtered[i]),
			Selected:        view.IsSelected(filtered[i].Id),
		})
	}

	return &dto.AdminProductListResponse{
		Items:    items,
		Search:   view.SearchTerm(),
		Type:     view.TypeFilter(),
		Types:    catalog.Types(),
		Selected: view.Selected(),
		Counts:   toCounts(view.Counts()),
	}, nil
}

func (s *productService) ToggleSelect(ctx context.Context, client *AdminClient, id uuid.UUID) (*dto.SelectionResponse, error) {
	if _, err := client.View.ToggleSelect(id); err != nil {
		return nil, err
	}
	return selectionResponse(client.View), nil
}

func (s *productService) ToggleSelectAll(ctx context.Context, client *AdminClient) (*dto.SelectionResponse, error) {
	client.View.ToggleSelectAll()
	return selectionResponse(client.View), nil
}

func (s *productService) BulkDelete(ctx context.Context, client *AdminClient, confirm bool) (*dto.BulkDeleteResponse, error) {
	actor, _ := client.Store.Identity()

	deleted, err := client.View.BulkDelete(ctx, catalog.Confirmed(confirm))
	if err != nil {
		return nil, err
	}

	s.logger.Info("CATALOG", "Products deleted", map[string]interface{}{
		"client_id":  client.ID,
		"account_id": actor.Id,
		"requested":  len(deleted.IDs),
		"removed":    deleted.Removed,
	})

	if err := s.sync.Announce(ctx, client.ID, deleted.IDs); err != nil {
		s.logger.Error("CATALOG", "Failed to announce deletion", map[string]interface{}{"error": err.Error()})
	}
	s.publisher.PublishProductsDeleted(context.WithoutCancel(ctx), actor, deleted.IDs, deleted.Removed)

	return &dto.BulkDeleteResponse{
		Deleted: deleted.IDs,
		Removed: deleted.Removed,
		Counts:  toCounts(client.View.Counts()),
	}, nil
}

// productRemover deletes catalog rows in one transaction.
type productRemover struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProductRemover(uowFactory unitofwork.RepositoryFactory) catalog.Remover {
	return &productRemover{uowFactory: uowFactory}
}

func (r *productRemover) RemoveProducts(ctx context.Context, ids []uuid.UUID) (int, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	removed, err := uow.ProductRepository().DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}
	return int(removed), nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		Core:        p.Core,
		Thickness:   p.Thickness,
		Image:       p.Image,
		Status:      string(p.Status),
		Features:    features,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCounts(c catalog.Counts) dto.ProductCounts {
	return dto.ProductCounts{
		Total:    c.Total,
		Filtered: c.Filtered,
		Selected: c.Selected,
	}
}

func selectionResponse(v *catalog.View) *dto.SelectionResponse {
	return &dto.SelectionResponse{
		Selected: v.Selected(),
		Counts:   toCounts(v.Counts()),
	}
}
