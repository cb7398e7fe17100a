package dashboard

import (
	"context"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/specification"
	"coreclad-be/internal/repository/unitofwork"
)

const recentProductLimit = 5

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats collects catalog and admin account totals for the dashboard.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminDashboardStats, error) {
	products := uow.ProductRepository()
	accounts := uow.AccountRepository()

	totalProducts, err := products.Count(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := products.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := products.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalAdmins, err := accounts.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeAdmins, err := accounts.Count(ctx, specification.ActiveAccounts{})
	if err != nil {
		return nil, err
	}

	// Recent list is decoration; a failure here should not blank the dashboard
	recent := []dto.RecentProduct{}
	latest, err := products.FindAll(ctx,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: recentProductLimit},
	)
	if err != nil {
		a.logger.Warn("DASHBOARD", "Failed to load recent products", map[string]interface{}{"error": err.Error()})
	} else {
		for _, p := range latest {
			recent = append(recent, dto.RecentProduct{
				Id:        p.Id,
				Name:      p.Name,
				Type:      string(p.Type),
				Status:    string(p.Status),
				UpdatedAt: p.UpdatedAt,
			})
		}
	}

	return &dto.AdminDashboardStats{
		TotalProducts:    int(totalProducts),
		ProductsByType:   byType,
		ProductsByStatus: byStatus,
		TotalAdmins:      int(totalAdmins),
		ActiveAdmins:     int(activeAdmins),
		RecentProducts:   recent,
	}, nil
}
