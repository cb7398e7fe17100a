package service

import (
	"context"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/logger"
	"coreclad-be/internal/repository/unitofwork"
	"coreclad-be/pkg/admin/dashboard"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	dashboard  *dashboard.Aggregator
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		dashboard:  dashboard.NewAggregator(logger),
		logger:     logger,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.dashboard.GetStats(ctx, uow)
}
