package services

import (
	"context"

	"github.com/monazzem/amlak-api/internal/repository"
)

// DashboardService aggregates counters from the other repositories into the
// figures the dashboard shows.
type DashboardService struct {
	propertyRepo    repository.PropertyRepository
	tenantRepo      repository.TenantRepository
	contractRepo    repository.ContractRepository
	installmentRepo repository.InstallmentRepository
}

func NewDashboardService(
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	contractRepo repository.ContractRepository,
	installmentRepo repository.InstallmentRepository,
) *DashboardService {
	return &DashboardService{
		propertyRepo:    propertyRepo,
		tenantRepo:      tenantRepo,
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
	}
}

type DashboardSummary struct {
	Properties   map[string]int64             `json:"properties"`
	Tenants      int64                        `json:"tenants"`
	Contracts    *repository.ContractStats    `json:"contracts"`
	Installments *repository.InstallmentStats `json:"installments"`
}

func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	properties, err := s.propertyRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	contracts, err := s.contractRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	installments, err := s.installmentRepo.GetMonthlyStats(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Properties:   properties,
		Tenants:      tenants,
		Contracts:    contracts,
		Installments: installments,
	}, nil
}

// GetMonthlyRevenue returns the collected and expected amounts for each month
// of the given year.
func (s *DashboardService) GetMonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	return s.installmentRepo.GetMonthlyRevenue(ctx, year)
}
