package services

import (
	"context"
	"fmt"

	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
)

// TenantService handles tenant-related business logic
type TenantService struct {
	repo     repository.TenantRepository
	auditSvc *AuditService
}

func NewTenantService(repo repository.TenantRepository, auditSvc *AuditService) *TenantService {
	return &TenantService{repo: repo, auditSvc: auditSvc}
}

func (s *TenantService) FindByID(ctx context.Context, id uint) (*models.Tenant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TenantService) List(ctx context.Context, query *repository.ListQuery) ([]models.Tenant, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *TenantService) FindAll(ctx context.Context) ([]models.Tenant, error) {
	return s.repo.FindAll(ctx)
}

func (s *TenantService) Create(ctx context.Context, tenant *models.Tenant, actorID uint) error {
	if err := s.repo.Create(ctx, tenant); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionCreate, "Tenant", tenant.ID,
		fmt.Sprintf("Tenant %s (%s) created", tenant.Name, tenant.NationalID), "", "")
}

// Update modifies a tenant. Editing is refused while contracts reference the
// tenant, so the identity printed on a signed contract cannot drift.
func (s *TenantService) Update(ctx context.Context, tenant *models.Tenant, actorID uint) error {
	hasContracts, err := s.repo.HasContracts(ctx, tenant.ID)
	if err != nil {
		return err
	}
	if hasContracts {
		return ErrHasContracts
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionUpdate, "Tenant", tenant.ID,
		fmt.Sprintf("Tenant %s updated", tenant.Name), "", "")
}

func (s *TenantService) Delete(ctx context.Context, id uint, actorID uint) error {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasContracts, err := s.repo.HasContracts(ctx, id)
	if err != nil {
		return err
	}
	if hasContracts {
		return ErrHasContracts
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionDelete, "Tenant", id,
		fmt.Sprintf("Tenant %s deleted", tenant.Name), "", "")
}
