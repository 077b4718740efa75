package services

import (
	"context"
	"fmt"

	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
)

// PropertyService handles property-related business logic
type PropertyService struct {
	repo     repository.PropertyRepository
	auditSvc *AuditService
}

func NewPropertyService(repo repository.PropertyRepository, auditSvc *AuditService) *PropertyService {
	return &PropertyService{repo: repo, auditSvc: auditSvc}
}

func (s *PropertyService) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) List(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *PropertyService) FindAll(ctx context.Context) ([]models.Property, error) {
	return s.repo.FindAll(ctx)
}

func (s *PropertyService) Create(ctx context.Context, property *models.Property, actorID uint) error {
	if property.Status == "" {
		property.Status = models.PropertyStatusVacant
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionCreate, "Property", property.ID,
		fmt.Sprintf("Property %s (%s) created", property.Code, property.Type), "", "")
}

func (s *PropertyService) Update(ctx context.Context, property *models.Property, actorID uint) error {
	if err := s.repo.Update(ctx, property); err != nil {
		return err
	}
	return s.auditSvc.Log(ctx, actorID, models.AuditActionUpdate, "Property", property.ID,
		fmt.Sprintf("Property %s updated", property.Code), "", "")
}

// Delete removes a property. Refused while any contract still references it.
func (s *PropertyService) Delete(ctx context.Context, id uint, actorID uint) error {
	property, err := s.repo.FindByID(ctx, id)
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
	return s.auditSvc.Log(ctx, actorID, models.AuditActionDelete, "Property", id,
		fmt.Sprintf("Property %s deleted", property.Code), "", "")
}
