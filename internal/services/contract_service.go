package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
)

type ContractService struct {
	repo            repository.ContractRepository
	propertyRepo    repository.PropertyRepository
	tenantRepo      repository.TenantRepository
	installmentRepo repository.InstallmentRepository
	notificationSvc *NotificationService
	emailSvc        *EmailService
	auditSvc        *AuditService
	worker          *jobs.Worker
	schedule        *ScheduleService
}

func NewContractService(
	repo repository.ContractRepository,
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	installmentRepo repository.InstallmentRepository,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *ContractService {
	return &ContractService{
		repo:            repo,
		propertyRepo:    propertyRepo,
		tenantRepo:      tenantRepo,
		installmentRepo: installmentRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		schedule:        NewScheduleService(),
	}
}

// FindByID gets a contract by ID
func (s *ContractService) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByIDWithDetails gets a contract by ID with property, tenant and
// installments preloaded
func (s *ContractService) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *ContractService) List(ctx context.Context, query *repository.ContractQuery) ([]models.Contract, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ContractService) GetStats(ctx context.Context) (*repository.ContractStats, error) {
	return s.repo.GetStats(ctx)
}

// Create validates and persists a contract, then generates and bulk-inserts
// its installment schedule. A contract whose schedule insert fails is kept
// with schedule_status = incomplete and the error is surfaced as
// ErrScheduleIncomplete so the caller can repair it via RegenerateSchedule.
func (s *ContractService) Create(ctx context.Context, contract *models.Contract, actorID uint) error {
	if contract.Step() == 0 {
		return ErrInvalidFrequency
	}
	if contract.RentAmount <= 0 {
		return ErrInvalidRent
	}
	duration := models.DurationMonths(contract.StartDate, contract.EndDate)
	if duration <= 0 {
		return ErrInvalidPeriod
	}
	contract.DurationMonths = duration

	// Verify the property exists and is not already rented out
	property, err := s.propertyRepo.FindByID(ctx, contract.PropertyID)
	if err != nil {
		return fmt.Errorf("property not found: %w", err)
	}
	if !property.IsAvailable() {
		return ErrPropertyUnavailable
	}

	// Verify the tenant exists
	tenant, err := s.tenantRepo.FindByID(ctx, contract.TenantID)
	if err != nil {
		return fmt.Errorf("tenant not found: %w", err)
	}

	if contract.GUID == "" {
		contract.GUID = uuid.NewString()
	}
	contract.ScheduleStatus = models.ScheduleStatusComplete

	// Generate the schedule up front: a contract with invalid scheduling
	// inputs is rejected before anything is persisted
	installments, err := s.schedule.GenerateSchedule(ctx, contract)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, contract); err != nil {
		return err
	}

	// Re-stamp the contract ID now that it is assigned
	for i := range installments {
		installments[i].ContractID = contract.ID
	}

	if err := s.installmentRepo.BulkCreate(ctx, installments); err != nil {
		// Contract exists without its schedule: mark it and surface the
		// state instead of hiding the partial failure
		s.repo.UpdateScheduleStatus(ctx, contract.ID, models.ScheduleStatusIncomplete)
		contract.ScheduleStatus = models.ScheduleStatusIncomplete

		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.notificationSvc.NotifyAdmins(ctx,
				"Incomplete installment schedule",
				fmt.Sprintf("Contract %s was created but its installment schedule could not be saved", contract.ContractNo),
				models.NotificationTypeScheduleIncomplete)
		})

		return fmt.Errorf("%w: %v", ErrScheduleIncomplete, err)
	}

	// Mark the property as rented
	s.propertyRepo.UpdateStatus(ctx, property.ID, models.PropertyStatusRented)

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"New rental contract",
			fmt.Sprintf("Contract %s signed with %s for property %s", contract.ContractNo, tenant.Name, property.Code),
			models.NotificationTypeContractCreated)
	})

	s.auditSvc.Log(ctx, actorID, models.AuditActionCreate, "Contract", contract.ID,
		fmt.Sprintf("Contract %s created for property %s, tenant %s, rent %.2f %s",
			contract.ContractNo, property.Code, tenant.Name, contract.RentAmount, contract.PayFrequency), "", "")

	return nil
}

// RegenerateSchedule rebuilds the installment set of a contract whose bulk
// insert previously failed. The generator is deterministic, so the repaired
// schedule is the one the contract should have had all along. Regeneration
// is refused once any installment has been paid.
func (s *ContractService) RegenerateSchedule(ctx context.Context, id uint, actorID uint) (*models.Contract, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.installmentRepo.FindByContract(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].IsPaid() {
			return nil, fmt.Errorf("%w: schedule has paid installments", ErrInvalidState)
		}
	}

	installments, err := s.schedule.GenerateSchedule(ctx, contract)
	if err != nil {
		return nil, err
	}

	if err := s.installmentRepo.DeleteByContract(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to clear previous schedule: %w", err)
	}

	if err := s.installmentRepo.BulkCreate(ctx, installments); err != nil {
		s.repo.UpdateScheduleStatus(ctx, id, models.ScheduleStatusIncomplete)
		contract.ScheduleStatus = models.ScheduleStatusIncomplete
		return contract, fmt.Errorf("%w: %v", ErrScheduleIncomplete, err)
	}

	if err := s.repo.UpdateScheduleStatus(ctx, id, models.ScheduleStatusComplete); err != nil {
		return nil, err
	}
	contract.ScheduleStatus = models.ScheduleStatusComplete

	s.auditSvc.Log(ctx, actorID, models.AuditActionRegenerate, "Contract", id,
		fmt.Sprintf("Installment schedule regenerated for contract %s (%d installments)", contract.ContractNo, len(installments)), "", "")

	return contract, nil
}

// Delete removes a contract and its installments. Installments go first: if
// their deletion fails the contract is left untouched, so the system never
// holds installments pointing at a missing contract.
func (s *ContractService) Delete(ctx context.Context, id uint, actorID uint) error {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.installmentRepo.DeleteByContract(ctx, id); err != nil {
		return fmt.Errorf("failed to delete installments, contract kept: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Release the property unless another current contract still holds it
	if _, err := s.repo.FindActiveByProperty(ctx, contract.PropertyID); err != nil {
		s.propertyRepo.UpdateStatus(ctx, contract.PropertyID, models.PropertyStatusVacant)
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Contract deleted",
			fmt.Sprintf("Contract %s and its installments were removed", contract.ContractNo),
			models.NotificationTypeContractDeleted)
	})

	s.auditSvc.Log(ctx, actorID, models.AuditActionDelete, "Contract", id,
		fmt.Sprintf("Contract %s deleted with its installment schedule", contract.ContractNo), "", "")

	return nil
}
