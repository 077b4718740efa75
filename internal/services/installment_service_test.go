package services

import (
	"context"
	"testing"
	"time"

	"github.com/monazzem/amlak-api/internal/config"
	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestInstallmentService() (*InstallmentService, *mockInstallmentRepository, *mockAuditRepository) {
	instRepo := &mockInstallmentRepository{}
	auditRepo := &mockAuditRepository{}

	notificationSvc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})
	emailSvc := NewEmailService(&config.Config{AppURL: "https://amlak.app"})
	auditSvc := NewAuditService(auditRepo)
	worker := jobs.NewWorker(1)

	svc := NewInstallmentService(instRepo, &mockContractRepository{}, notificationSvc, emailSvc, auditSvc, worker)
	return svc, instRepo, auditRepo
}

func TestMarkPaid(t *testing.T) {
	svc, instRepo, auditRepo := newTestInstallmentService()

	installment := &models.Installment{
		ID:         1,
		ContractID: 101,
		DueDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:     1500,
		Status:     models.InstallmentStatusPending,
		Contract:   models.Contract{ID: 101, ContractNo: "CT-2026-001"},
	}
	instRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Installment, error) {
		return installment, nil
	}

	var updated *models.Installment
	instRepo.mockUpdate = func(ctx context.Context, inst *models.Installment) error {
		updated = inst
		return nil
	}

	result, err := svc.MarkPaid(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, result.Status)
	assert.NotNil(t, result.PaidAt)
	assert.NotNil(t, updated)

	assert.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditActionMarkPaid, auditRepo.entries[0].Action)
}

func TestMarkPaid_AlreadyPaidIsNoOp(t *testing.T) {
	svc, instRepo, auditRepo := newTestInstallmentService()

	paidAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	installment := &models.Installment{
		ID:     1,
		Status: models.InstallmentStatusPaid,
		PaidAt: &paidAt,
	}
	instRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Installment, error) {
		return installment, nil
	}
	instRepo.mockUpdate = func(ctx context.Context, inst *models.Installment) error {
		t.Fatal("an already-paid installment must not be written again")
		return nil
	}

	result, err := svc.MarkPaid(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusPaid, result.Status)
	assert.Equal(t, paidAt, *result.PaidAt, "original payment timestamp is preserved")
	assert.Empty(t, auditRepo.entries)
}

func TestMarkPaid_NotFound(t *testing.T) {
	svc, instRepo, _ := newTestInstallmentService()

	instRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Installment, error) {
		return nil, ErrNotFound
	}

	_, err := svc.MarkPaid(context.Background(), 999, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
