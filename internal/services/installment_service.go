package services

import (
	"context"
	"fmt"
	"time"

	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/monazzem/amlak-api/internal/statemachine"
)

type InstallmentService struct {
	repo            repository.InstallmentRepository
	contractRepo    repository.ContractRepository
	notificationSvc *NotificationService
	emailSvc        *EmailService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

func NewInstallmentService(
	repo repository.InstallmentRepository,
	contractRepo repository.ContractRepository,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *InstallmentService {
	return &InstallmentService{
		repo:            repo,
		contractRepo:    contractRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

func (s *InstallmentService) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InstallmentService) FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	return s.repo.FindByContract(ctx, contractID)
}

func (s *InstallmentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *InstallmentService) GetMonthlyStats(ctx context.Context) (*repository.InstallmentStats, error) {
	return s.repo.GetMonthlyStats(ctx)
}

// MarkPaid settles a pending installment. Marking an already-paid
// installment again is a no-op, not an error: the caller may safely retry.
func (s *InstallmentService) MarkPaid(ctx context.Context, id uint, actorID uint) (*models.Installment, error) {
	installment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if installment.IsPaid() {
		return installment, nil
	}

	ifsm := statemachine.NewInstallmentFSM(installment)
	if err := ifsm.MarkPaid(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	now := time.Now()
	installment.PaidAt = &now

	if err := s.repo.Update(ctx, installment); err != nil {
		return nil, err
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Installment paid",
			fmt.Sprintf("Installment due %s on contract %s was marked paid (%.2f)",
				installment.DueDate.Format(models.DateLayout), installment.Contract.ContractNo, installment.Amount),
			models.NotificationTypeInstallmentPaid)
	})

	s.auditSvc.Log(ctx, actorID, models.AuditActionMarkPaid, "Installment", id,
		fmt.Sprintf("Installment due %s marked paid, amount %.2f",
			installment.DueDate.Format(models.DateLayout), installment.Amount), "", "")

	return installment, nil
}

// FindOverdue lists pending installments whose due date has passed
func (s *InstallmentService) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	return s.repo.FindOverdue(ctx)
}

// ScanOverdue finds overdue installments that have not been flagged
// recently, notifies the admins and emails the tenants. Run periodically
// from the scheduler.
func (s *InstallmentService) ScanOverdue(ctx context.Context) error {
	installments, err := s.repo.FindOverdueForReminder(ctx)
	if err != nil {
		return err
	}
	if len(installments) == 0 {
		return nil
	}

	var reminded []uint
	for i := range installments {
		inst := &installments[i]

		title := "Overdue installment"
		message := fmt.Sprintf("Installment of %.2f on contract %s was due %s",
			inst.Amount, inst.Contract.ContractNo, inst.DueDate.Format(models.DateLayout))
		if err := s.notificationSvc.NotifyAdmins(ctx, title, message, models.NotificationTypeInstallmentOverdue); err != nil {
			continue
		}

		if err := s.emailSvc.SendOverdueReminder(ctx, inst); err != nil {
			// Notification landed, email is best-effort
			_ = err
		}

		reminded = append(reminded, inst.ID)
	}

	return s.repo.MarkOverdueReminderSent(ctx, reminded)
}
