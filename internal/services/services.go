package services

import (
	"github.com/monazzem/amlak-api/internal/config"
	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Property     *PropertyService
	Tenant       *TenantService
	Contract     *ContractService
	Installment  *InstallmentService
	Notification *NotificationService
	Report       *ReportService
	Dashboard    *DashboardService
	Audit        *AuditService
	Email        *EmailService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	emailSvc := NewEmailService(cfg)
	auditSvc := NewAuditService(repos.Audit)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, emailSvc, auditSvc),
		Property:     NewPropertyService(repos.Property, auditSvc),
		Tenant:       NewTenantService(repos.Tenant, auditSvc),
		Contract:     NewContractService(repos.Contract, repos.Property, repos.Tenant, repos.Installment, notificationSvc, emailSvc, auditSvc, worker),
		Installment:  NewInstallmentService(repos.Installment, repos.Contract, notificationSvc, emailSvc, auditSvc, worker),
		Notification: notificationSvc,
		Report:       NewReportService(repos.Installment, repos.Contract),
		Dashboard:    NewDashboardService(repos.Property, repos.Tenant, repos.Contract, repos.Installment),
		Audit:        auditSvc,
		Email:        emailSvc,
		Job:          NewJobService(worker),
	}
}
