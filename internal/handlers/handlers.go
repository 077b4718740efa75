package handlers

import (
	"github.com/monazzem/amlak-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Property     *PropertyHandler
	Tenant       *TenantHandler
	Contract     *ContractHandler
	Installment  *InstallmentHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Dashboard    *DashboardHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Property:     NewPropertyHandler(svcs.Property),
		Tenant:       NewTenantHandler(svcs.Tenant),
		Contract:     NewContractHandler(svcs.Contract),
		Installment:  NewInstallmentHandler(svcs.Installment),
		Notification: NewNotificationHandler(svcs.Notification),
		Report:       NewReportHandler(svcs.Report),
		Dashboard:    NewDashboardHandler(svcs.Dashboard),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}
