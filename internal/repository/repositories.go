package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Property     PropertyRepository
	Tenant       TenantRepository
	Contract     ContractRepository
	Installment  InstallmentRepository
	Notification NotificationRepository
	RefreshToken RefreshTokenRepository
	Audit        AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Property:     NewPropertyRepository(db),
		Tenant:       NewTenantRepository(db),
		Contract:     NewContractRepository(db),
		Installment:  NewInstallmentRepository(db),
		Notification: NewNotificationRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
