package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/monazzem/amlak-api/internal/jobs"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Mock PropertyRepository
type mockPropertyRepository struct {
	repository.PropertyRepository
	mockFindByID     func(ctx context.Context, id uint) (*models.Property, error)
	mockHasContracts func(ctx context.Context, propertyID uint) (bool, error)

	statusUpdates map[uint]string
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, ErrNotFound
}
func (m *mockPropertyRepository) FindByCode(ctx context.Context, code string) (*models.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	return nil
}
func (m *mockPropertyRepository) Update(ctx context.Context, property *models.Property) error {
	return nil
}
func (m *mockPropertyRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[uint]string)
	}
	m.statusUpdates[id] = status
	return nil
}
func (m *mockPropertyRepository) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockPropertyRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
	return nil, 0, nil
}
func (m *mockPropertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	return nil, nil
}
func (m *mockPropertyRepository) HasContracts(ctx context.Context, propertyID uint) (bool, error) {
	if m.mockHasContracts != nil {
		return m.mockHasContracts(ctx, propertyID)
	}
	return false, nil
}
func (m *mockPropertyRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

// Mock TenantRepository
type mockTenantRepository struct {
	repository.TenantRepository
	mockFindByID     func(ctx context.Context, id uint) (*models.Tenant, error)
	mockHasContracts func(ctx context.Context, tenantID uint) (bool, error)
}

func (m *mockTenantRepository) FindByID(ctx context.Context, id uint) (*models.Tenant, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, ErrNotFound
}
func (m *mockTenantRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.Tenant, error) {
	return nil, nil
}
func (m *mockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error { return nil }
func (m *mockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error { return nil }
func (m *mockTenantRepository) Delete(ctx context.Context, id uint) error               { return nil }
func (m *mockTenantRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Tenant, int64, error) {
	return nil, 0, nil
}
func (m *mockTenantRepository) FindAll(ctx context.Context) ([]models.Tenant, error) {
	return nil, nil
}
func (m *mockTenantRepository) HasContracts(ctx context.Context, tenantID uint) (bool, error) {
	if m.mockHasContracts != nil {
		return m.mockHasContracts(ctx, tenantID)
	}
	return false, nil
}
func (m *mockTenantRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

// Mock NotificationRepository
type mockNotificationRepository struct {
	repository.NotificationRepository
}

func (m *mockNotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	return nil, nil
}
func (m *mockNotificationRepository) FindByUser(ctx context.Context, userID uint, query *repository.ListQuery) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (m *mockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return nil
}
func (m *mockNotificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return nil
}
func (m *mockNotificationRepository) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return nil
}
func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

// Mock UserRepository
type mockUserRepository struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.mockFindByEmail != nil {
		return m.mockFindByEmail(ctx, email)
	}
	return nil, ErrNotFound
}
func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uint) error           { return nil }
func (m *mockUserRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (m *mockUserRepository) FindAdmins(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

// Mock AuditRepository
type mockAuditRepository struct {
	repository.AuditRepository
	entries []models.AuditLog
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	m.entries = append(m.entries, *entry)
	return nil
}
func (m *mockAuditRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

type contractServiceMocks struct {
	contracts    *mockContractRepository
	properties   *mockPropertyRepository
	tenants      *mockTenantRepository
	installments *mockInstallmentRepository
	audit        *mockAuditRepository
}

func newTestContractService() (*ContractService, *contractServiceMocks) {
	mocks := &contractServiceMocks{
		contracts:    &mockContractRepository{},
		properties:   &mockPropertyRepository{},
		tenants:      &mockTenantRepository{},
		installments: &mockInstallmentRepository{},
		audit:        &mockAuditRepository{},
	}

	notificationSvc := NewNotificationService(&mockNotificationRepository{}, &mockUserRepository{})
	auditSvc := NewAuditService(mocks.audit)
	worker := jobs.NewWorker(1)

	svc := NewContractService(
		mocks.contracts,
		mocks.properties,
		mocks.tenants,
		mocks.installments,
		notificationSvc,
		nil,
		auditSvc,
		worker,
	)
	return svc, mocks
}

func vacantProperty(id uint) *models.Property {
	return &models.Property{ID: id, Code: "APT-101", Status: models.PropertyStatusVacant}
}

func testContract() *models.Contract {
	return &models.Contract{
		ContractNo:   "CT-2026-001",
		PropertyID:   50,
		TenantID:     10,
		StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:   1000,
		PayFrequency: models.PayFrequencyQuarterly,
	}
}

func TestContractCreate(t *testing.T) {
	svc, mocks := newTestContractService()

	mocks.properties.mockFindByID = func(ctx context.Context, id uint) (*models.Property, error) {
		return vacantProperty(id), nil
	}
	mocks.tenants.mockFindByID = func(ctx context.Context, id uint) (*models.Tenant, error) {
		return &models.Tenant{ID: id, Name: "Sara Haddad"}, nil
	}

	var created []models.Installment
	mocks.contracts.mockCreate = func(ctx context.Context, contract *models.Contract) error {
		contract.ID = 101
		return nil
	}
	mocks.installments.mockBulkCreate = func(ctx context.Context, installments []models.Installment) error {
		created = installments
		return nil
	}

	contract := testContract()
	err := svc.Create(context.Background(), contract, 1)
	assert.NoError(t, err)

	assert.Equal(t, models.ScheduleStatusComplete, contract.ScheduleStatus)
	assert.NotEmpty(t, contract.GUID)
	assert.Equal(t, 12, contract.DurationMonths)

	// Quarterly over one year: four installments of rent * 3
	assert.Len(t, created, 4)
	for _, inst := range created {
		assert.Equal(t, uint(101), inst.ContractID)
		assert.Equal(t, 3000.0, inst.Amount)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
	}

	assert.Equal(t, models.PropertyStatusRented, mocks.properties.statusUpdates[50])
	assert.Len(t, mocks.audit.entries, 1)
	assert.Equal(t, models.AuditActionCreate, mocks.audit.entries[0].Action)
}

func TestContractCreate_ScheduleInsertFails(t *testing.T) {
	svc, mocks := newTestContractService()

	mocks.properties.mockFindByID = func(ctx context.Context, id uint) (*models.Property, error) {
		return vacantProperty(id), nil
	}
	mocks.tenants.mockFindByID = func(ctx context.Context, id uint) (*models.Tenant, error) {
		return &models.Tenant{ID: id, Name: "Sara Haddad"}, nil
	}
	mocks.contracts.mockCreate = func(ctx context.Context, contract *models.Contract) error {
		contract.ID = 101
		return nil
	}
	mocks.installments.mockBulkCreate = func(ctx context.Context, installments []models.Installment) error {
		return errors.New("insert failed")
	}

	var markedID uint
	var markedStatus string
	mocks.contracts.mockUpdateScheduleStatus = func(ctx context.Context, id uint, status string) error {
		markedID = id
		markedStatus = status
		return nil
	}

	contract := testContract()
	err := svc.Create(context.Background(), contract, 1)

	assert.ErrorIs(t, err, ErrScheduleIncomplete)
	assert.Equal(t, uint(101), markedID)
	assert.Equal(t, models.ScheduleStatusIncomplete, markedStatus)
	assert.Equal(t, models.ScheduleStatusIncomplete, contract.ScheduleStatus)

	// Property stays vacant until a complete contract holds it
	assert.Empty(t, mocks.properties.statusUpdates)
}

func TestContractCreate_Validation(t *testing.T) {
	svc, mocks := newTestContractService()
	mocks.properties.mockFindByID = func(ctx context.Context, id uint) (*models.Property, error) {
		return vacantProperty(id), nil
	}
	mocks.tenants.mockFindByID = func(ctx context.Context, id uint) (*models.Tenant, error) {
		return &models.Tenant{ID: id}, nil
	}

	tests := []struct {
		name    string
		mutate  func(c *models.Contract)
		wantErr error
	}{
		{"unknown frequency", func(c *models.Contract) { c.PayFrequency = "weekly" }, ErrInvalidFrequency},
		{"zero rent", func(c *models.Contract) { c.RentAmount = 0 }, ErrInvalidRent},
		{"end before start", func(c *models.Contract) { c.EndDate = c.StartDate.AddDate(-1, 0, 0) }, ErrInvalidPeriod},
		{"end equals start", func(c *models.Contract) { c.EndDate = c.StartDate }, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contract := testContract()
			tt.mutate(contract)
			err := svc.Create(context.Background(), contract, 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContractCreate_PropertyUnavailable(t *testing.T) {
	svc, mocks := newTestContractService()

	mocks.properties.mockFindByID = func(ctx context.Context, id uint) (*models.Property, error) {
		return &models.Property{ID: id, Code: "APT-101", Status: models.PropertyStatusRented}, nil
	}

	err := svc.Create(context.Background(), testContract(), 1)
	assert.ErrorIs(t, err, ErrPropertyUnavailable)
}

func TestRegenerateSchedule(t *testing.T) {
	svc, mocks := newTestContractService()

	contract := testContract()
	contract.ID = 101
	contract.ScheduleStatus = models.ScheduleStatusIncomplete
	mocks.contracts.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}

	var deleted bool
	mocks.installments.mockDeleteByContract = func(ctx context.Context, contractID uint) error {
		deleted = true
		return nil
	}
	var created []models.Installment
	mocks.installments.mockBulkCreate = func(ctx context.Context, installments []models.Installment) error {
		created = installments
		return nil
	}
	var markedStatus string
	mocks.contracts.mockUpdateScheduleStatus = func(ctx context.Context, id uint, status string) error {
		markedStatus = status
		return nil
	}

	result, err := svc.RegenerateSchedule(context.Background(), 101, 1)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, created, 4)
	assert.Equal(t, models.ScheduleStatusComplete, markedStatus)
	assert.Equal(t, models.ScheduleStatusComplete, result.ScheduleStatus)
}

func TestRegenerateSchedule_RefusesPaidInstallments(t *testing.T) {
	svc, mocks := newTestContractService()

	contract := testContract()
	contract.ID = 101
	mocks.contracts.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}

	mocks.installments.mockBulkCreate = func(ctx context.Context, installments []models.Installment) error {
		t.Fatal("schedule must not be rebuilt over paid installments")
		return nil
	}
	paidAt := time.Now()
	mocks.installments.mockFindByContract = func(ctx context.Context, contractID uint) ([]models.Installment, error) {
		return []models.Installment{
			{ID: 1, ContractID: 101, Status: models.InstallmentStatusPaid, PaidAt: &paidAt},
		}, nil
	}

	_, err := svc.RegenerateSchedule(context.Background(), 101, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestContractDelete(t *testing.T) {
	svc, mocks := newTestContractService()

	contract := testContract()
	contract.ID = 101
	mocks.contracts.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}
	mocks.contracts.mockFindActiveByProperty = func(ctx context.Context, propertyID uint) (*models.Contract, error) {
		return nil, ErrNotFound
	}

	var deletedInstallments, deletedContract bool
	mocks.installments.mockDeleteByContract = func(ctx context.Context, contractID uint) error {
		deletedInstallments = true
		return nil
	}
	mocks.contracts.mockDelete = func(ctx context.Context, id uint) error {
		deletedContract = true
		return nil
	}

	err := svc.Delete(context.Background(), 101, 1)
	assert.NoError(t, err)
	assert.True(t, deletedInstallments)
	assert.True(t, deletedContract)
	assert.Equal(t, models.PropertyStatusVacant, mocks.properties.statusUpdates[50])
}

func TestContractDelete_KeepsContractWhenInstallmentDeleteFails(t *testing.T) {
	svc, mocks := newTestContractService()

	contract := testContract()
	contract.ID = 101
	mocks.contracts.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}
	mocks.installments.mockDeleteByContract = func(ctx context.Context, contractID uint) error {
		return errors.New("db down")
	}
	mocks.contracts.mockDelete = func(ctx context.Context, id uint) error {
		t.Fatal("contract must not be deleted when its installments survive")
		return nil
	}

	err := svc.Delete(context.Background(), 101, 1)
	assert.Error(t, err)
}
