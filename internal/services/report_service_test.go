package services

import (
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Mock InstallmentRepository
type mockInstallmentRepository struct {
	repository.InstallmentRepository
	mockList             func(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error)
	mockFindByID         func(ctx context.Context, id uint) (*models.Installment, error)
	mockFindByContract   func(ctx context.Context, contractID uint) ([]models.Installment, error)
	mockBulkCreate       func(ctx context.Context, installments []models.Installment) error
	mockUpdate           func(ctx context.Context, installment *models.Installment) error
	mockDeleteByContract func(ctx context.Context, contractID uint) error
}

func (m *mockInstallmentRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

// Satisfy other interface methods with no-ops
func (m *mockInstallmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockInstallmentRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	if m.mockFindByContract != nil {
		return m.mockFindByContract(ctx, contractID)
	}
	return nil, nil
}
func (m *mockInstallmentRepository) Create(ctx context.Context, installment *models.Installment) error {
	return nil
}
func (m *mockInstallmentRepository) BulkCreate(ctx context.Context, installments []models.Installment) error {
	if m.mockBulkCreate != nil {
		return m.mockBulkCreate(ctx, installments)
	}
	return nil
}
func (m *mockInstallmentRepository) Update(ctx context.Context, installment *models.Installment) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, installment)
	}
	return nil
}
func (m *mockInstallmentRepository) Delete(ctx context.Context, id uint) error { return nil }
func (m *mockInstallmentRepository) DeleteByContract(ctx context.Context, contractID uint) error {
	if m.mockDeleteByContract != nil {
		return m.mockDeleteByContract(ctx, contractID)
	}
	return nil
}
func (m *mockInstallmentRepository) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	return nil, nil
}
func (m *mockInstallmentRepository) FindOverdueForReminder(ctx context.Context) ([]models.Installment, error) {
	return nil, nil
}
func (m *mockInstallmentRepository) MarkOverdueReminderSent(ctx context.Context, installmentIDs []uint) error {
	return nil
}
func (m *mockInstallmentRepository) GetMonthlyStats(ctx context.Context) (*repository.InstallmentStats, error) {
	return nil, nil
}
func (m *mockInstallmentRepository) GetMonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	return nil, nil
}

// Mock ContractRepository
type mockContractRepository struct {
	repository.ContractRepository
	mockFindByID             func(ctx context.Context, id uint) (*models.Contract, error)
	mockFindByIDWithDetails  func(ctx context.Context, id uint) (*models.Contract, error)
	mockFindActiveByProperty func(ctx context.Context, propertyID uint) (*models.Contract, error)
	mockCreate               func(ctx context.Context, contract *models.Contract) error
	mockUpdateScheduleStatus func(ctx context.Context, id uint, status string) error
	mockDelete               func(ctx context.Context, id uint) error
}

func (m *mockContractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}
func (m *mockContractRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	if m.mockFindByIDWithDetails != nil {
		return m.mockFindByIDWithDetails(ctx, id)
	}
	return nil, nil
}
func (m *mockContractRepository) FindByGUID(ctx context.Context, guid string) (*models.Contract, error) {
	return nil, nil
}
func (m *mockContractRepository) FindByProperty(ctx context.Context, propertyID uint) ([]models.Contract, error) {
	return nil, nil
}
func (m *mockContractRepository) FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error) {
	return nil, nil
}
func (m *mockContractRepository) FindActiveByProperty(ctx context.Context, propertyID uint) (*models.Contract, error) {
	if m.mockFindActiveByProperty != nil {
		return m.mockFindActiveByProperty(ctx, propertyID)
	}
	return nil, ErrNotFound
}
func (m *mockContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, contract)
	}
	return nil
}
func (m *mockContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return nil
}
func (m *mockContractRepository) UpdateScheduleStatus(ctx context.Context, id uint, status string) error {
	if m.mockUpdateScheduleStatus != nil {
		return m.mockUpdateScheduleStatus(ctx, id, status)
	}
	return nil
}
func (m *mockContractRepository) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}
func (m *mockContractRepository) List(ctx context.Context, query *repository.ContractQuery) ([]models.Contract, int64, error) {
	return nil, 0, nil
}
func (m *mockContractRepository) GetStats(ctx context.Context) (*repository.ContractStats, error) {
	return nil, nil
}
func (m *mockContractRepository) CountActive(ctx context.Context) (int64, error) { return 0, nil }

func TestGenerateInstallmentsCSV(t *testing.T) {
	mockRepo := &mockInstallmentRepository{}
	service := NewReportService(mockRepo, nil)

	dueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
		installments := []models.Installment{
			{
				ID:         1,
				ContractID: 101,
				DueDate:    dueDate,
				Amount:     1500.00,
				Status:     models.InstallmentStatusPaid,
				PaidAt:     &paidAt,
				Contract: models.Contract{
					ID:         101,
					ContractNo: "CT-2026-001",
					Property:   models.Property{ID: 50, Code: "APT-101"},
					Tenant:     models.Tenant{ID: 10, Name: "Sara Haddad"},
				},
			},
			{
				ID:         2,
				ContractID: 101,
				DueDate:    dueDate.AddDate(0, 3, 0),
				Amount:     1500.00,
				Status:     models.InstallmentStatusPending,
				Contract: models.Contract{
					ID:         101,
					ContractNo: "CT-2026-001",
					Property:   models.Property{ID: 50, Code: "APT-101"},
					Tenant:     models.Tenant{ID: 10, Name: "Sara Haddad"},
				},
			},
		}
		return installments, int64(len(installments)), nil
	}

	buf, filename, err := service.GenerateInstallmentsCSV(context.Background(), repository.NewListQuery())
	assert.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Contains(t, filename, "installments_")

	reader := csv.NewReader(buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	expectedHeader := []string{"ID", "Contract", "Property", "Tenant", "Due Date", "Amount", "Status", "Paid At"}
	assert.Equal(t, expectedHeader, records[0])

	row1 := records[1]
	assert.Equal(t, "1", row1[0])
	assert.Equal(t, "CT-2026-001", row1[1])
	assert.Equal(t, "APT-101", row1[2])
	assert.Equal(t, "Sara Haddad", row1[3])
	assert.Equal(t, "2026-03-01", row1[4])
	assert.Equal(t, "1500.00", row1[5])
	assert.Equal(t, models.InstallmentStatusPaid, row1[6])
	assert.Equal(t, "2026-03-02", row1[7])

	// Totals appear after a blank separator row
	last := records[len(records)-4:]
	assert.Equal(t, "Total", last[0][0])
	assert.Equal(t, "3000.00", last[0][1])
	assert.Equal(t, "Paid", last[1][0])
	assert.Equal(t, "1500.00", last[1][1])
	assert.Equal(t, "Remaining", last[2][0])
	assert.Equal(t, "1500.00", last[2][1])
}

func TestInstallmentsReport(t *testing.T) {
	mockRepo := &mockInstallmentRepository{}
	service := NewReportService(mockRepo, nil)

	dueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paidAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
		installments := []models.Installment{
			{
				ID:         1,
				ContractID: 101,
				DueDate:    dueDate,
				Amount:     1500.00,
				Status:     models.InstallmentStatusPaid,
				PaidAt:     &paidAt,
				Contract: models.Contract{
					ID:         101,
					ContractNo: "CT-2026-001",
					Property:   models.Property{ID: 50, Code: "APT-101"},
					Tenant:     models.Tenant{ID: 10, Name: "Sara Haddad"},
				},
			},
			{
				ID:         2,
				ContractID: 101,
				DueDate:    dueDate.AddDate(0, 3, 0),
				Amount:     1500.00,
				Status:     models.InstallmentStatusPending,
			},
		}
		return installments, int64(len(installments)), nil
	}

	report, err := service.InstallmentsReport(context.Background(), repository.NewListQuery())
	assert.NoError(t, err)
	assert.Len(t, report.Rows, 2)

	assert.Equal(t, "CT-2026-001", report.Rows[0].ContractNo)
	assert.Equal(t, "paid", report.Rows[0].Status)
	assert.Equal(t, "2026-03-02", report.Rows[0].PaidAt)
	assert.Equal(t, "-", report.Rows[1].ContractNo)

	assert.Equal(t, 3000.00, report.Totals.Total)
	assert.Equal(t, 1500.00, report.Totals.PaidTotal)
	assert.Equal(t, 1500.00, report.Totals.Remaining)
	assert.Equal(t, 1, report.Totals.PaidCount)
}

func TestGenerateInstallmentsCSV_MissingJoins(t *testing.T) {
	mockRepo := &mockInstallmentRepository{}
	service := NewReportService(mockRepo, nil)

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
		installments := []models.Installment{
			{
				ID:      7,
				DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Amount:  800,
				Status:  models.InstallmentStatusPending,
			},
		}
		return installments, 1, nil
	}

	buf, _, err := service.GenerateInstallmentsCSV(context.Background(), repository.NewListQuery())
	assert.NoError(t, err)

	reader := csv.NewReader(buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	assert.NoError(t, err)

	row := records[1]
	assert.Equal(t, "-", row[1])
	assert.Equal(t, "-", row[2])
	assert.Equal(t, "-", row[3])
	assert.Equal(t, "", row[7])
}

func TestGenerateInstallmentsXLSX(t *testing.T) {
	mockRepo := &mockInstallmentRepository{}
	service := NewReportService(mockRepo, nil)

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Installment, int64, error) {
		installments := []models.Installment{
			{
				ID:      1,
				DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Amount:  1200,
				Status:  models.InstallmentStatusPending,
				Contract: models.Contract{
					ID:         5,
					ContractNo: "CT-2026-005",
					Property:   models.Property{ID: 1, Code: "SHOP-03"},
					Tenant:     models.Tenant{ID: 2, Name: "Omar Khalil"},
				},
			},
		}
		return installments, 1, nil
	}

	data, filename, err := service.GenerateInstallmentsXLSX(context.Background(), repository.NewListQuery())
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, filename, ".xlsx")
}

func TestGenerateContractStatementPDF(t *testing.T) {
	mockRepo := &mockContractRepository{}
	service := NewReportService(nil, mockRepo)

	mockRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Contract, error) {
		paidAt := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
		return &models.Contract{
			ID:             101,
			ContractNo:     "CT-2026-001",
			StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			RentAmount:     1000,
			PayFrequency:   models.PayFrequencyQuarterly,
			ScheduleStatus: models.ScheduleStatusComplete,
			Property:       models.Property{ID: 50, Code: "APT-101"},
			Tenant:         models.Tenant{ID: 10, Name: "Sara Haddad"},
			Installments: []models.Installment{
				{ID: 1, DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 3000, Status: models.InstallmentStatusPaid, PaidAt: &paidAt},
				{ID: 2, DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 3000, Status: models.InstallmentStatusPending},
				{ID: 3, DueDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Amount: 3000, Status: models.InstallmentStatusPending},
				{ID: 4, DueDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Amount: 3000, Status: models.InstallmentStatusPending},
			},
		}, nil
	}

	data, filename, err := service.GenerateContractStatementPDF(context.Background(), 101)
	assert.NoError(t, err)
	assert.NotEmpty(t, data, "PDF output should not be empty")
	assert.Equal(t, "statement_CT-2026-001.pdf", filename)
}

func TestGenerateContractStatementPDF_NotFound(t *testing.T) {
	mockRepo := &mockContractRepository{}
	service := NewReportService(nil, mockRepo)

	mockRepo.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Contract, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, _, err := service.GenerateContractStatementPDF(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
