package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/monazzem/amlak-api/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error)
	FindByGUID(ctx context.Context, guid string) (*models.Contract, error)
	FindByProperty(ctx context.Context, propertyID uint) ([]models.Contract, error)
	FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error)
	FindActiveByProperty(ctx context.Context, propertyID uint) (*models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, contract *models.Contract) error
	UpdateScheduleStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ContractQuery) ([]models.Contract, int64, error)
	GetStats(ctx context.Context) (*ContractStats, error)
	CountActive(ctx context.Context) (int64, error)
}

// ContractQuery extends ListQuery with contract-specific filters
type ContractQuery struct {
	*ListQuery
	PropertyID uint
	TenantID   uint
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	// Load contract + Property, Tenant via Joins (one query) and the
	// one-to-many Installments via Preload, ordered by due date.
	err := r.db.WithContext(ctx).
		Joins("Property").
		Joins("Tenant").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByGUID(ctx context.Context, guid string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Where("guid = ?", guid).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByProperty(ctx context.Context, propertyID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Preload("Tenant").
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Property").
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) FindActiveByProperty(ctx context.Context, propertyID uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND end_date >= CURRENT_DATE", propertyID).
		Order("end_date DESC").
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		if isDuplicateKeyError(err, "idx_contracts_contract_no") {
			return errors.New("a contract with this number already exists")
		}
		return err
	}
	return nil
}

func (r *contractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *contractRepository) UpdateScheduleStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("id = ?", id).
		Update("schedule_status", status).Error
}

func (r *contractRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Contract{}, id).Error
}

func (r *contractRepository) List(ctx context.Context, query *ContractQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if query.PropertyID > 0 {
		db = db.Where("contracts.property_id = ?", query.PropertyID)
	}
	if query.TenantID > 0 {
		db = db.Where("contracts.tenant_id = ?", query.TenantID)
	}

	if query.Filters != nil {
		if val, ok := query.Filters["schedule_status"]; ok && val != "" {
			db = db.Where("contracts.schedule_status = ?", val)
		}
		if val, ok := query.Filters["pay_frequency"]; ok && val != "" {
			db = db.Where("contracts.pay_frequency = ?", val)
		}
		// Date-range filters on the contract period
		if val, ok := query.Filters["start_date"]; ok && val != "" {
			db = db.Where("contracts.start_date >= ?", val)
		}
		if val, ok := query.Filters["end_date"]; ok && val != "" {
			db = db.Where("contracts.end_date <= ?", val)
		}
		if val, ok := query.Filters["active"]; ok && val == "true" {
			db = db.Where("contracts.end_date >= CURRENT_DATE")
		}
	}

	// Apply search (JOINs only for filtering; associations loaded via Preload below)
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN properties ON properties.id = contracts.property_id").
			Joins("LEFT JOIN tenants ON tenants.id = contracts.tenant_id").
			Where("contracts.contract_no ILIKE ? OR contracts.guid ILIKE ? OR properties.code ILIKE ? OR tenants.name ILIKE ? OR tenants.national_id ILIKE ?",
				search, search, search, search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("contracts.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Property").
		Preload("Tenant").
		Find(&contracts).Error
	if err != nil {
		return nil, 0, err
	}

	// Attach paid totals per contract via a single aggregation
	if len(contracts) > 0 {
		var contractIDs []uint
		for _, c := range contracts {
			contractIDs = append(contractIDs, c.ID)
		}

		type result struct {
			ContractID uint
			Total      float64
		}
		var results []result

		if err := r.db.WithContext(ctx).Model(&models.Installment{}).
			Select("contract_id, COALESCE(SUM(amount), 0) as total").
			Where("contract_id IN ? AND status = ?", contractIDs, models.InstallmentStatusPaid).
			Group("contract_id").
			Scan(&results).Error; err == nil {

			resultMap := make(map[uint]float64)
			for _, res := range results {
				resultMap[res.ContractID] = res.Total
			}

			for i := range contracts {
				if val, ok := resultMap[contracts[i].ID]; ok {
					contracts[i].TotalPaid = val
				}
			}
		}
	}

	return contracts, total, err
}

// ContractStats holds the count of contracts by schedule state
type ContractStats struct {
	Total      int64 `json:"total"`
	Complete   int64 `json:"complete"`
	Incomplete int64 `json:"incomplete"`
}

func (r *contractRepository) GetStats(ctx context.Context) (*ContractStats, error) {
	stats := &ContractStats{}

	rows, err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Select("schedule_status, count(*) as count").
		Group("schedule_status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var total int64
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		total += count
		switch status {
		case models.ScheduleStatusComplete:
			stats.Complete = count
		case models.ScheduleStatusIncomplete:
			stats.Incomplete = count
		}
	}
	stats.Total = total

	return stats, nil
}

func (r *contractRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contract{}).
		Where("end_date >= CURRENT_DATE").
		Count(&count).Error
	return count, err
}

// InstallmentStats holds monthly installment statistics
type InstallmentStats struct {
	PendingThisMonth   float64 `json:"pending_this_month"`
	CollectedThisMonth float64 `json:"collected_this_month"`
	TotalOverdue       float64 `json:"total_overdue"`
	OverdueCount       int64   `json:"overdue_count"`
}

// MonthlyRevenue holds collected and expected amounts for one calendar month
type MonthlyRevenue struct {
	Month     int     `json:"month"`
	Collected float64 `json:"collected"`
	Expected  float64 `json:"expected"`
}

// InstallmentRepository defines the interface for installment data access
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Installment, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error)
	Create(ctx context.Context, installment *models.Installment) error
	BulkCreate(ctx context.Context, installments []models.Installment) error
	Update(ctx context.Context, installment *models.Installment) error
	Delete(ctx context.Context, id uint) error
	DeleteByContract(ctx context.Context, contractID uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Installment, int64, error)
	FindOverdue(ctx context.Context) ([]models.Installment, error)
	FindOverdueForReminder(ctx context.Context) ([]models.Installment, error)
	MarkOverdueReminderSent(ctx context.Context, installmentIDs []uint) error
	GetMonthlyStats(ctx context.Context) (*InstallmentStats, error)
	GetMonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	err := r.db.WithContext(ctx).
		Preload("Contract.Property").
		Preload("Contract.Tenant").
		First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *installmentRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) Create(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Create(installment).Error
}

// BulkCreate inserts a full schedule in a single transaction so a contract
// never ends up with a partial set of rows.
func (r *installmentRepository) BulkCreate(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(installments, 100).Error
	})
}

func (r *installmentRepository) Update(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

func (r *installmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Installment{}, id).Error
}

func (r *installmentRepository) DeleteByContract(ctx context.Context, contractID uint) error {
	return r.db.WithContext(ctx).Where("contract_id = ?", contractID).Delete(&models.Installment{}).Error
}

func (r *installmentRepository) List(ctx context.Context, query *ListQuery) ([]models.Installment, int64, error) {
	var installments []models.Installment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Installment{})

	// Apply status filter
	statusFilter := query.Filters["status"]
	if statusFilter != "" {
		if strings.Contains(statusFilter, ",") {
			statuses := strings.Split(statusFilter, ",")
			db = db.Where("installments.status IN ?", statuses)
		} else if statusFilter == models.DisplayStatusLate {
			// Virtual "late" status: pending and past due
			db = db.Where("installments.status = ? AND installments.due_date < CURRENT_DATE", models.InstallmentStatusPending)
		} else {
			db = db.Where("installments.status = ?", statusFilter)
		}
	}

	if val, ok := query.Filters["contract_id"]; ok && val != "" {
		db = db.Where("installments.contract_id = ?", val)
	}

	// Apply due-date range filters
	if val, ok := query.Filters["due_from"]; ok && val != "" {
		db = db.Where("installments.due_date >= ?", val)
	}
	if val, ok := query.Filters["due_to"]; ok && val != "" {
		db = db.Where("installments.due_date <= ?", val)
	}

	// Apply search filter across the joined contract, property and tenant
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("JOIN contracts ON contracts.id = installments.contract_id").
			Joins("LEFT JOIN properties ON properties.id = contracts.property_id").
			Joins("LEFT JOIN tenants ON tenants.id = contracts.tenant_id").
			Where("contracts.contract_no ILIKE ? OR properties.code ILIKE ? OR tenants.name ILIKE ?",
				search, search, search)
	}

	// Clone the session for count to avoid affecting the main query
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		field := query.SortBy
		switch field {
		case "due_date", "amount", "status", "created_at":
			field = "installments." + field
		}
		order := field
		if strings.ToLower(query.SortDir) == "desc" {
			order += " DESC"
		} else {
			order += " ASC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("installments.due_date ASC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Select("installments.*").
		Preload("Contract.Property").
		Preload("Contract.Tenant").
		Find(&installments).Error

	return installments, total, err
}

func (r *installmentRepository) FindOverdue(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("installments.status = ? AND installments.due_date < CURRENT_DATE", models.InstallmentStatusPending).
		Preload("Contract.Property").
		Preload("Contract.Tenant").
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

// FindOverdueForReminder returns overdue installments that have not had a
// reminder sent in the last 7 days, with the contract, property and tenant
// loaded for notification templates.
func (r *installmentRepository) FindOverdueForReminder(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("installments.status = ? AND installments.due_date < CURRENT_DATE", models.InstallmentStatusPending).
		Where("(installments.overdue_reminder_sent_at IS NULL OR installments.overdue_reminder_sent_at < CURRENT_TIMESTAMP - INTERVAL '7 days')").
		Preload("Contract.Property").
		Preload("Contract.Tenant").
		Order("installments.due_date ASC").
		Find(&installments).Error
	return installments, err
}

// MarkOverdueReminderSent sets overdue_reminder_sent_at to now for the given installment IDs.
func (r *installmentRepository) MarkOverdueReminderSent(ctx context.Context, installmentIDs []uint) error {
	if len(installmentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Installment{}).
		Where("id IN ?", installmentIDs).
		Update("overdue_reminder_sent_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *installmentRepository) GetMonthlyStats(ctx context.Context) (*InstallmentStats, error) {
	stats := &InstallmentStats{}

	var pendingThisMonth, collectedThisMonth, totalOverdue float64
	var overdueCount int64

	// 1. Pending installments due in the current month
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("installments.status = ? AND EXTRACT(MONTH FROM due_date) = EXTRACT(MONTH FROM CURRENT_DATE) AND EXTRACT(YEAR FROM due_date) = EXTRACT(YEAR FROM CURRENT_DATE)",
			models.InstallmentStatusPending).
		Scan(&pendingThisMonth).Error
	if err != nil {
		return nil, err
	}

	// 2. Collected installments in the current month
	err = r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("installments.status = ? AND EXTRACT(MONTH FROM paid_at) = EXTRACT(MONTH FROM CURRENT_DATE) AND EXTRACT(YEAR FROM paid_at) = EXTRACT(YEAR FROM CURRENT_DATE)",
			models.InstallmentStatusPaid).
		Scan(&collectedThisMonth).Error
	if err != nil {
		return nil, err
	}

	// 3. Total overdue
	err = r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("installments.status = ? AND due_date < CURRENT_DATE", models.InstallmentStatusPending).
		Scan(&totalOverdue).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("installments.status = ? AND due_date < CURRENT_DATE", models.InstallmentStatusPending).
		Count(&overdueCount).Error
	if err != nil {
		return nil, err
	}

	stats.PendingThisMonth = pendingThisMonth
	stats.CollectedThisMonth = collectedThisMonth
	stats.TotalOverdue = totalOverdue
	stats.OverdueCount = overdueCount

	return stats, nil
}

// GetMonthlyRevenue returns, for each month of the given year, the amount
// collected (paid installments by paid_at) and the amount expected
// (installments falling due in that month).
func (r *installmentRepository) GetMonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error) {
	revenue := make([]MonthlyRevenue, 12)
	for i := range revenue {
		revenue[i].Month = i + 1
	}

	type row struct {
		Month int
		Total float64
	}

	var collected []row
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("EXTRACT(MONTH FROM paid_at)::int as month, COALESCE(SUM(amount), 0) as total").
		Where("installments.status = ? AND EXTRACT(YEAR FROM paid_at) = ?", models.InstallmentStatusPaid, year).
		Group("month").
		Scan(&collected).Error
	if err != nil {
		return nil, err
	}
	for _, c := range collected {
		if c.Month >= 1 && c.Month <= 12 {
			revenue[c.Month-1].Collected = c.Total
		}
	}

	var expected []row
	err = r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("EXTRACT(MONTH FROM due_date)::int as month, COALESCE(SUM(amount), 0) as total").
		Where("EXTRACT(YEAR FROM due_date) = ?", year).
		Group("month").
		Scan(&expected).Error
	if err != nil {
		return nil, err
	}
	for _, e := range expected {
		if e.Month >= 1 && e.Month <= 12 {
			revenue[e.Month-1].Expected = e.Total
		}
	}

	return revenue, nil
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	FindByUser(ctx context.Context, userID uint, query *ListQuery) ([]models.Notification, int64, error)
	Create(ctx context.Context, notification *models.Notification) error
	Update(ctx context.Context, notification *models.Notification) error
	Delete(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uint, query *ListQuery) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	if status, ok := query.Filters["status"]; ok && status != "" {
		switch strings.ToLower(status) {
		case "unread":
			db = db.Where("read_at IS NULL")
		case "read":
			db = db.Where("read_at IS NOT NULL")
		}
	}

	db.Count(&total)
	db = db.Order("created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&notifications).Error
	return notifications, total, err
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Create(ctx context.Context, rt *models.RefreshToken) error
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Create(ctx context.Context, rt *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// AuditRepository defines the interface for audit log data access
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, query *ListQuery) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if query.Filters["action"] != "" {
		db = db.Where("action = ?", query.Filters["action"])
	}
	if query.Filters["entity"] != "" {
		db = db.Where("entity = ?", query.Filters["entity"])
	}
	if query.Filters["user_id"] != "" {
		db = db.Where("user_id = ?", query.Filters["user_id"])
	}

	db.Count(&total)
	db = db.Order("created_at DESC")

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("User").Find(&entries).Error
	return entries, total, err
}
