package models

import (
	"time"
)

// Contract represents a rental contract binding a property to a tenant
type Contract struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	GUID           string    `gorm:"uniqueIndex" json:"guid"`
	ContractNo     string    `gorm:"column:contract_no;uniqueIndex;not null" json:"contract_no"`
	PropertyID     uint      `gorm:"not null;index" json:"property_id"`
	TenantID       uint      `gorm:"not null;index" json:"tenant_id"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	DurationMonths int       `gorm:"not null" json:"duration_months"`
	RentAmount     float64   `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	PayFrequency   string    `gorm:"not null" json:"pay_frequency"`
	ScheduleStatus string    `gorm:"default:complete;index" json:"schedule_status"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// TotalPaid is an aggregate computed at query time, not a column
	TotalPaid float64 `gorm:"-" json:"total_paid"`

	// Associations
	Property     Property      `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant       Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Installments []Installment `gorm:"foreignKey:ContractID" json:"installments,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Payment frequency constants
const (
	PayFrequencyMonthly   = "monthly"
	PayFrequencyQuarterly = "quarterly"
	PayFrequencyYearly    = "yearly"
)

// Schedule status constants. ScheduleStatusIncomplete marks a contract whose
// installment bulk-insert failed partway; the schedule can be regenerated.
const (
	ScheduleStatusComplete   = "complete"
	ScheduleStatusIncomplete = "incomplete"
)

// StepMonths returns the number of months between installments for a payment
// frequency, or 0 for an unknown frequency.
func StepMonths(frequency string) int {
	switch frequency {
	case PayFrequencyMonthly:
		return 1
	case PayFrequencyQuarterly:
		return 3
	case PayFrequencyYearly:
		return 12
	default:
		return 0
	}
}

// DurationMonths computes a contract term in whole months, ignoring
// day-of-month. Returns 0 when end is not after start.
func DurationMonths(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// Step returns the cadence step of this contract in months
func (c *Contract) Step() int {
	return StepMonths(c.PayFrequency)
}

// InstallmentAmount returns the amount billed per installment: the monthly
// rent scaled by the cadence length.
func (c *Contract) InstallmentAmount() float64 {
	return c.RentAmount * float64(c.Step())
}

// HasCompleteSchedule returns true when the generated installment set was
// fully persisted.
func (c *Contract) HasCompleteSchedule() bool {
	return c.ScheduleStatus == ScheduleStatusComplete
}

// ContractResponse is the JSON response format for contracts. Dates are
// rendered as YYYY-MM-DD strings.
type ContractResponse struct {
	ID             uint      `json:"id"`
	GUID           string    `json:"guid"`
	ContractNo     string    `json:"contract_no"`
	PropertyID     uint      `json:"property_id"`
	PropertyCode   string    `json:"property_code"`
	TenantID       uint      `json:"tenant_id"`
	TenantName     string    `json:"tenant_name"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	DurationMonths int       `json:"duration_months"`
	RentAmount     float64   `json:"rent_amount"`
	PayFrequency   string    `json:"pay_frequency"`
	ScheduleStatus string    `json:"schedule_status"`
	Notes          string    `json:"notes,omitempty"`
	TotalPaid      float64   `json:"total_paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Installments []InstallmentResponse `json:"installments,omitempty"`
	Ledger       *LedgerView           `json:"ledger,omitempty"`
}

// ToResponse converts Contract to ContractResponse. Missing joined records
// degrade to a placeholder, never an error.
func (c *Contract) ToResponse() ContractResponse {
	resp := ContractResponse{
		ID:             c.ID,
		GUID:           c.GUID,
		ContractNo:     c.ContractNo,
		PropertyID:     c.PropertyID,
		PropertyCode:   "-",
		TenantID:       c.TenantID,
		TenantName:     "-",
		StartDate:      c.StartDate.Format(DateLayout),
		EndDate:        c.EndDate.Format(DateLayout),
		DurationMonths: c.DurationMonths,
		RentAmount:     c.RentAmount,
		PayFrequency:   c.PayFrequency,
		ScheduleStatus: c.ScheduleStatus,
		Notes:          c.Notes,
		TotalPaid:      c.TotalPaid,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	if c.Property.ID != 0 {
		resp.PropertyCode = c.Property.Code
	}
	if c.Tenant.ID != 0 {
		resp.TenantName = c.Tenant.Name
	}

	if len(c.Installments) > 0 {
		for i := range c.Installments {
			resp.Installments = append(resp.Installments, c.Installments[i].ToResponse())
		}
		view := ProjectLedger(c.Installments, time.Now())
		resp.Ledger = &view
	}

	return resp
}
