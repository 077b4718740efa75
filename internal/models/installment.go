package models

import (
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// Installment represents one scheduled rent payment obligation
type Installment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ContractID uint       `gorm:"not null;index" json:"contract_id"`
	DueDate    time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	Amount     float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status     string     `gorm:"default:pending;not null;index" json:"status"`
	PaidAt     *time.Time `json:"paid_at"`

	// OverdueReminderSentAt tracks when the last overdue reminder was sent
	OverdueReminderSentAt *time.Time `json:"overdue_reminder_sent_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Contract Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants. "late" is never stored: it is derived from
// the due date of a pending installment at read time.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
)

// DisplayStatusLate is the virtual status reported for overdue pending
// installments in list filters and responses.
const DisplayStatusLate = "late"

// IsPaid returns true if the installment has been settled
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// MayMarkPaid returns true if the installment can transition to paid
func (i *Installment) MayMarkPaid() bool {
	return i.Status == InstallmentStatusPending
}

// IsLate reports whether the installment is an unpaid obligation whose due
// date falls strictly before asOf's calendar date. A paid installment is
// never late, regardless of when it was paid.
func (i *Installment) IsLate(asOf time.Time) bool {
	if i.Status != InstallmentStatusPending {
		return false
	}
	due := DateOnly(i.DueDate)
	return due.Before(DateOnly(asOf))
}

// DisplayStatus returns the stored status, substituting the virtual "late"
// state for overdue pending installments.
func (i *Installment) DisplayStatus(asOf time.Time) string {
	if i.IsLate(asOf) {
		return DisplayStatusLate
	}
	return i.Status
}

// DateOnly strips the time-of-day component, leaving midnight UTC. Only the
// calendar date of an installment carries meaning.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InstallmentResponse is the JSON response format for installments. Due
// dates are rendered as YYYY-MM-DD strings.
type InstallmentResponse struct {
	ID         uint       `json:"id"`
	ContractID uint       `json:"contract_id"`
	DueDate    string     `json:"due_date"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	Late       bool       `json:"late"`
	PaidAt     *time.Time `json:"paid_at"`

	// Contract details, when preloaded
	ContractNo   string `json:"contract_no,omitempty"`
	PropertyCode string `json:"property_code,omitempty"`
	TenantName   string `json:"tenant_name,omitempty"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	resp := InstallmentResponse{
		ID:         i.ID,
		ContractID: i.ContractID,
		DueDate:    i.DueDate.Format(DateLayout),
		Amount:     i.Amount,
		Status:     i.Status,
		Late:       i.IsLate(time.Now()),
		PaidAt:     i.PaidAt,
	}

	// Joined records degrade to a placeholder, never an error
	if i.Contract.ID != 0 {
		resp.ContractNo = i.Contract.ContractNo
		resp.PropertyCode = "-"
		resp.TenantName = "-"
		if i.Contract.Property.ID != 0 {
			resp.PropertyCode = i.Contract.Property.Code
		}
		if i.Contract.Tenant.ID != 0 {
			resp.TenantName = i.Contract.Tenant.Name
		}
	}

	return resp
}
