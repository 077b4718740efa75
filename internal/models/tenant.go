package models

import (
	"time"
)

// Tenant represents a renter identity record
type Tenant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Nationality *string   `json:"nationality"`
	IDType      *string   `gorm:"column:id_type" json:"id_type"`
	NationalID  string    `gorm:"uniqueIndex;not null" json:"national_id"`
	Phone       string    `gorm:"not null" json:"phone"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Contracts []Contract `gorm:"foreignKey:TenantID" json:"contracts,omitempty"`
}

// TableName specifies the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// TenantResponse is the JSON response format for tenants
type TenantResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Nationality *string   `json:"nationality"`
	IDType      *string   `json:"id_type"`
	NationalID  string    `json:"national_id"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email"`
	Address     *string   `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Tenant to TenantResponse
func (t *Tenant) ToResponse() TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Nationality: t.Nationality,
		IDType:      t.IDType,
		NationalID:  t.NationalID,
		Phone:       t.Phone,
		Email:       t.Email,
		Address:     t.Address,
		CreatedAt:   t.CreatedAt,
	}
}
