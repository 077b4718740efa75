package models

import (
	"time"
)

// Property represents a rentable property
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Type      string    `gorm:"not null" json:"type"`
	Location  *string   `json:"location"`
	Area      *float64  `gorm:"type:decimal" json:"area"`
	Status    string    `gorm:"default:vacant;index" json:"status"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Contracts []Contract `gorm:"foreignKey:PropertyID" json:"contracts,omitempty"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// Property status constants
const (
	PropertyStatusVacant      = "vacant"
	PropertyStatusRented      = "rented"
	PropertyStatusMaintenance = "maintenance"
)

// Property type constants
const (
	PropertyTypeVilla    = "villa"
	PropertyTypeLand     = "land"
	PropertyTypeWorkshop = "workshop"
	PropertyTypeOther    = "other"
)

// IsAvailable returns true if the property can be attached to a new contract
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusVacant
}

// PropertyResponse is the JSON response format for properties
type PropertyResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	Location  *string   `json:"location"`
	Area      *float64  `json:"area"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Property to PropertyResponse
func (p *Property) ToResponse() PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Code:      p.Code,
		Type:      p.Type,
		Location:  p.Location,
		Area:      p.Area,
		Status:    p.Status,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
