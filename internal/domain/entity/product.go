package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog entry. The catalog is read-only from the
// order workflow's perspective; line items copy from it, never write to it.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Type       string         `gorm:"size:100" json:"type"`
	PricePerKg int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		PricePerKg float64 `json:"price_per_kg"`
	}{
		Alias:      Alias(p),
		PricePerKg: float64(p.PricePerKg) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPricePerKgDecimal returns the unit price as a decimal (for display)
func (p *Product) GetPricePerKgDecimal() float64 {
	return float64(p.PricePerKg) / 100
}

// SetPricePerKgFromDecimal sets the unit price from a decimal value
func (p *Product) SetPricePerKgFromDecimal(price float64) {
	p.PricePerKg = DecimalToCents(price)
}
