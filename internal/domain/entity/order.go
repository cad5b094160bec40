package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDateLayout is the display format for order dates.
const OrderDateLayout = "02-01-2006"

// Order represents a persisted sales order
type Order struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber    string         `gorm:"size:100;unique;not null" json:"order_number"`
	OrderDate      time.Time      `gorm:"type:date;not null" json:"-"`
	CustomerName   string         `gorm:"size:255;not null" json:"customer_name"`
	CustomerMobile string         `gorm:"size:50" json:"customer_mobile"`
	SubTotal       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax            int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxPercent     float64        `gorm:"default:12" json:"tax_percent"`
	Total          int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		OrderDate string  `json:"order_date"`
		SubTotal  float64 `json:"sub_total"`
		Tax       float64 `json:"tax"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(o),
		OrderDate: o.OrderDate.Format(OrderDateLayout),
		SubTotal:  float64(o.SubTotal) / 100,
		Tax:       float64(o.Tax) / 100,
		Total:     float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (o *Order) GetSubTotalDecimal() float64 {
	return float64(o.SubTotal) / 100
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderItem represents a line item in an order. Product name, type and
// unit price are denormalized copies taken when the item was added.
type OrderItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Type       string         `gorm:"size:100" json:"type"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity   float64        `gorm:"not null" json:"quantity"`
	TotalPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(oi),
		UnitPrice:  float64(oi.UnitPrice) / 100,
		TotalPrice: float64(oi.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
