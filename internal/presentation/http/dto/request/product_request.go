package request

// ProductRequest represents a product create/update request. The price
// is a decimal amount per kilogram.
type ProductRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Type       string  `json:"type" binding:"omitempty,max=100"`
	PricePerKg float64 `json:"price_per_kg" binding:"min=0"`
}
