package request

// DraftCustomerRequest represents an edit to the draft header. Omitted
// fields stay unchanged.
type DraftCustomerRequest struct {
	CustomerName   *string  `json:"customer_name" binding:"omitempty,max=255"`
	CustomerMobile *string  `json:"customer_mobile" binding:"omitempty,max=50"`
	OrderDate      *string  `json:"order_date" binding:"omitempty,datetime=02-01-2006"`
	TaxPercent     *float64 `json:"tax_percent" binding:"omitempty,min=0"`
}

// DraftEntryRequest represents an edit to the line-item entry sub-form.
// An omitted product id keeps the current selection; an empty string
// clears it.
type DraftEntryRequest struct {
	ProductID *string  `json:"product_id" binding:"omitempty"`
	Quantity  *float64 `json:"quantity" binding:"omitempty,min=0"`
}
