package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DraftOrderNumber is the placeholder shown before the backend assigns
// a real order number at submission.
const DraftOrderNumber = "ORD-XXXXXXXX"

// DefaultTaxPercent is the tax percentage a fresh draft starts with.
const DefaultTaxPercent = 12.0

// OrderDraft is an order under construction. It lives only in transient
// session state until submission; on successful submission it is
// replaced by a fresh empty draft. All money is integer cents so the
// add/remove round-trip restores totals exactly.
type OrderDraft struct {
	ID             uuid.UUID   `json:"id"`
	CustomerName   string      `json:"customer_name"`
	CustomerMobile string      `json:"customer_mobile"`
	OrderNumber    string      `json:"order_number"`
	OrderDate      string      `json:"order_date"`
	Items          []DraftItem `json:"items"`
	SubTotal       int64       `json:"sub_total"`
	Tax            int64       `json:"tax"`
	TaxPercent     float64     `json:"tax_percent"`
	Total          int64       `json:"total"`
	Entry          DraftEntry  `json:"entry"`
}

// DraftItem is one line of a draft order, carrying a denormalized copy
// of the product fields taken at the moment the item was added.
type DraftItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UnitPrice  int64     `json:"unit_price"`
	Quantity   float64   `json:"quantity"`
	TotalPrice int64     `json:"total_price"`
}

// DraftEntry is the line-item entry sub-form: a candidate item being
// filled in before it is added to the draft.
type DraftEntry struct {
	ProductID  *uuid.UUID `json:"product_id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	UnitPrice  int64      `json:"unit_price"`
	Quantity   float64    `json:"quantity"`
	TotalPrice int64      `json:"total_price"`
}

// NewOrderDraft creates an empty draft dated today.
func NewOrderDraft() *OrderDraft {
	return &OrderDraft{
		ID:          uuid.New(),
		OrderNumber: DraftOrderNumber,
		OrderDate:   time.Now().Format(OrderDateLayout),
		Items:       []DraftItem{},
		TaxPercent:  DefaultTaxPercent,
	}
}

// DecimalToCents converts a decimal amount to integer cents.
func DecimalToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ItemTotal computes a line total in cents from a unit price in cents
// and a decimal quantity, rounded once to the nearest cent.
func ItemTotal(unitPrice int64, quantity float64) int64 {
	return int64(math.Round(float64(unitPrice) * quantity))
}

// TaxAmount computes the tax in cents on a subtotal in cents.
func TaxAmount(subTotal int64, taxPercent float64) int64 {
	return int64(math.Round(float64(subTotal) * taxPercent / 100))
}

// recompute re-derives tax and total from the current subtotal.
// Invariant after every mutation: tax = subtotal*taxPercent/100,
// total = subtotal + tax.
func (d *OrderDraft) recompute() {
	d.Tax = TaxAmount(d.SubTotal, d.TaxPercent)
	d.Total = d.SubTotal + d.Tax
}

// SelectProduct fills the entry sub-form from a catalog product and
// recomputes the entry total against the current quantity. Passing nil
// clears the sub-form.
func (d *OrderDraft) SelectProduct(p *Product) {
	if p == nil {
		d.ClearEntry()
		return
	}
	id := p.ID
	d.Entry.ProductID = &id
	d.Entry.Name = p.Name
	d.Entry.Type = p.Type
	d.Entry.UnitPrice = p.PricePerKg
	d.Entry.TotalPrice = ItemTotal(d.Entry.UnitPrice, d.Entry.Quantity)
}

// ClearEntry resets every entry sub-form field to its zero value.
func (d *OrderDraft) ClearEntry() {
	d.Entry = DraftEntry{}
}

// SetEntryQuantity updates the candidate quantity and recomputes the
// entry total.
func (d *OrderDraft) SetEntryQuantity(quantity float64) {
	d.Entry.Quantity = quantity
	d.Entry.TotalPrice = ItemTotal(d.Entry.UnitPrice, quantity)
}

// EntryComplete reports whether the entry sub-form holds a valid
// candidate item: a selected product and a positive quantity.
func (d *OrderDraft) EntryComplete() bool {
	return d.Entry.ProductID != nil && d.Entry.Quantity > 0
}

// AddEntryItem appends the entry sub-form as a line item, adds its
// total price to the subtotal, re-derives tax/total and resets the
// sub-form. The entry must be complete.
func (d *OrderDraft) AddEntryItem() error {
	if d.Entry.ProductID == nil {
		return ErrNoProductSelected
	}
	if d.Entry.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}

	d.Items = append(d.Items, DraftItem{
		ProductID:  *d.Entry.ProductID,
		Name:       d.Entry.Name,
		Type:       d.Entry.Type,
		UnitPrice:  d.Entry.UnitPrice,
		Quantity:   d.Entry.Quantity,
		TotalPrice: d.Entry.TotalPrice,
	})
	d.SubTotal += d.Entry.TotalPrice
	d.recompute()
	d.ClearEntry()
	return nil
}

// RemoveItem deletes the line item at the given position, reverses its
// contribution to the subtotal and re-derives tax/total. Remaining
// items keep their relative order.
func (d *OrderDraft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return ErrItemIndexOutOfRange
	}

	d.SubTotal -= d.Items[index].TotalPrice
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	d.recompute()
	return nil
}

// SetTaxPercent stores the new percentage and eagerly re-derives
// tax/total from the current subtotal, so the invariant holds without
// waiting for the next item mutation.
func (d *OrderDraft) SetTaxPercent(percent float64) error {
	if percent < 0 {
		return ErrNegativeTaxPercent
	}
	d.TaxPercent = percent
	d.recompute()
	return nil
}

// Reset returns the draft to an initial empty state, keeping its
// session identity.
func (d *OrderDraft) Reset() {
	id := d.ID
	fresh := NewOrderDraft()
	fresh.ID = id
	*d = *fresh
}

// Clone returns a deep copy of the draft, safe to hand to readers
// while the session keeps mutating.
func (d *OrderDraft) Clone() *OrderDraft {
	cp := *d
	cp.Items = make([]DraftItem, len(d.Items))
	copy(cp.Items, d.Items)
	if d.Entry.ProductID != nil {
		id := *d.Entry.ProductID
		cp.Entry.ProductID = &id
	}
	return &cp
}
