package entity

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func product(name, ptype string, priceDecimal float64) *Product {
	return &Product{
		ID:         uuid.New(),
		Name:       name,
		Type:       ptype,
		PricePerKg: DecimalToCents(priceDecimal),
	}
}

func addItem(t *testing.T, d *OrderDraft, p *Product, qty float64) {
	t.Helper()
	d.SelectProduct(p)
	d.SetEntryQuantity(qty)
	require.NoError(t, d.AddEntryItem())
}

func requireInvariant(t *testing.T, d *OrderDraft) {
	t.Helper()
	var sum int64
	for _, item := range d.Items {
		sum += item.TotalPrice
	}
	require.Equal(t, sum, d.SubTotal, "subtotal must equal sum of item totals")

	wantTax := int64(math.Round(float64(d.SubTotal) * d.TaxPercent / 100))
	require.Equal(t, wantTax, d.Tax, "tax must equal subtotal*taxPercent/100")
	require.Equal(t, d.SubTotal+d.Tax, d.Total, "total must equal subtotal+tax")
}

func TestNewOrderDraftInitialState(t *testing.T) {
	d := NewOrderDraft()

	require.Equal(t, DraftOrderNumber, d.OrderNumber)
	require.Equal(t, DefaultTaxPercent, d.TaxPercent)
	require.Empty(t, d.Items)
	require.Zero(t, d.SubTotal)
	require.Zero(t, d.Tax)
	require.Zero(t, d.Total)
}

// Scenario from the order workflow: 12% draft; add 10.00 x 2, then
// 5.00 x 1, then remove the first item.
func TestAddRemoveScenario(t *testing.T) {
	d := NewOrderDraft()

	addItem(t, d, product("Chicken Breast", "Poultry", 10), 2)
	require.Equal(t, int64(2000), d.SubTotal)
	require.Equal(t, int64(240), d.Tax)
	require.Equal(t, int64(2240), d.Total)
	requireInvariant(t, d)

	addItem(t, d, product("Goat Ribs", "Goat", 5), 1)
	require.Equal(t, int64(2500), d.SubTotal)
	require.Equal(t, int64(300), d.Tax)
	require.Equal(t, int64(2800), d.Total)
	requireInvariant(t, d)

	require.NoError(t, d.RemoveItem(0))
	require.Equal(t, int64(500), d.SubTotal)
	require.Equal(t, int64(60), d.Tax)
	require.Equal(t, int64(560), d.Total)
	requireInvariant(t, d)
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	d := NewOrderDraft()
	first := product("Beef Sirloin", "Beef", 9)
	second := product("Lamb Chops", "Lamb", 12)
	third := product("Pork Belly", "Pork", 7)

	addItem(t, d, first, 1)
	addItem(t, d, second, 1)
	addItem(t, d, third, 1)

	require.NoError(t, d.RemoveItem(1))

	require.Len(t, d.Items, 2)
	require.Equal(t, first.ID, d.Items[0].ProductID)
	require.Equal(t, third.ID, d.Items[1].ProductID)
	requireInvariant(t, d)
}

func TestAddRemoveRoundTripRestoresTotalsExactly(t *testing.T) {
	d := NewOrderDraft()
	addItem(t, d, product("Beef Sirloin", "Beef", 9.37), 1.234)

	subTotal, tax, total := d.SubTotal, d.Tax, d.Total

	addItem(t, d, product("Lamb Chops", "Lamb", 12.99), 0.755)
	require.NoError(t, d.RemoveItem(1))

	require.Equal(t, subTotal, d.SubTotal)
	require.Equal(t, tax, d.Tax)
	require.Equal(t, total, d.Total)
}

func TestInvariantHoldsUnderMixedOperations(t *testing.T) {
	d := NewOrderDraft()
	prods := []*Product{
		product("Chicken Breast", "Poultry", 4.5),
		product("Beef Sirloin", "Beef", 9.37),
		product("Lamb Chops", "Lamb", 12.99),
	}

	addItem(t, d, prods[0], 2.5)
	requireInvariant(t, d)
	addItem(t, d, prods[1], 0.333)
	requireInvariant(t, d)
	require.NoError(t, d.SetTaxPercent(16))
	requireInvariant(t, d)
	addItem(t, d, prods[2], 1.75)
	requireInvariant(t, d)
	require.NoError(t, d.RemoveItem(0))
	requireInvariant(t, d)
	require.NoError(t, d.SetTaxPercent(0))
	requireInvariant(t, d)
	require.NoError(t, d.RemoveItem(1))
	requireInvariant(t, d)
}

// Changing the tax percentage re-derives tax/total from the current
// subtotal immediately, not on the next item mutation.
func TestSetTaxPercentRecomputesEagerly(t *testing.T) {
	d := NewOrderDraft()
	addItem(t, d, product("Beef Sirloin", "Beef", 10), 2)

	require.NoError(t, d.SetTaxPercent(16))
	require.Equal(t, int64(2000), d.SubTotal)
	require.Equal(t, int64(320), d.Tax)
	require.Equal(t, int64(2320), d.Total)

	require.Error(t, d.SetTaxPercent(-1))
	require.Equal(t, 16.0, d.TaxPercent)
}

func TestAddEntryItemValidation(t *testing.T) {
	d := NewOrderDraft()

	// Nothing selected.
	require.ErrorIs(t, d.AddEntryItem(), ErrNoProductSelected)

	// Product selected but zero quantity.
	d.SelectProduct(product("Beef Sirloin", "Beef", 9))
	require.ErrorIs(t, d.AddEntryItem(), ErrNonPositiveQuantity)

	require.Empty(t, d.Items)
	require.Zero(t, d.SubTotal)
}

func TestRemoveItemOutOfRange(t *testing.T) {
	d := NewOrderDraft()
	require.ErrorIs(t, d.RemoveItem(0), ErrItemIndexOutOfRange)
	require.ErrorIs(t, d.RemoveItem(-1), ErrItemIndexOutOfRange)
}

func TestSelectProductDerivesEntryFields(t *testing.T) {
	d := NewOrderDraft()
	p := product("Beef Sirloin", "Beef", 9.5)

	d.SetEntryQuantity(2)
	d.SelectProduct(p)

	require.Equal(t, p.ID, *d.Entry.ProductID)
	require.Equal(t, "Beef Sirloin", d.Entry.Name)
	require.Equal(t, "Beef", d.Entry.Type)
	require.Equal(t, int64(950), d.Entry.UnitPrice)
	require.Equal(t, int64(1900), d.Entry.TotalPrice)
}

// Clearing the product selection mid-entry resets every derived
// sub-form field.
func TestClearSelectionResetsEntry(t *testing.T) {
	d := NewOrderDraft()
	d.SelectProduct(product("Beef Sirloin", "Beef", 9.5))
	d.SetEntryQuantity(2)

	d.SelectProduct(nil)

	require.Nil(t, d.Entry.ProductID)
	require.Empty(t, d.Entry.Name)
	require.Empty(t, d.Entry.Type)
	require.Zero(t, d.Entry.UnitPrice)
	require.Zero(t, d.Entry.Quantity)
	require.Zero(t, d.Entry.TotalPrice)
}

func TestEntryQuantityRecomputesTotal(t *testing.T) {
	d := NewOrderDraft()
	d.SelectProduct(product("Beef Sirloin", "Beef", 9))

	d.SetEntryQuantity(1.5)
	require.Equal(t, int64(1350), d.Entry.TotalPrice)

	d.SetEntryQuantity(0.333)
	require.Equal(t, int64(300), d.Entry.TotalPrice) // 900*0.333 = 299.7 -> 300
}

func TestResetKeepsSessionIdentity(t *testing.T) {
	d := NewOrderDraft()
	id := d.ID
	d.CustomerName = "Jane Wairimu"
	addItem(t, d, product("Beef Sirloin", "Beef", 9), 1)

	d.Reset()

	require.Equal(t, id, d.ID)
	require.Empty(t, d.CustomerName)
	require.Empty(t, d.Items)
	require.Zero(t, d.Total)
	require.Equal(t, DraftOrderNumber, d.OrderNumber)
}

func TestCloneIsDeep(t *testing.T) {
	d := NewOrderDraft()
	addItem(t, d, product("Beef Sirloin", "Beef", 9), 1)
	d.SelectProduct(product("Lamb Chops", "Lamb", 12))

	cp := d.Clone()
	cp.Items[0].Name = "mutated"
	*cp.Entry.ProductID = uuid.New()

	require.Equal(t, "Beef Sirloin", d.Items[0].Name)
	require.NotEqual(t, *cp.Entry.ProductID, *d.Entry.ProductID)
}
