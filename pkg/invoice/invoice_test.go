package invoice

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot(productID uuid.UUID) Snapshot {
	return Snapshot{
		OrderNumber:    "ORD-AB12CD34",
		OrderDate:      "15-03-2026",
		CustomerName:   "Jane Wairimu",
		CustomerMobile: "+254700111222",
		Items: []SnapshotItem{
			{ProductID: productID, Name: "stale name", UnitPrice: 90000, Quantity: 2, TotalPrice: 180000},
		},
		SubTotal:   180000,
		Tax:        21600,
		TaxPercent: 12,
		Total:      201600,
	}
}

func TestBuildResolvesItemsFromCatalog(t *testing.T) {
	productID := uuid.New()
	catalog := map[uuid.UUID]CatalogEntry{
		productID: {Name: "Beef Sirloin", Type: "Beef", PricePerKg: 90000},
	}

	doc := Build(sampleSnapshot(productID), catalog)

	require.Len(t, doc.Lines, 1)
	require.Equal(t, "Beef Sirloin", doc.Lines[0].Name)
	require.InDelta(t, 900.0, doc.Lines[0].UnitPrice, 1e-9)
	require.InDelta(t, 1800.0, doc.Lines[0].Total, 1e-9)
	require.InDelta(t, 1800.0, doc.SubTotal, 1e-9)
	require.InDelta(t, 216.0, doc.Tax, 1e-9)
	require.InDelta(t, 2016.0, doc.Total, 1e-9)
}

func TestBuildFallsBackToDenormalizedCopy(t *testing.T) {
	doc := Build(sampleSnapshot(uuid.New()), nil)

	require.Len(t, doc.Lines, 1)
	require.Equal(t, "stale name", doc.Lines[0].Name)
	require.InDelta(t, 900.0, doc.Lines[0].UnitPrice, 1e-9)
}

func TestBuildIsPure(t *testing.T) {
	productID := uuid.New()
	catalog := map[uuid.UUID]CatalogEntry{
		productID: {Name: "Beef Sirloin", Type: "Beef", PricePerKg: 90000},
	}

	input := sampleSnapshot(productID)
	before := sampleSnapshot(productID)

	first := Build(input, catalog)
	second := Build(input, catalog)

	// Same input, structurally identical output.
	require.Equal(t, first, second)

	// Input snapshot untouched.
	require.Equal(t, before, input)

	// Mutating the output must not leak back into the input.
	first.Lines[0].Name = "mutated"
	require.Equal(t, "stale name", input.Items[0].Name)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	productID := uuid.New()
	doc := Build(sampleSnapshot(productID), nil)

	data, err := RenderPDF(doc, Branding{StoreName: "FreshMart", Footer: "Thank you"})
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, "%PDF", string(data[:4]))
}
