package invoice

import (
	"github.com/google/uuid"
)

// Snapshot is the frozen view of an order (draft or persisted) that a
// document is built from. Line items reference the catalog by product
// id and carry denormalized name/price copies taken at entry time.
type Snapshot struct {
	OrderNumber    string
	OrderDate      string
	CustomerName   string
	CustomerMobile string
	Items          []SnapshotItem
	SubTotal       int64 // cents
	Tax            int64 // cents
	TaxPercent     float64
	Total          int64 // cents
}

// SnapshotItem is one line of the snapshot.
type SnapshotItem struct {
	ProductID  uuid.UUID
	Name       string
	Type       string
	UnitPrice  int64 // cents per kg
	Quantity   float64
	TotalPrice int64 // cents
}

// CatalogEntry is the read-only product record used to resolve line
// items to their current display name and unit price.
type CatalogEntry struct {
	Name       string
	Type       string
	PricePerKg int64 // cents
}

// Document is a fully resolved, printable invoice description.
// All money fields are decimals ready for display.
type Document struct {
	OrderNumber    string
	OrderDate      string
	CustomerName   string
	CustomerMobile string
	Lines          []Line
	SubTotal       float64
	Tax            float64
	TaxPercent     float64
	Total          float64
}

// Line is one expanded item row of the document.
type Line struct {
	Name      string
	UnitPrice float64
	Quantity  float64
	Total     float64
}

// Build transforms an order snapshot into a printable document.
// Every line item is resolved to its human-readable name and unit price
// via the catalog, falling back to the denormalized copy on the item
// when the catalog no longer has the product. Build never mutates the
// snapshot; calling it twice with the same input yields structurally
// identical documents.
func Build(s Snapshot, catalog map[uuid.UUID]CatalogEntry) Document {
	doc := Document{
		OrderNumber:    s.OrderNumber,
		OrderDate:      s.OrderDate,
		CustomerName:   s.CustomerName,
		CustomerMobile: s.CustomerMobile,
		Lines:          make([]Line, 0, len(s.Items)),
		SubTotal:       centsToDecimal(s.SubTotal),
		Tax:            centsToDecimal(s.Tax),
		TaxPercent:     s.TaxPercent,
		Total:          centsToDecimal(s.Total),
	}

	for _, item := range s.Items {
		name := item.Name
		unitPrice := item.UnitPrice
		if entry, ok := catalog[item.ProductID]; ok {
			name = entry.Name
			unitPrice = entry.PricePerKg
		}

		doc.Lines = append(doc.Lines, Line{
			Name:      name,
			UnitPrice: centsToDecimal(unitPrice),
			Quantity:  item.Quantity,
			Total:     centsToDecimal(item.TotalPrice),
		})
	}

	return doc
}

func centsToDecimal(v int64) float64 {
	return float64(v) / 100
}
