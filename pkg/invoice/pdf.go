package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Branding carries the store details printed on every invoice header.
type Branding struct {
	StoreName string
	Address   string
	Phone     string
	Footer    string
}

// RenderPDF renders a document to PDF bytes. It is a downstream step
// separate from Build so the document description stays testable
// without touching the PDF engine.
func RenderPDF(doc Document, b Branding) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+doc.OrderNumber, false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, b.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if b.Address != "" {
		pdf.CellFormat(0, 5, b.Address, "", 1, "C", false, 0, "")
	}
	if b.Phone != "" {
		pdf.CellFormat(0, 5, b.Phone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Order / customer block
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Order No: "+doc.OrderNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+doc.OrderDate, "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Customer: "+doc.CustomerName, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Mobile: "+doc.CustomerMobile, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Price/Kg", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Qty (Kg)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Lines {
		pdf.CellFormat(80, 7, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.3f", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", line.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	writeTotal := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", fmt.Sprintf("%.2f", doc.SubTotal), false)
	writeTotal(fmt.Sprintf("Tax (%.4g%%)", doc.TaxPercent), fmt.Sprintf("%.2f", doc.Tax), false)
	writeTotal("Total", fmt.Sprintf("%.2f", doc.Total), true)

	if b.Footer != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, b.Footer, "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice: failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
