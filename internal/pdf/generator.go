package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Konaisya/build-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the construction contract for one order.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Construction Contract", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order No. %d of %s", doc.Order.ID, formatDate(doc.Order.CreateDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Customer", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, doc.User.Name, "", "L", false)
	if doc.User.OrgName != nil && *doc.User.OrgName != "" {
		pdf.MultiCell(0, 5, fmt.Sprintf("Organization: %s", *doc.User.OrgName), "", "L", false)
	}
	pdf.MultiCell(0, 5, fmt.Sprintf("Email: %s", doc.User.Email), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Subject", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, doc.House.Name, "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("District: %s", safeValue(doc.House.District)), "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Address: %s", safeValue(doc.House.Address)), "", "L", false)
	pdf.MultiCell(0, 5, fmt.Sprintf("Floors: %d, entrances: %d", doc.House.Floors, doc.House.Entrances), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Price and status", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Contract price", "Status", "Created", "Updated"}
	widths := []float64{45, 45, 40, 40}
	drawTableRow(pdf, g.fontName, headers, widths, true)
	drawTableRow(pdf, g.fontName, []string{
		fmt.Sprintf("%.2f", doc.Order.ContractPrice),
		string(doc.Order.Status),
		formatDate(doc.Order.CreateDate),
		formatOptionalDate(doc.Order.UpdateDate),
	}, widths, false)

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	if doc.Order.PaymentDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Paid on: %s", formatDate(*doc.Order.PaymentDate)), "", 1, "L", false, 0, "")
	}
	if doc.Order.SignOffDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Signed off on: %s", formatDate(*doc.Order.SignOffDate)), "", 1, "L", false, 0, "")
	}
	if doc.Order.CompletionDate != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Completed on: %s", formatDate(*doc.Order.CompletionDate)), "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	signatureBlock(pdf, g.fontName, "Customer", doc.User.Name)
	signatureBlock(pdf, g.fontName, "Contractor", "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName, title, name string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s: _____________________ /%s/", title, safeValue(name)), "", 1, "L", false, 0, "")
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func safeValue(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
