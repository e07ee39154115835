package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 6.0
)

// RenderPDF lays the document out on A4 portrait pages.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	if doc.Company != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 8, tr(doc.Company), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range doc.Meta {
		pdf.CellFormat(40, pdfRowHeight, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, pdfRowHeight, tr(": "+f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pdfMargin

	for _, t := range doc.Tables {
		writePDFTable(pdf, tr, t, usable)
		pdf.Ln(4)
	}

	if len(doc.Totals) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		for _, f := range doc.Totals {
			pdf.CellFormat(usable-50, pdfRowHeight+1, tr(f.Label), "", 0, "R", false, 0, "")
			pdf.CellFormat(50, pdfRowHeight+1, tr(f.Value), "", 1, "R", false, 0, "")
		}
	}

	if !doc.GeneratedAt.IsZero() {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, "Generated "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTable(pdf *gofpdf.Fpdf, tr func(string) string, t Table, usable float64) {
	if t.Title != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(t.Title), "", 1, "L", false, 0, "")
	}

	widths := columnWidths(t.Columns, usable)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(225, 225, 225)
	for i, c := range t.Columns {
		pdf.CellFormat(widths[i], pdfRowHeight+1, tr(c.Header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(t.Rows) == 0 {
		pdf.CellFormat(usable, pdfRowHeight, "No records", "1", 1, "C", false, 0, "")
	}
	for _, row := range t.Rows {
		writePDFRow(pdf, tr, t.Columns, widths, row, false)
	}

	if len(t.Footer) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		writePDFRow(pdf, tr, t.Columns, widths, t.Footer, true)
	}
}

func writePDFRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []Column, widths []float64, row []string, fill bool) {
	for i, c := range cols {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		align := "L"
		if c.Numeric {
			align = "R"
		}
		pdf.CellFormat(widths[i], pdfRowHeight, tr(value), "1", 0, align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func columnWidths(cols []Column, usable float64) []float64 {
	var total float64
	for _, c := range cols {
		total += weight(c)
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = usable * weight(c) / total
	}
	return widths
}

func weight(c Column) float64 {
	if c.Width <= 0 {
		return 1
	}
	return c.Width
}
