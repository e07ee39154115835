// Package export renders tabular business documents (statements, bills, payslips)
// as PDF or XLSX.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("format must be one of json, pdf, xlsx")

// ParseFormat maps a query value to a Format. The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", ErrUnknownFormat
}

// File is a rendered document ready to be sent as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Field struct {
	Label string
	Value string
}

type Column struct {
	Header string
	// Width is relative to the other columns of the same table.
	Width float64
	// Numeric columns are right aligned and written as numbers in XLSX.
	Numeric bool
}

type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	// Footer is an optional last row, usually column totals.
	Footer []string
}

type Document struct {
	Company     string
	Title       string
	Meta        []Field
	Tables      []Table
	Totals      []Field
	GeneratedAt time.Time
}

// Render produces a PDF or XLSX file named baseName plus the format extension.
func Render(doc Document, format Format, baseName string) (File, error) {
	switch format {
	case FormatPDF:
		data, err := RenderPDF(doc)
		if err != nil {
			return File{}, err
		}
		return File{Name: baseName + ".pdf", ContentType: "application/pdf", Data: data}, nil
	case FormatXLSX:
		data, err := RenderXLSX(doc)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}
	return File{}, fmt.Errorf("render %q: %w", format, ErrUnknownFormat)
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MoneyPtr formats an optional amount, printing "-" for nil.
func MoneyPtr(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return Money(*d)
}

// Text dereferences an optional string, printing "-" for nil or empty.
func Text(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
