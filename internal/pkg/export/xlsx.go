package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the document onto a single worksheet named after its title.
func RenderXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(doc.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E1E1E1"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet, row: 1}

	if doc.Company != "" {
		w.set(1, doc.Company, title)
		w.row++
	}
	w.set(1, doc.Title, title)
	w.row += 2

	for _, m := range doc.Meta {
		w.set(1, m.Label, bold)
		w.set(2, m.Value, 0)
		w.row++
	}
	if len(doc.Meta) > 0 {
		w.row++
	}

	maxCols := 2
	for _, t := range doc.Tables {
		if len(t.Columns) > maxCols {
			maxCols = len(t.Columns)
		}
		if t.Title != "" {
			w.set(1, t.Title, bold)
			w.row++
		}
		for i, c := range t.Columns {
			w.set(i+1, c.Header, header)
		}
		w.row++
		for _, r := range t.Rows {
			w.writeRow(t.Columns, r, 0, money)
		}
		if len(t.Footer) > 0 {
			w.writeRow(t.Columns, t.Footer, bold, money)
		}
		w.row++
	}

	for _, tot := range doc.Totals {
		w.set(1, tot.Label, bold)
		w.setValue(2, tot.Value, true, money)
		w.row++
	}

	if w.err != nil {
		return nil, fmt.Errorf("write cells: %w", w.err)
	}

	last, err := excelize.ColumnNumberToName(maxCols)
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so cell writes can be chained.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) set(col int, value interface{}, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = err
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

// setValue writes numeric strings as numbers so totals stay summable in Excel.
func (w *sheetWriter) setValue(col int, value string, numeric bool, moneyStyle int) {
	if numeric {
		if d, err := decimal.NewFromString(value); err == nil {
			w.set(col, d.InexactFloat64(), moneyStyle)
			return
		}
	}
	w.set(col, value, 0)
}

func (w *sheetWriter) writeRow(cols []Column, row []string, style, moneyStyle int) {
	for i, c := range cols {
		if i >= len(row) {
			break
		}
		if style != 0 && !c.Numeric {
			w.set(i+1, row[i], style)
			continue
		}
		w.setValue(i+1, row[i], c.Numeric, moneyStyle)
	}
	w.row++
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Report"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
