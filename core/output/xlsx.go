package output

import (
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet  = "Sheet1"
	maxSheetName  = 31
	minColWidth   = 12
	maxColWidth   = 48
	summarySheet  = "Summary"
	headerColor   = "#D3D3D3"
	moneyFormat   = "#,##0.00"
	percentFormat = "0.0"
)

// XLSXFormatter renders every report section to its own worksheet
type XLSXFormatter struct{}

// NewXLSXFormatter creates an Excel formatter
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Format returns FormatXLSX
func (f *XLSXFormatter) Format() Format {
	return FormatXLSX
}

// Render writes the workbook
func (f *XLSXFormatter) Render(w io.Writer, r *Report) error {
	wb, err := Workbook(r)
	if err != nil {
		return err
	}
	defer wb.Close()
	return wb.Write(w)
}

// Workbook builds the workbook for a report. The first sheet is a
// summary of the metadata and constants.
func Workbook(r *Report) (*excelize.File, error) {
	wb := excelize.NewFile()

	header, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		wb.Close()
		return nil, err
	}
	money, err := wb.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		wb.Close()
		return nil, err
	}
	pct, err := wb.NewStyle(&excelize.Style{CustomNumFmt: strPtr(percentFormat)})
	if err != nil {
		wb.Close()
		return nil, err
	}
	s := sheetStyles{header: header, money: money, percent: pct}

	summary := ConstantsTable(r.Constants)
	summary.Sheet = summarySheet
	summary.Rows = append([][]interface{}{
		{"Report", r.Title},
		{"Report ID", r.Metadata.ID},
		{"Generated", r.Metadata.Timestamp},
		{"Version", r.Metadata.Version},
		{"Input hash", r.Metadata.InputHash},
	}, summary.Rows...)

	tables := append([]Table{summary}, Tables(r)...)
	for i, t := range tables {
		name := sheetName(t.Sheet)
		if i == 0 {
			if err := wb.SetSheetName(defaultSheet, name); err != nil {
				wb.Close()
				return nil, err
			}
		} else if _, err := wb.NewSheet(name); err != nil {
			wb.Close()
			return nil, err
		}
		if err := writeSheet(wb, name, t, s); err != nil {
			wb.Close()
			return nil, err
		}
	}
	wb.SetActiveSheet(0)
	return wb, nil
}

type sheetStyles struct {
	header, money, percent int
}

func writeSheet(wb *excelize.File, sheet string, t Table, s sheetStyles) error {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := wb.SetCellStyle(sheet, cell, cell, s.header); err != nil {
			return err
		}
		widths[i] = utf8.RuneCountInString(h)
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, cell, CellValue(v)); err != nil {
				return err
			}
			if style, ok := s.forCell(v); ok {
				if err := wb.SetCellStyle(sheet, cell, cell, style); err != nil {
					return err
				}
			}
			if c < len(widths) {
				if n := utf8.RuneCountInString(CellText(v)); n > widths[c] {
					widths[c] = n
				}
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := wb.SetColWidth(sheet, col, col, clampWidth(width+2)); err != nil {
			return err
		}
	}

	notesRow := len(t.Rows) + 3
	for i, n := range t.Notes {
		cell, err := excelize.CoordinatesToCellName(1, notesRow+i)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, n); err != nil {
			return err
		}
	}
	return nil
}

func (s sheetStyles) forCell(v interface{}) (int, bool) {
	switch v.(type) {
	case Money, MoneyK, heatCell:
		return s.money, true
	case Percent:
		return s.percent, true
	}
	return 0, false
}

func sheetName(name string) string {
	if utf8.RuneCountInString(name) <= maxSheetName {
		return name
	}
	return string([]rune(name)[:maxSheetName])
}

func clampWidth(w int) float64 {
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return float64(w)
}

func strPtr(s string) *string {
	return &s
}
