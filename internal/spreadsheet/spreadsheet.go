// Package spreadsheet renders domain.Sheet tables as XLSX workbooks.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// ContentType is the media type of the workbooks Write produces.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Write encodes sheet as a single-sheet workbook: a bold header row followed by
// one row per record. Nil values leave the cell empty.
func Write(w io.Writer, sheet domain.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("spreadsheet.Write: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("spreadsheet.Write: %w", err)
	}

	for i, col := range sheet.Columns {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("spreadsheet.Write: %w", err)
		}
		if err := f.SetCellValue(name, letter+"1", col.Header); err != nil {
			return fmt.Errorf("spreadsheet.Write: %w", err)
		}
		if col.Width > 0 {
			if err := f.SetColWidth(name, letter, letter, col.Width); err != nil {
				return fmt.Errorf("spreadsheet.Write: %w", err)
			}
		}
	}
	if len(sheet.Columns) > 0 {
		if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
			return fmt.Errorf("spreadsheet.Write: %w", err)
		}
	}

	for r, row := range sheet.Rows {
		for c, col := range sheet.Columns {
			v, ok := row[col.Key]
			if !ok || v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("spreadsheet.Write: %w", err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("spreadsheet.Write: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet.Write: %w", err)
	}
	return nil
}
