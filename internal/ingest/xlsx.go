package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// XLSXOptions configures XLSX parsing.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX loads merit records from one sheet of an XLSX workbook. The
// first row must be a header; malformed data rows are skipped and counted.
func ReadXLSX(path string, opts XLSXOptions) ([]model.Record, int, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, 0, eris.Wrap(err, "ingest: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, 0, err
	}

	if len(sheet.Rows) < 2 {
		return nil, 0, nil // header only or empty
	}

	idx, err := mapHeaders(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, 0, err
	}

	rows := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		rows = append(rows, rowToStrings(row))
	}

	records, skipped := ParseRows(idx, rows)
	return records, skipped, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("ingest: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("ingest: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
