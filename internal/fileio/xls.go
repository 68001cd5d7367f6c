package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"

	"table2excel/internal/table"
)

// xlsCharsets are tried in order; legacy workbooks are mostly cp1251.
var xlsCharsets = []string{"windows-1251", "utf-8", "koi8-r"}

// computeMaxCols probes every row for the last non-empty column. Row.LastCol
// is not reliable for files written by third-party exporters.
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 512
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := maxCols; j < probeMax; j++ {
			if normalizeCell(r.Col(j)) != "" {
				maxCols = j + 1
			}
		}
	}
	return maxCols
}

// readXLS returns one span-free table per non-empty sheet.
func readXLS(r io.Reader) ([]*table.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range xlsCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	var tables []*table.Table
	for s := 0; s < wb.NumSheets(); s++ {
		sheet := wb.GetSheet(s)
		if sheet == nil {
			continue
		}
		maxCols := computeMaxCols(sheet)
		if maxCols == 0 {
			continue
		}
		rows := make([][]string, 0, int(sheet.MaxRow)+1)
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			cols := make([]string, maxCols)
			if row != nil {
				for j := 0; j < maxCols; j++ {
					cols[j] = normalizeCell(row.Col(j))
				}
			}
			rows = append(rows, cols)
		}
		tables = append(tables, table.FromRecords(rows))
	}
	return tables, nil
}
