package fileio

import (
	"encoding/csv"
	"io"

	"table2excel/internal/table"
)

// readCSV reads a delimited file as a single span-free table, converting
// the input to UTF-8 first.
func readCSV(r io.Reader, tabs bool) ([]*table.Table, error) {
	cr := csv.NewReader(decodeUTF8(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if tabs {
		cr.Comma = '\t'
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return []*table.Table{table.FromRecords(rows)}, nil
}
