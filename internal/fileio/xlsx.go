package fileio

import (
	"io"

	"github.com/rs/zerolog/log"
	excelize "github.com/xuri/excelize/v2"

	"table2excel/internal/grid"
	"table2excel/internal/table"
)

type span struct{ rows, cols int }

// readXLSX returns one table per sheet. Merged ranges come back as spanning
// cells, and the positions they cover are left out the way HTML does it.
func readXLSX(r io.Reader) ([]*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tables []*table.Table
	for _, sheet := range f.GetSheetList() {
		t, err := sheetTable(f, sheet)
		if err != nil {
			return nil, err
		}
		if len(t.Rows) == 0 {
			continue
		}
		if n := droppedCells(t); n > 0 {
			log.Warn().Str("sheet", sheet).Int("cells", n).
				Msg("merged ranges make rows wider than their cell count; trailing cells will be dropped")
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func sheetTable(f *excelize.File, sheet string) (*table.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}

	spans := map[[2]int]span{}
	covered := map[[2]int]bool{}
	width := map[int]int{}
	nrows := len(rows)
	for _, m := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, err
		}
		r1, c1, r2, c2 = r1-1, c1-1, r2-1, c2-1
		spans[[2]int{r1, c1}] = span{rows: r2 - r1 + 1, cols: c2 - c1 + 1}
		for r := r1; r <= r2; r++ {
			for c := c1; c <= c2; c++ {
				if r != r1 || c != c1 {
					covered[[2]int{r, c}] = true
				}
			}
			if c2+1 > width[r] {
				width[r] = c2 + 1
			}
		}
		if r2+1 > nrows {
			nrows = r2 + 1
		}
	}

	t := &table.Table{}
	for r := 0; r < nrows; r++ {
		var values []string
		if r < len(rows) {
			values = rows[r]
		}
		n := max(len(values), width[r])
		row := &table.Row{}
		for c := 0; c < n; c++ {
			pos := [2]int{r, c}
			if covered[pos] {
				continue
			}
			text := ""
			if c < len(values) {
				text = values[c]
			}
			sp, ok := spans[pos]
			if !ok {
				sp = span{1, 1}
			}
			row.Cells = append(row.Cells, table.NewCell(text, sp.rows, sp.cols))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// droppedCells counts the source cells the grid has no room for. The grid is
// as wide as the row with the most cells, so a merge covering several rows
// pushes the cells to its right out of the rows below.
func droppedCells(t *table.Table) int {
	return len(grid.Build(t).Unplaced)
}
