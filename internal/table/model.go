package table

// Table is one source grid: rows in document order.
type Table struct {
	Rows []*Row
}

type Row struct {
	Cells []*Cell
}

// Cell is a single source cell. Spans are always >= 1 once the cell has
// been through NewCell or the HTML reader.
type Cell struct {
	Tag     string            // td | th ("" for non-HTML sources)
	Text    string            // rendered text, whitespace collapsed
	RowSpan int
	ColSpan int
	Style   map[string]string // inline CSS declarations, lower-cased property names
	Attrs   map[string]string // presentational attributes (width, align, valign, bgcolor)

	Href      string  // first link target inside the cell
	FormValue *string // value of the first form control inside the cell
}

// NewCell returns a plain text cell with the given spans normalized.
func NewCell(text string, rowSpan, colSpan int) *Cell {
	return &Cell{
		Text:    text,
		RowSpan: normSpan(rowSpan),
		ColSpan: normSpan(colSpan),
	}
}

// StyleValue returns the inline CSS value for prop, falling back to the
// presentational attribute attr when the declaration is missing.
func (c *Cell) StyleValue(prop, attr string) (string, bool) {
	if v, ok := c.Style[prop]; ok && v != "" {
		return v, true
	}
	if attr == "" {
		return "", false
	}
	if v, ok := c.Attrs[attr]; ok && v != "" {
		return v, true
	}
	return "", false
}

// Size returns the row count and the widest row's cell count.
func (t *Table) Size() (rows, cols int) {
	rows = len(t.Rows)
	for _, r := range t.Rows {
		if n := len(r.Cells); n > cols {
			cols = n
		}
	}
	return rows, cols
}

// Cells flattens the table row by row, left to right.
func (t *Table) Cells() []*Cell {
	var out []*Cell
	for _, r := range t.Rows {
		out = append(out, r.Cells...)
	}
	return out
}

// FromRecords builds a span-free table out of plain string records
// (CSV, legacy sheets).
func FromRecords(records [][]string) *Table {
	t := &Table{Rows: make([]*Row, 0, len(records))}
	for _, rec := range records {
		row := &Row{Cells: make([]*Cell, 0, len(rec))}
		for _, v := range rec {
			row.Cells = append(row.Cells, NewCell(v, 1, 1))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func normSpan(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
