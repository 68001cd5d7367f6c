// Package grid resolves row and column spans of a source table into
// non-overlapping rectangular regions.
package grid

import (
	"fmt"

	"table2excel/internal/table"
)

// Range is an inclusive index range.
type Range struct {
	From int
	To   int
}

// Cell is one source cell placed into the matrix.
type Cell struct {
	Source *table.Cell
	Rows   Range
	Cols   Range
}

// Width is the number of columns the cell covers.
func (c *Cell) Width() int { return c.Cols.To - c.Cols.From + 1 }

// Height is the number of rows the cell covers.
func (c *Cell) Height() int { return c.Rows.To - c.Rows.From + 1 }

// Matrix holds, for every position, the cell occupying it (nil = empty).
type Matrix [][]*Cell

// MalformedSpanError describes a span that could not be laid out in full:
// it ran past the matrix bounds or into positions already taken. The cell
// keeps the smaller region that was actually available.
type MalformedSpanError struct {
	Row, Col         int // top-left position
	RowSpan, ColSpan int // requested
	Rows, Cols       int // granted
}

func (e *MalformedSpanError) Error() string {
	return fmt.Sprintf("cell at (%d,%d): span %dx%d clamped to %dx%d",
		e.Row, e.Col, e.RowSpan, e.ColSpan, e.Rows, e.Cols)
}

// Grid is the result of Build.
type Grid struct {
	Rows, Cols int
	Cells      []*Cell // creation order
	Matrix     Matrix

	Warnings []*MalformedSpanError
	Unplaced []*table.Cell // source cells left over once the matrix was full
}

// Build lays out t. The matrix is totalRows x totalCols where totalCols is
// the widest row's cell count. Positions are scanned row-major; each free
// position takes the next source cell in reading order and claims its span,
// clamped to the matrix and to positions that are still free.
func Build(t *table.Table) *Grid {
	rows, cols := t.Size()
	g := &Grid{Rows: rows, Cols: cols, Matrix: make(Matrix, rows)}
	for r := range g.Matrix {
		g.Matrix[r] = make([]*Cell, cols)
	}

	src := t.Cells()
	cursor := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.Matrix[r][c] != nil {
				continue
			}
			if cursor == len(src) {
				return g
			}
			g.place(src[cursor], r, c)
			cursor++
		}
	}
	g.Unplaced = src[cursor:]
	return g
}

func (g *Grid) place(src *table.Cell, r, c int) {
	cell := &Cell{Source: src, Rows: Range{r, r}, Cols: Range{c, c}}
	g.Cells = append(g.Cells, cell)

	rowSpan, colSpan := max(src.RowSpan, 1), max(src.ColSpan, 1)
	rowEnd := min(r+rowSpan, g.Rows)

	// The region widens only while the whole first row of it is free, then
	// deepens only while the full width stays free: the result is always a
	// rectangle.
	colEnd := c + 1
	for colEnd < min(c+colSpan, g.Cols) && g.Matrix[r][colEnd] == nil {
		colEnd++
	}
	rowLast := r
	for y := r + 1; y < rowEnd && g.free(y, c, colEnd); y++ {
		rowLast = y
	}

	for y := r; y <= rowLast; y++ {
		for x := c; x < colEnd; x++ {
			g.Matrix[y][x] = cell
		}
	}
	cell.Rows.To = rowLast
	cell.Cols.To = colEnd - 1

	if cell.Height() != rowSpan || cell.Width() != colSpan {
		g.Warnings = append(g.Warnings, &MalformedSpanError{
			Row: r, Col: c,
			RowSpan: rowSpan, ColSpan: colSpan,
			Rows: cell.Height(), Cols: cell.Width(),
		})
	}
}

func (g *Grid) free(y, from, to int) bool {
	for x := from; x < to; x++ {
		if g.Matrix[y][x] != nil {
			return false
		}
	}
	return true
}

// Empty reports the positions no cell claimed (ragged rows).
func (g *Grid) Empty() [][2]int {
	var out [][2]int
	for r, row := range g.Matrix {
		for c, cell := range row {
			if cell == nil {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// At returns the cell covering (r, c), or nil.
func (g *Grid) At(r, c int) *Cell {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		return nil
	}
	return g.Matrix[r][c]
}
