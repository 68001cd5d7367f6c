package xlsx

import (
	"fmt"

	excelize "github.com/xuri/excelize/v2"
)

type Worksheet struct {
	wb    *Workbook
	Name  string
	Index int
}

func (ws *Worksheet) Workbook() *Workbook { return ws.wb }

// Merge merges the 0-based inclusive region and returns the handle of its
// top-left cell. Single positions are not registered as merges.
func (ws *Worksheet) Merge(left, top, right, bottom int) (*Cell, error) {
	tl, err := excelize.CoordinatesToCellName(left+1, top+1)
	if err != nil {
		return nil, err
	}
	br, err := excelize.CoordinatesToCellName(right+1, bottom+1)
	if err != nil {
		return nil, err
	}
	if tl != br {
		if err := ws.wb.File.MergeCell(ws.Name, tl, br); err != nil {
			return nil, fmt.Errorf("merge %s:%s: %w", tl, br, err)
		}
	}
	return &Cell{ws: ws, Row: top, Col: left, Bottom: bottom, Right: right, TopLeft: tl, BottomRight: br}, nil
}

// SetColumnWidth sets the width of the 0-based column, capped at the
// largest width the format allows.
func (ws *Worksheet) SetColumnWidth(col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	width = min(max(width, 0), excelize.MaxColumnWidth)
	return ws.wb.File.SetColWidth(ws.Name, name, name, width)
}

func (ws *Worksheet) ColumnWidth(col int) (float64, error) {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return 0, err
	}
	return ws.wb.File.GetColWidth(ws.Name, name)
}
