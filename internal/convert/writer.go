package convert

import (
	"github.com/rs/zerolog"

	"table2excel/internal/grid"
	"table2excel/internal/hook"
	"table2excel/internal/style"
	"table2excel/internal/table"
	"table2excel/internal/xlsx"
)

// SheetWriter materializes the merged regions of one table into a worksheet.
type SheetWriter struct {
	Hooks      *hook.Dispatcher
	Style      style.Lookup
	WidthRatio float64
	Log        zerolog.Logger
}

// WriteTable lays t out and writes every region into ws: merge, value,
// column width for single-column regions, workcellCreated, then the style
// collected by the plugins.
func (w *SheetWriter) WriteTable(t *table.Table, ws *xlsx.Worksheet) error {
	g := grid.Build(t)
	for _, warn := range g.Warnings {
		w.Log.Warn().Str("sheet", ws.Name).Err(warn).Msg("malformed span")
	}
	if n := len(g.Unplaced); n > 0 {
		w.Log.Warn().Str("sheet", ws.Name).Int("cells", n).Msg("cells dropped: no room left in the grid")
	}

	for _, cell := range g.Cells {
		if err := w.writeCell(cell, ws); err != nil {
			return err
		}
	}
	w.Log.Debug().
		Str("sheet", ws.Name).
		Int("rows", g.Rows).
		Int("cols", g.Cols).
		Int("cells", len(g.Cells)).
		Msg("sheet written")
	return nil
}

func (w *SheetWriter) writeCell(cell *grid.Cell, ws *xlsx.Worksheet) error {
	out, err := ws.Merge(cell.Cols.From, cell.Rows.From, cell.Cols.To, cell.Rows.To)
	if err != nil {
		return err
	}
	if err := out.SetValue(cell.Source.Text); err != nil {
		return err
	}

	// a region spanning columns cannot tell which of them to size
	if cell.Cols.From == cell.Cols.To && w.Style != nil {
		if px, ok := w.Style.Width(cell.Source); ok {
			if err := ws.SetColumnWidth(cell.Cols.From, px*w.WidthRatio); err != nil {
				return err
			}
		}
	}

	if err := w.Hooks.Invoke(hook.WorkcellCreated, hook.Context{Cell: out, Source: cell.Source}); err != nil {
		return err
	}
	return out.Commit()
}
