// Package xlsx wraps an excelize file with the workbook, worksheet and cell
// handles that conversion plugins are allowed to mutate.
package xlsx

import (
	"io"

	excelize "github.com/xuri/excelize/v2"
)

// Options are applied to every new workbook.
type Options struct {
	DocProps    *excelize.DocProperties
	Props       *excelize.WorkbookPropsOptions
	ActiveSheet *int // 0-based; clamped to the sheets that exist
}

type Workbook struct {
	File *excelize.File

	opts   Options
	sheets []*Worksheet
}

// NewWorkbook creates an empty workbook and applies opts.
func NewWorkbook(opts Options) (*Workbook, error) {
	f := excelize.NewFile()
	if opts.DocProps != nil {
		if err := f.SetDocProps(opts.DocProps); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if opts.Props != nil {
		if err := f.SetWorkbookProps(opts.Props); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return &Workbook{File: f, opts: opts}, nil
}

// AddWorksheet appends a sheet. The first call takes over the default
// sheet excelize creates with every file.
func (wb *Workbook) AddWorksheet(name string) (*Worksheet, error) {
	if len(wb.sheets) == 0 {
		def := wb.File.GetSheetName(0)
		if def != name {
			if err := wb.File.SetSheetName(def, name); err != nil {
				return nil, err
			}
		}
	} else if _, err := wb.File.NewSheet(name); err != nil {
		return nil, err
	}
	ws := &Worksheet{wb: wb, Name: name, Index: len(wb.sheets)}
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

func (wb *Workbook) Worksheets() []*Worksheet { return wb.sheets }

// Finish applies settings that need the final sheet list.
func (wb *Workbook) Finish() {
	if wb.opts.ActiveSheet == nil || len(wb.sheets) == 0 {
		return
	}
	idx := min(max(*wb.opts.ActiveSheet, 0), len(wb.sheets)-1)
	wb.File.SetActiveSheet(idx)
}

func (wb *Workbook) WriteTo(w io.Writer) (int64, error) { return wb.File.WriteTo(w) }

func (wb *Workbook) Close() error { return wb.File.Close() }
