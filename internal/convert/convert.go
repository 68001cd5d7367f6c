// Package convert turns source tables into a workbook, one worksheet per
// table, running the registered plugins at every lifecycle point.
package convert

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"table2excel/internal/hook"
	"table2excel/internal/plugins"
	"table2excel/internal/style"
	"table2excel/internal/table"
	"table2excel/internal/xlsx"
)

// DefaultWidthRatio converts measured pixels into spreadsheet column width.
const DefaultWidthRatio = 0.14

// ErrEmptySelection is returned when there is no table to convert.
var ErrEmptySelection = errors.New("no tables to convert")

type Options struct {
	// Workbook is applied to the created workbook.
	Workbook xlsx.Options
	// WidthRatio multiplies measured pixel widths; 0 means DefaultWidthRatio.
	WidthRatio float64
	// EnableDefaultPlugins puts the built-in plugins before Plugins.
	// If nil, defaults to true.
	EnableDefaultPlugins *bool
	// Plugins are user plugins, see package hook.
	Plugins []any
	// Style measures cells for column widths; nil means style.Inline{}.
	Style style.Lookup
	// Saver receives the workbook on Export; nil means xlsx.FileSaver{}.
	Saver xlsx.Saver
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	enabled := true
	return Options{
		WidthRatio:           DefaultWidthRatio,
		EnableDefaultPlugins: &enabled,
		Style:                style.Inline{},
		Saver:                xlsx.FileSaver{},
	}
}

// ShouldEnableDefaultPlugins reports whether built-in plugins are registered.
func (o Options) ShouldEnableDefaultPlugins() bool {
	if o.EnableDefaultPlugins != nil {
		return *o.EnableDefaultPlugins
	}
	return true
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.WidthRatio <= 0 {
		o.WidthRatio = def.WidthRatio
	}
	if o.Style == nil {
		o.Style = def.Style
	}
	if o.Saver == nil {
		o.Saver = def.Saver
	}
	return o
}

// Converter drives one export. It builds the workbook once and reuses it
// for every later call; it is not safe for concurrent use.
type Converter struct {
	tables []*table.Table
	opts   Options
	log    zerolog.Logger
	hooks  *hook.Dispatcher

	workbook *xlsx.Workbook
}

// New prepares a conversion of tables, in order.
func New(tables []*table.Table, opts Options) *Converter {
	opts = opts.withDefaults()
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Converter{tables: tables, opts: opts, log: logger}
	c.hooks = hook.NewDispatcher(logger)
	if opts.ShouldEnableDefaultPlugins() {
		c.hooks.Register(plugins.Defaults()...)
	}
	c.hooks.Register(opts.Plugins...)
	return c
}

// FromDocument converts the tables selector matches in doc.
func FromDocument(doc *goquery.Document, selector string, opts Options) *Converter {
	return New(table.Select(doc, selector), opts)
}

func (c *Converter) Tables() []*table.Table { return c.tables }

func (c *Converter) Hooks() *hook.Dispatcher { return c.hooks }

// ToExcel builds the workbook, or returns the one already built.
func (c *Converter) ToExcel() (*xlsx.Workbook, error) {
	if c.workbook != nil {
		return c.workbook, nil
	}
	if len(c.tables) == 0 {
		return nil, ErrEmptySelection
	}

	c.hooks.Reset()
	wb, err := xlsx.NewWorkbook(c.opts.Workbook)
	if err != nil {
		return nil, fmt.Errorf("create workbook: %w", err)
	}
	if err := c.build(wb); err != nil {
		_ = wb.Close()
		return nil, err
	}
	wb.Finish()

	c.log.Info().Int("sheets", len(c.tables)).Msg("workbook built")
	c.workbook = wb
	return wb, nil
}

func (c *Converter) build(wb *xlsx.Workbook) error {
	if err := c.hooks.Invoke(hook.WorkbookCreated, hook.Context{Workbook: wb, Tables: c.tables}); err != nil {
		return err
	}

	writer := &SheetWriter{
		Hooks:      c.hooks,
		Style:      c.opts.Style,
		WidthRatio: c.opts.WidthRatio,
		Log:        c.log,
	}
	for i, t := range c.tables {
		ws, err := wb.AddWorksheet(fmt.Sprintf("Sheet %d", i+1))
		if err != nil {
			return fmt.Errorf("add worksheet %d: %w", i+1, err)
		}
		delta := hook.Context{Worksheet: ws, Table: t}
		if err := c.hooks.Invoke(hook.WorksheetCreated, delta); err != nil {
			return err
		}
		if err := writer.WriteTable(t, ws); err != nil {
			return fmt.Errorf("%s: %w", ws.Name, err)
		}
		if err := c.hooks.Invoke(hook.WorksheetCompleted, delta); err != nil {
			return err
		}
	}
	return nil
}

// Export makes sure the workbook is built and hands it to the saver.
func (c *Converter) Export(fileName, ext string) error {
	wb, err := c.ToExcel()
	if err != nil {
		return err
	}
	return c.opts.Saver.Save(wb, fileName, ext)
}

// WriteTo streams the built workbook as xlsx.
func (c *Converter) WriteTo(w io.Writer) (int64, error) {
	wb, err := c.ToExcel()
	if err != nil {
		return 0, err
	}
	return wb.WriteTo(w)
}

// Close releases the built workbook, if any.
func (c *Converter) Close() error {
	if c.workbook == nil {
		return nil
	}
	err := c.workbook.Close()
	c.workbook = nil
	return err
}
