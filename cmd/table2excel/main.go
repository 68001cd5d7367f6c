// Command table2excel converts the tables of an HTML page (or a CSV/XLS/XLSX
// file) into an xlsx workbook, one worksheet per table.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	excelize "github.com/xuri/excelize/v2"

	"table2excel/internal/config"
	"table2excel/internal/convert"
	"table2excel/internal/fileio"
	"table2excel/internal/plugins"
	"table2excel/internal/xlsx"
)

type flags struct {
	output           string
	selector         string
	widthRatio       float64
	noDefaultPlugins bool
	numbers          bool
	activeSheet      int
	activeSet        bool
	creator          string
	logLevel         string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "table2excel [input]",
		Short: "Convert HTML tables into an xlsx workbook",
		Long: `table2excel reads the tables of an HTML page (or a CSV, XLS or XLSX file)
and writes them to an xlsx workbook, one worksheet per table, keeping
row and column spans as merged cells.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.activeSet = cmd.Flags().Changed("active-sheet")
			return run(args[0], f, stdout)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", `Output file (default: <input>.xlsx, "-" for stdout)`)
	fl.StringVarP(&f.selector, "selector", "s", "table", "CSS selector of the tables to convert (HTML only)")
	fl.Float64Var(&f.widthRatio, "width-ratio", convert.DefaultWidthRatio, "Pixel to column width ratio")
	fl.BoolVar(&f.noDefaultPlugins, "no-default-plugins", false, "Skip the built-in form, link, font, fill and alignment plugins")
	fl.BoolVar(&f.numbers, "numbers", false, "Store numeric-looking text as numbers")
	fl.IntVar(&f.activeSheet, "active-sheet", 0, "Index of the sheet shown when the workbook opens")
	fl.StringVar(&f.creator, "creator", "", "Document creator property")
	fl.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	return cmd
}

func run(input string, f flags, stdout io.Writer) error {
	logger := config.SetupLogger(config.Config{LogLevel: f.logLevel})

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	tables, err := fileio.ReadTables(in, input, f.selector)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	enabled := !f.noDefaultPlugins
	opts := convert.Options{
		WidthRatio:           f.widthRatio,
		EnableDefaultPlugins: &enabled,
		Logger:               &logger,
	}
	if f.numbers {
		opts.Plugins = append(opts.Plugins, plugins.Numbers{})
	}
	if f.creator != "" {
		opts.Workbook.DocProps = &excelize.DocProperties{Creator: f.creator}
	}
	if f.activeSet {
		opts.Workbook.ActiveSheet = &f.activeSheet
	}

	out := f.output
	if out == "" {
		out = defaultOutput(input)
	}
	if out == "-" {
		opts.Saver = &xlsx.WriterSaver{W: stdout}
	} else {
		opts.Saver = xlsx.FileSaver{Dir: filepath.Dir(out)}
	}

	conv := convert.New(tables, opts)
	defer conv.Close()

	name, ext := "", xlsx.DefaultExt
	if out != "-" {
		base := filepath.Base(out)
		ext = strings.TrimPrefix(filepath.Ext(base), ".")
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := conv.Export(name, ext); err != nil {
		return fmt.Errorf("convert %s: %w", input, err)
	}
	logger.Info().Str("input", input).Str("output", out).Int("sheets", len(tables)).Msg("done")
	return nil
}

// defaultOutput puts <input>.xlsx next to the input. When that is the input
// itself (an xlsx source) the result goes to <input>.table2excel.xlsx.
func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	out := base + "." + xlsx.DefaultExt
	if samePath(out, input) {
		out = base + ".table2excel." + xlsx.DefaultExt
	}
	return out
}

func samePath(a, b string) bool {
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return aa == bb
}
