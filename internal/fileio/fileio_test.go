package fileio

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"table2excel/internal/table"
)

func texts(t *table.Table) [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(r.Cells))
		for _, c := range r.Cells {
			row = append(row, c.Text)
		}
		out = append(out, row)
	}
	return out
}

func TestReadTablesUnsupported(t *testing.T) {
	_, err := ReadTables(strings.NewReader("x"), "report.pdf", "")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReadHTML(t *testing.T) {
	src := "\xef\xbb\xbf<table id=a><tr><td>1</td></tr></table><table><tr><td colspan=2>2</td></tr></table>"
	tables, err := ReadTables(strings.NewReader(src), "page.HTML", "#a")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"1"}}, texts(tables[0]))

	all, err := ReadTables(strings.NewReader(src), "page.htm", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 2, all[1].Rows[0].Cells[0].ColSpan)
}

func TestReadCSV(t *testing.T) {
	tables, err := ReadTables(strings.NewReader("a,b\n1,\"2,5\"\nlast\n"), "data.csv", "")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2,5"}, {"last"}}, texts(tables[0]))

	tsv, err := ReadTables(strings.NewReader("a\tb\n"), "data.tsv", "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, texts(tsv[0]))

	empty, err := ReadTables(strings.NewReader(""), "empty.csv", "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeUTF8(t *testing.T) {
	got, err := io.ReadAll(decodeUTF8(strings.NewReader("\xef\xbb\xbfпривет")))
	require.NoError(t, err)
	assert.Equal(t, "привет", string(got))

	got, err = io.ReadAll(decodeUTF8(strings.NewReader("plain ascii")))
	require.NoError(t, err)
	assert.Equal(t, "plain ascii", string(got))

	legacy, err := charmap.Windows1251.NewEncoder().String(strings.Repeat("Съешь же ещё этих мягких французских булок, да выпей чаю. ", 10))
	require.NoError(t, err)
	got, err = io.ReadAll(decodeUTF8(strings.NewReader(legacy)))
	require.NoError(t, err)
	assert.True(t, utf8.Valid(got))
}

func TestLooksUTF8(t *testing.T) {
	b := []byte("ab" + "ж")
	assert.True(t, looksUTF8(b, false))
	assert.False(t, looksUTF8(b[:3], false))
	assert.True(t, looksUTF8(b[:3], true), "cut rune at the end of a peek")
	assert.False(t, looksUTF8([]byte{0xff, 'a', 'b', 'c', 'd'}, true))
}

func TestNormalizeCell(t *testing.T) {
	assert.Equal(t, "x", normalizeCell(" \u00a0x\u00a0 "))
	assert.Equal(t, "", normalizeCell("\t"))
}

func TestReadXLSXMerges(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "big"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "r"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "s"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "x"))
	require.NoError(t, f.MergeCell(sheet, "A1", "B2"))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tables, err := ReadTables(&buf, "book.xlsx", "")
	require.NoError(t, err)
	require.Len(t, tables, 1, "empty sheets are skipped")

	tb := tables[0]
	assert.Equal(t, [][]string{{"big", "r"}, {"s"}, {"x"}}, texts(tb))
	big := tb.Rows[0].Cells[0]
	assert.Equal(t, 2, big.RowSpan)
	assert.Equal(t, 2, big.ColSpan)
}

func TestReadXLSXMergeBeyondValues(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "tall"))
	require.NoError(t, f.MergeCell(sheet, "A1", "A3"))

	tb, err := sheetTable(f, sheet)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 3)
	assert.Equal(t, 3, tb.Rows[0].Cells[0].RowSpan)
	assert.Empty(t, tb.Rows[1].Cells)
	assert.Empty(t, tb.Rows[2].Cells)
	require.NoError(t, f.Close())
}

func TestDroppedCellsBesideTallMerge(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "big"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "r1"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "r2"))
	require.NoError(t, f.MergeCell(sheet, "A1", "B2"))

	tb, err := sheetTable(f, sheet)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, [][]string{{"big", "r1"}, {"r2"}}, texts(tb))
	assert.Equal(t, 2, droppedCells(tb))

	plain := table.FromRecords([][]string{{"a", "b"}, {"c", "d"}})
	assert.Zero(t, droppedCells(plain))
}
