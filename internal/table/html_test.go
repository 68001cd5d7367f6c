package table

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHTMLSpans(t *testing.T) {
	src := `<table>
	  <tr><td rowspan="2" colspan="2">A</td><td>B</td></tr>
	  <tr><td>C</td></tr>
	</table>`

	tables, err := ReadHTML(strings.NewReader(src), "")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tbl := tables[0]
	require.Len(t, tbl.Rows, 2)
	a := tbl.Rows[0].Cells[0]
	assert.Equal(t, "A", a.Text)
	assert.Equal(t, 2, a.RowSpan)
	assert.Equal(t, 2, a.ColSpan)
	assert.Equal(t, "td", a.Tag)

	rows, cols := tbl.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
}

func TestReadHTMLRowOrder(t *testing.T) {
	src := `<table>
	  <tfoot><tr><td>foot</td></tr></tfoot>
	  <tbody><tr><td>body</td></tr></tbody>
	  <thead><tr><th>head</th></tr></thead>
	</table>`

	tables, err := ReadHTML(strings.NewReader(src), "table")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	var got []string
	for _, c := range tables[0].Cells() {
		got = append(got, c.Text)
	}
	assert.Equal(t, []string{"head", "body", "foot"}, got)
	assert.Equal(t, "th", tables[0].Rows[0].Cells[0].Tag)
}

func TestReadHTMLNestedTableStaysInCell(t *testing.T) {
	src := `<table id="outer"><tr><td>x<table><tr><td>inner</td></tr></table></td><td>y</td></tr></table>`

	tables, err := ReadHTML(strings.NewReader(src), "#outer")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)
	assert.Len(t, tables[0].Rows[0].Cells, 2)
}

func TestSelectIgnoresNonTables(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="x"></div><table class="x"><tr><td>1</td></tr></table><table><tr><td>2</td></tr></table>`))
	require.NoError(t, err)

	assert.Len(t, Select(doc, ".x"), 1)
	assert.Len(t, Select(doc, ""), 2)
	assert.Empty(t, Select(doc, ".missing"))
}

func TestParseCellAttributes(t *testing.T) {
	src := `<table><tr>
	  <td style="color: #ff0000; WIDTH: 120px !important" align="right" rowspan="0" colspan="abc">
	    <a href=" https://example.com ">link</a>
	  </td>
	  <td><select><option value="1">one</option><option value="2" selected>two</option></select></td>
	  <td><input type="checkbox" checked></td>
	  <td><input type="checkbox" value="yes"></td>
	  <td>line one<br>  line   two </td>
	</tr></table>`

	tables, err := ReadHTML(strings.NewReader(src), "")
	require.NoError(t, err)
	cells := tables[0].Rows[0].Cells
	require.Len(t, cells, 5)

	c := cells[0]
	assert.Equal(t, 1, c.RowSpan)
	assert.Equal(t, 1, c.ColSpan)
	assert.Equal(t, "#ff0000", c.Style["color"])
	assert.Equal(t, "120px", c.Style["width"])
	assert.Equal(t, "right", c.Attrs["align"])
	assert.Equal(t, "https://example.com", c.Href)
	assert.Equal(t, "link", c.Text)
	assert.Nil(t, c.FormValue)

	require.NotNil(t, cells[1].FormValue)
	assert.Equal(t, "2", *cells[1].FormValue)
	require.NotNil(t, cells[2].FormValue)
	assert.Equal(t, "on", *cells[2].FormValue)
	require.NotNil(t, cells[3].FormValue)
	assert.Equal(t, "", *cells[3].FormValue)

	assert.Equal(t, "line one\nline two", cells[4].Text)
}

func TestSpanLimits(t *testing.T) {
	src := `<table><tr><td colspan="5000" rowspan="99999">x</td></tr></table>`
	tables, err := ReadHTML(strings.NewReader(src), "")
	require.NoError(t, err)
	c := tables[0].Rows[0].Cells[0]
	assert.Equal(t, maxColSpan, c.ColSpan)
	assert.Equal(t, maxRowSpan, c.RowSpan)
}

func TestParseDeclarations(t *testing.T) {
	got := ParseDeclarations("color: red; ; bogus; Font-Weight : bold ; color: blue")
	assert.Equal(t, map[string]string{"color": "blue", "font-weight": "bold"}, got)
}

func TestStyleValueFallsBackToAttribute(t *testing.T) {
	c := &Cell{Style: map[string]string{}, Attrs: map[string]string{"bgcolor": "#eee"}}
	v, ok := c.StyleValue("background-color", "bgcolor")
	assert.True(t, ok)
	assert.Equal(t, "#eee", v)

	_, ok = c.StyleValue("color", "")
	assert.False(t, ok)
}

func TestFromRecords(t *testing.T) {
	tbl := FromRecords([][]string{{"a", "b", "c"}, {"d"}})
	rows, cols := tbl.Size()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Len(t, tbl.Cells(), 4)
	assert.Equal(t, 1, tbl.Rows[1].Cells[0].RowSpan)
}
