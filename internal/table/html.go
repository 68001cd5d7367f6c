package table

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelector picks every table of a document.
const DefaultSelector = "table"

const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

var presentational = []string{"width", "height", "align", "valign", "bgcolor", "nowrap"}

// ReadHTML parses an HTML document and extracts the tables matched by selector.
func ReadHTML(r io.Reader, selector string) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return Select(doc, selector), nil
}

// Select resolves selector against doc. Matched elements that are not
// <table> are ignored; an empty selector means DefaultSelector.
func Select(doc *goquery.Document, selector string) []*Table {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultSelector
	}
	return FromSelection(doc.Find(selector))
}

// FromSelection converts an already-resolved set of <table> elements.
func FromSelection(sel *goquery.Selection) []*Table {
	var out []*Table
	sel.Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "table" {
			return
		}
		out = append(out, Parse(s))
	})
	return out
}

// Parse converts one <table> element. Rows follow the table.rows order of
// the DOM: header rows, body rows, footer rows. Nested tables stay inside
// their cell.
func Parse(tbl *goquery.Selection) *Table {
	t := &Table{}
	for _, tr := range tableRows(tbl) {
		row := &Row{}
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			row.Cells = append(row.Cells, parseCell(td))
		})
		t.Rows = append(t.Rows, row)
	}
	return t
}

func tableRows(tbl *goquery.Selection) []*goquery.Selection {
	var head, body, foot []*goquery.Selection
	collect := func(dst *[]*goquery.Selection, sec *goquery.Selection) {
		sec.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
			*dst = append(*dst, tr)
		})
	}
	tbl.Children().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "thead":
			collect(&head, s)
		case "tbody":
			collect(&body, s)
		case "tfoot":
			collect(&foot, s)
		case "tr":
			body = append(body, s)
		}
	})
	rows := append(head, body...)
	return append(rows, foot...)
}

func parseCell(td *goquery.Selection) *Cell {
	c := &Cell{
		Tag:     goquery.NodeName(td),
		Text:    innerText(td),
		RowSpan: spanAttr(td, "rowspan", maxRowSpan),
		ColSpan: spanAttr(td, "colspan", maxColSpan),
		Style:   ParseDeclarations(td.AttrOr("style", "")),
		Attrs:   map[string]string{},
	}
	for _, a := range presentational {
		if v, ok := td.Attr(a); ok {
			c.Attrs[a] = strings.TrimSpace(v)
		}
	}
	if a := td.Find("a[href]").First(); a.Length() > 0 {
		c.Href = strings.TrimSpace(a.AttrOr("href", ""))
	}
	if ctl := td.Find("input, select, textarea").First(); ctl.Length() > 0 {
		v := formValue(ctl)
		c.FormValue = &v
	}
	return c
}

func spanAttr(td *goquery.Selection, name string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(td.AttrOr(name, "1")))
	if err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

func formValue(ctl *goquery.Selection) string {
	switch goquery.NodeName(ctl) {
	case "select":
		opt := ctl.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = ctl.Find("option").First()
		}
		if v, ok := opt.Attr("value"); ok {
			return v
		}
		return strings.TrimSpace(opt.Text())
	case "textarea":
		return ctl.Text()
	}
	switch strings.ToLower(ctl.AttrOr("type", "text")) {
	case "checkbox", "radio":
		if _, checked := ctl.Attr("checked"); !checked {
			return ""
		}
		return ctl.AttrOr("value", "on")
	}
	return ctl.AttrOr("value", "")
}

// innerText approximates the rendered text of a cell: <br> and block
// elements break lines, runs of whitespace collapse, form controls and
// scripts contribute nothing.
func innerText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, n *goquery.Selection) {
			switch goquery.NodeName(n) {
			case "#text":
				b.WriteString(n.Text())
			case "br":
				b.WriteByte('\n')
			case "#comment", "script", "style", "input", "select", "textarea":
			case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
				walk(n)
				b.WriteByte('\n')
			default:
				walk(n)
			}
		})
	}
	walk(sel)

	var lines []string
	for _, ln := range strings.Split(b.String(), "\n") {
		if ln = strings.Join(strings.Fields(ln), " "); ln != "" {
			lines = append(lines, ln)
		}
	}
	return strings.Join(lines, "\n")
}
