package xlsx

import (
	"net/url"
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// Cell is the output cell of one merged region. Style changes are
// collected on Style() and written once by Commit, so several plugins can
// contribute to the same cell format.
type Cell struct {
	ws          *Worksheet
	Row, Col    int // 0-based top-left position
	Bottom      int // 0-based last row
	Right       int // 0-based last column
	TopLeft     string
	BottomRight string

	value any
	link  string
	style *excelize.Style
}

func (c *Cell) Worksheet() *Worksheet { return c.ws }

func (c *Cell) Value() any { return c.value }

func (c *Cell) SetValue(v any) error {
	if err := c.ws.wb.File.SetCellValue(c.ws.Name, c.TopLeft, v); err != nil {
		return err
	}
	c.value = v
	return nil
}

func (c *Cell) Hyperlink() string { return c.link }

// SetHyperlink links the cell. "#name" targets a location inside the
// workbook, everything else is treated as external.
func (c *Cell) SetHyperlink(target string) error {
	linkType, link := "External", target
	if strings.HasPrefix(target, "#") {
		linkType, link = "Location", strings.TrimPrefix(target, "#")
	} else if u, err := url.Parse(target); err == nil {
		link = u.String()
	}
	display, _ := c.value.(string)
	opts := excelize.HyperlinkOpts{Tooltip: &target}
	if display != "" {
		opts.Display = &display
	}
	if err := c.ws.wb.File.SetCellHyperLink(c.ws.Name, c.TopLeft, link, linkType, opts); err != nil {
		return err
	}
	c.link = target
	return nil
}

// Style returns the pending format of the cell, creating it on first use.
func (c *Cell) Style() *excelize.Style {
	if c.style == nil {
		c.style = &excelize.Style{}
	}
	return c.style
}

// Font returns the pending font, creating it on first use.
func (c *Cell) Font() *excelize.Font {
	st := c.Style()
	if st.Font == nil {
		st.Font = &excelize.Font{}
	}
	return st.Font
}

// Alignment returns the pending alignment, creating it on first use.
func (c *Cell) Alignment() *excelize.Alignment {
	st := c.Style()
	if st.Alignment == nil {
		st.Alignment = &excelize.Alignment{}
	}
	return st.Alignment
}

// Commit registers the pending style and applies it to the whole region.
// A cell nobody styled is left alone.
func (c *Cell) Commit() error {
	if c.style == nil {
		return nil
	}
	f := c.ws.wb.File
	id, err := f.NewStyle(c.style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(c.ws.Name, c.TopLeft, c.BottomRight, id)
}
