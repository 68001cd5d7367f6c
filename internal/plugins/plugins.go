// Package plugins holds the built-in conversion plugins. Each one reads the
// source cell from the hook context and adjusts the output cell.
package plugins

import (
	"strings"

	"table2excel/internal/hook"
	"table2excel/internal/style"
	"table2excel/internal/utils"
)

// Defaults returns the built-in plugins in the order they run.
func Defaults() []any {
	return []any{Form{}, Hyperlink{}, Font{}, Fill{}, Alignment{}}
}

// Form exports the value of a form control instead of the cell text.
type Form struct{}

func (Form) Name() string { return "form" }

func (Form) WorkcellCreated(ctx *hook.Context) error {
	if ctx.Source.FormValue == nil {
		return nil
	}
	return ctx.Cell.SetValue(*ctx.Source.FormValue)
}

// Hyperlink turns cells containing a link into spreadsheet hyperlinks.
type Hyperlink struct{}

func (Hyperlink) Name() string { return "hyperlink" }

func (Hyperlink) WorkcellCreated(ctx *hook.Context) error {
	href := ctx.Source.Href
	if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return nil
	}
	if err := ctx.Cell.SetHyperlink(href); err != nil {
		return err
	}
	font := ctx.Cell.Font()
	font.Color = "#0563C1"
	font.Underline = "single"
	return nil
}

// Font copies color, size, family, weight and decoration.
type Font struct{}

func (Font) Name() string { return "font" }

func (Font) WorkcellCreated(ctx *hook.Context) error {
	src := ctx.Source
	if src.Tag == "th" {
		ctx.Cell.Font().Bold = true
	}
	if v, ok := src.StyleValue("font-weight", ""); ok {
		ctx.Cell.Font().Bold = style.Bold(v)
	}
	if v, ok := src.StyleValue("font-style", ""); ok {
		ctx.Cell.Font().Italic = v == "italic" || v == "oblique"
	}
	if v, ok := src.StyleValue("color", ""); ok {
		if c, ok := style.Color(v); ok {
			ctx.Cell.Font().Color = c
		}
	}
	if v, ok := src.StyleValue("font-size", ""); ok {
		if pt, ok := style.FontSizePt(v); ok {
			ctx.Cell.Font().Size = pt
		}
	}
	if v, ok := src.StyleValue("font-family", ""); ok {
		family := strings.TrimSpace(strings.Split(v, ",")[0])
		ctx.Cell.Font().Family = strings.Trim(family, `"'`)
	}
	for _, prop := range []string{"text-decoration", "text-decoration-line"} {
		v, ok := src.StyleValue(prop, "")
		if !ok {
			continue
		}
		if strings.Contains(v, "underline") {
			ctx.Cell.Font().Underline = "single"
		}
		if strings.Contains(v, "line-through") {
			ctx.Cell.Font().Strike = true
		}
	}
	return nil
}

// Fill paints the cell background.
type Fill struct{}

func (Fill) Name() string { return "fill" }

func (Fill) WorkcellCreated(ctx *hook.Context) error {
	v, ok := ctx.Source.StyleValue("background-color", "bgcolor")
	if !ok {
		v, ok = ctx.Source.StyleValue("background", "")
	}
	if !ok {
		return nil
	}
	c, ok := style.Color(strings.Fields(v)[0])
	if !ok {
		return nil
	}
	st := ctx.Cell.Style()
	st.Fill.Type = "pattern"
	st.Fill.Pattern = 1
	st.Fill.Color = []string{c}
	return nil
}

var horizontal = map[string]string{
	"left": "left", "start": "left", "right": "right", "end": "right",
	"center": "center", "middle": "center", "justify": "justify",
}

var vertical = map[string]string{
	"top": "top", "middle": "center", "center": "center", "bottom": "bottom",
	"baseline": "bottom", "text-top": "top", "text-bottom": "bottom",
}

// Alignment maps text-align, vertical-align and white-space.
type Alignment struct{}

func (Alignment) Name() string { return "alignment" }

func (Alignment) WorkcellCreated(ctx *hook.Context) error {
	src := ctx.Source
	if v, ok := src.StyleValue("text-align", "align"); ok {
		if h, ok := horizontal[strings.ToLower(v)]; ok {
			ctx.Cell.Alignment().Horizontal = h
		}
	} else if src.Tag == "th" {
		ctx.Cell.Alignment().Horizontal = "center"
	}
	if v, ok := src.StyleValue("vertical-align", "valign"); ok {
		if vv, ok := vertical[strings.ToLower(v)]; ok {
			ctx.Cell.Alignment().Vertical = vv
		}
	} else if ctx.Cell.Row != ctx.Cell.Bottom {
		// browsers center table cells vertically by default
		ctx.Cell.Alignment().Vertical = "center"
	}
	if v, ok := src.StyleValue("white-space", ""); ok {
		switch strings.ToLower(v) {
		case "pre-wrap", "pre-line", "normal", "break-spaces":
			if strings.Contains(src.Text, "\n") {
				ctx.Cell.Alignment().WrapText = true
			}
		}
	} else if strings.Contains(src.Text, "\n") {
		ctx.Cell.Alignment().WrapText = true
	}
	return nil
}

// Numbers stores numeric-looking text as numbers. It is not a default
// plugin; register it after the defaults so form values are seen too.
type Numbers struct{}

func (Numbers) Name() string { return "numbers" }

func (Numbers) WorkcellCreated(ctx *hook.Context) error {
	s, ok := ctx.Cell.Value().(string)
	if !ok || ctx.Cell.Hyperlink() != "" {
		return nil
	}
	f, ok := utils.ParseNumber(s)
	if !ok {
		return nil
	}
	if ctx.Cell.Alignment().Horizontal == "" {
		ctx.Cell.Alignment().Horizontal = "right"
	}
	return ctx.Cell.SetValue(f)
}
