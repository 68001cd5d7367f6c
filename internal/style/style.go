// Package style measures and decodes the presentation attributes captured
// on source cells. Only inline declarations and presentational attributes
// are known: there is no stylesheet cascade and no layout.
package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"table2excel/internal/table"
)

// Lookup measures source cells for column sizing.
type Lookup interface {
	// Width returns the pixel width of c, if it can be determined.
	Width(c *table.Cell) (float64, bool)
}

// Inline measures cells from their width declaration or attribute.
// DefaultWidth, when positive, is used for cells that carry neither.
type Inline struct {
	DefaultWidth float64
}

func (s Inline) Width(c *table.Cell) (float64, bool) {
	if v, ok := c.StyleValue("width", "width"); ok {
		if px, ok := Length(v); ok {
			return px, true
		}
	}
	if s.DefaultWidth > 0 {
		return s.DefaultWidth, true
	}
	return 0, false
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(c *table.Cell) (float64, bool)

func (f LookupFunc) Width(c *table.Cell) (float64, bool) { return f(c) }

var unitPx = map[string]float64{
	"px":  1,
	"pt":  96.0 / 72,
	"pc":  16,
	"in":  96,
	"cm":  96 / 2.54,
	"mm":  96 / 25.4,
	"em":  16,
	"rem": 16,
	"":    1,
}

// Length converts an absolute CSS length to pixels. Percentages and
// keywords are not measurable.
func Length(v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	i := strings.IndexFunc(v, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r == '.' || r == '-' || r == '+')
	})
	num, unit := v, ""
	if i >= 0 {
		num, unit = v[:i], strings.TrimSpace(v[i:])
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) {
		return 0, false
	}
	mul, ok := unitPx[unit]
	if !ok {
		return 0, false
	}
	return f * mul, true
}

var fontKeywords = map[string]float64{
	"xx-small": 7, "x-small": 7.5, "small": 10, "medium": 12,
	"large": 13.5, "x-large": 18, "xx-large": 24,
}

// FontSizePt converts a CSS font-size to points.
func FontSizePt(v string) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if pt, ok := fontKeywords[v]; ok {
		return pt, true
	}
	px, ok := Length(v)
	if !ok || px == 0 {
		return 0, false
	}
	return math.Round(px*0.75*10) / 10, true
}

// Bold reports whether a font-weight value renders bold.
func Bold(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "bold" || v == "bolder" {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 600
}

var named = map[string]string{
	"black": "000000", "white": "FFFFFF", "red": "FF0000", "green": "008000",
	"blue": "0000FF", "yellow": "FFFF00", "gray": "808080", "grey": "808080",
	"silver": "C0C0C0", "maroon": "800000", "purple": "800080", "fuchsia": "FF00FF",
	"lime": "00FF00", "olive": "808000", "navy": "000080", "teal": "008080",
	"aqua": "00FFFF", "orange": "FFA500", "lightgray": "D3D3D3", "lightgrey": "D3D3D3",
	"darkgray": "A9A9A9", "darkgrey": "A9A9A9", "whitesmoke": "F5F5F5",
}

// Color decodes a CSS color into "#RRGGBB". Transparent colors report false.
func Color(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "" || v == "transparent" || v == "inherit" || v == "initial":
		return "", false
	case strings.HasPrefix(v, "#"):
		return hexColor(v[1:])
	case strings.HasPrefix(v, "rgb"):
		return rgbColor(v)
	}
	if hex, ok := named[v]; ok {
		return "#" + hex, true
	}
	return "", false
}

func hexColor(h string) (string, bool) {
	switch len(h) {
	case 3, 4:
		if len(h) == 4 && h[3] == '0' {
			return "", false
		}
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		if h[6:] == "00" {
			return "", false
		}
		h = h[:6]
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToUpper(h), true
}

func rgbColor(v string) (string, bool) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return "", false
	}
	parts := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 {
		return "", false
	}
	if len(parts) > 3 {
		if a, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64); err == nil && a == 0 {
			return "", false
		}
	}
	var rgb [3]int
	for i := 0; i < 3; i++ {
		p := parts[i]
		scale := 1.0
		if strings.HasSuffix(p, "%") {
			p, scale = strings.TrimSuffix(p, "%"), 2.55
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", false
		}
		rgb[i] = int(math.Round(min(max(f*scale, 0), 255)))
	}
	return fmt.Sprintf("#%02X%02X%02X", rgb[0], rgb[1], rgb[2]), true
}
