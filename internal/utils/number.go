package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxNumber = regexp.MustCompile(`^[-+]?(\d+|\d{1,3}([.,]\d{3})+)?([.,]\d+)?$`)

var spaces = strings.NewReplacer(" ", "", "\u00A0", "", "\u202F", "", "\u2009", "", "\t", "")

// ParseNumber parses numbers the way people type them in tables:
// "1 234,50", "1,234.50", "(12.5)", "-7". When both separators appear the
// last one is the decimal mark; a lone comma is a decimal mark. Anything
// with other characters is not a number.
func ParseNumber(s string) (float64, bool) {
	s = spaces.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if !rxNumber.MatchString(s) || strings.Trim(s, "+-") == "" {
		return 0, false
	}
	// leading zeros mark codes, not quantities: "007", "0123"
	if d := strings.TrimLeft(s, "+-"); len(d) > 1 && d[0] == '0' && d[1] >= '0' && d[1] <= '9' {
		return 0, false
	}

	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
