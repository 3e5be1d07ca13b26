package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatViews renders a view counter compactly: 999, 1.5K, 2.5M. Negative
// values render as 0.
func FormatViews(n int64) string {
	if n < 0 {
		n = 0
	}
	switch {
	case n >= 1_000_000:
		return decimal.NewFromInt(n).Div(million).StringFixed(1) + "M"
	case n >= 1_000:
		return decimal.NewFromInt(n).Div(thousand).StringFixed(1) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// ParseViews leniently coerces a raw counter: the leading integer is used,
// anything unparseable or negative yields 0.
func ParseViews(raw string) int64 {
	n, ok := leadingInt(raw)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// FormatViewsString is FormatViews over ParseViews.
func FormatViewsString(raw string) string {
	return FormatViews(ParseViews(raw))
}

// leadingInt parses an optional sign followed by at least one digit at the
// start of s, ignoring surrounding whitespace and any trailing text.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		n = math.MaxInt64
	}
	if neg {
		n = -n
	}
	return n, true
}
