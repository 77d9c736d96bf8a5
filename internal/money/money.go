// Package money renders amounts for display.
package money

import (
	"math"
	"strconv"
	"strings"
)

const rupee = "₹"

// FormatINR formats v as Indian rupees with no fraction digits, grouped the
// en-IN way: the last three digits, then pairs (₹58,80,000).
// Halves round away from zero.
func FormatINR(v float64) string {
	switch {
	case math.IsNaN(v):
		return rupee + "NaN"
	case math.IsInf(v, 1):
		return rupee + "∞"
	case math.IsInf(v, -1):
		return "-" + rupee + "∞"
	}

	rounded := math.Round(v)
	if rounded == 0 {
		// Drop the sign of -0.
		rounded = 0
	}
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	return sign + rupee + GroupIndian(strconv.FormatFloat(rounded, 'f', 0, 64))
}

// GroupIndian inserts en-IN grouping separators into a run of digits.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/2)
	first := len(head) % 2
	if first > 0 {
		b.WriteString(head[:first])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatNumber prints v without trailing zeros, as form fields echo it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
