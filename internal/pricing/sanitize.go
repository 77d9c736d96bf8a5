package pricing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const defaultPeople = 1

// Sanitize converts raw field values into calculation inputs.
//
// Price, area and advance percent default to 0 when no numeric prefix can be
// read; the people count defaults to 1 and is raised to 1 when lower.
// Parsing reads the longest numeric prefix after leading whitespace, so
// "1200 sqft" is 1200 and a people count of "2.5" is 2.
func Sanitize(raw RawInputs) Inputs {
	return Inputs{
		PricePerUnitArea: floatOrZero(raw.PricePerUnitArea),
		TotalArea:        floatOrZero(raw.TotalArea),
		People:           effectivePeople(raw.NumPeople),
		AdvancePercent:   floatOrZero(raw.AdvancePercent),
	}
}

func floatOrZero(raw string) float64 {
	v, ok := parseFloatPrefix(raw)
	if !ok || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func effectivePeople(raw string) int64 {
	v, ok := parseIntPrefix(raw)
	if !ok {
		return defaultPeople
	}
	return max(v, defaultPeople)
}

// parseFloatPrefix parses the longest decimal literal at the start of s:
// optional sign, digits with an optional fraction, optional exponent.
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, isSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	i = skipDigits(s, i)
	intDigits := i - intStart

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := skipDigits(s, i+1)
		fracDigits = j - i - 1
		if fracDigits > 0 {
			i = j
		}
	}
	if intDigits+fracDigits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := skipDigits(s, j); k > j {
			i = k
		}
	}

	// Out of range literals come back as ±Inf or 0 alongside ErrRange.
	v, _ := strconv.ParseFloat(s[:i], 64)
	return v, true
}

// parseIntPrefix parses the longest integer at the start of s. A 0x or 0X
// prefix switches to base 16. Values beyond int64 saturate.
func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, isSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	n := 0
	for n < len(s) && digitValue(s[n]) < base {
		n++
	}
	if n == 0 {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:n], base, 64)
	if err != nil {
		v = math.MaxInt64
	}
	if neg {
		v = -v
	}
	return v, true
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
