package engine

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumeral renders a numeral string for display. Unparseable
// input renders as "0" rather than failing.
func FormatNumeral(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "0"
	}
	return formatValue(v)
}

// formatValue renders a number for display: exponential notation with
// six fraction digits for very large or very small magnitudes, plain
// decimal with at most eight fraction digits otherwise. No thousands
// grouping.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "0"
	}
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e10 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}

	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// numeralString is the canonical string form a computed result takes
// when it becomes the next currentInput. It stays parseable by
// strconv.ParseFloat, including the exponent form for extreme
// magnitudes.
func numeralString(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
