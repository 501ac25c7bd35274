package distexpr

import (
	"math"
	"strconv"
	"strings"
)

// Format renders a result for display. It never fails: nil gives the empty
// string and anything unrecognized gives "Unknown result type". Numbers are
// written in plain decimal; distribution parameters are rounded to two
// decimal places.
func Format(r Result) string {
	switch r := r.(type) {
	case nil:
		return ""
	case Number:
		return formatNumber(r.Value)
	case Normal:
		lo, hi := r.Interval()
		return "Normal distribution: μ=" + fixed2(r.Mean) + ", σ=" + fixed2(r.Std) +
			" (95% between " + fixed2(lo) + " and " + fixed2(hi) + ")"
	case Uniform:
		return "Uniform distribution: min=" + fixed2(r.Min) + ", max=" + fixed2(r.Max)
	case ErrorResult:
		return "Error: " + r.Message
	default:
		return "Unknown result type"
	}
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatNumber writes v as a calculator would show it: plain decimal digits
// for ordinary magnitudes and exponent form for very large or small ones.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Includes negative zero.
		return "0"
	}
	if a := math.Abs(v); a < 1e-6 || a >= 1e21 {
		return trimExponent(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts on one-digit exponents,
// so 1.5e-07 reads 1.5e-7.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	exp := strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+2] + exp
}
