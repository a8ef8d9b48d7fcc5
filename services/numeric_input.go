package services

import (
	"math"
	"regexp"

	"github.com/spf13/cast"
)

var numericInputPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// AcceptNumericInput reports whether proposed may replace a numeric field's
// current text. The empty string is always accepted so a field can be
// cleared; anything else must be digits with at most one decimal point.
func AcceptNumericInput(proposed string) bool {
	if proposed == "" {
		return true
	}
	return numericInputPattern.MatchString(proposed)
}

// Normalize converts raw field text into a base-unit value by parsing it and
// multiplying by factor. Unparseable or empty text counts as 0 and the
// result is always finite.
func Normalize(raw string, factor float64) float64 {
	v, err := cast.ToFloat64E(raw)
	if err != nil || !isFinite(v) {
		return 0
	}
	if factor == 0 || !isFinite(factor) {
		return 0
	}
	return finiteOrZero(v * factor)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if isFinite(v) {
		return v
	}
	return 0
}
