package derive

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumeric converts an upstream numeric string to a float64. The subgraph
// reports prices, sizes, and amounts as strings; unparsable or non-finite
// input yields 0 so downstream calculations stay total.
func ParseNumeric(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return sanitize(f)
}

// sanitize maps NaN and infinities to 0 so they never propagate to display.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 rounds to one decimal place, used for percentage displays.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places, used for monetary values.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
