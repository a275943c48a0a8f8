// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package humanizeutil

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Count formats a row-count estimate using SI notation ("12 k", "1.5 M").
// Estimates below one thousand are printed exactly; fractional estimates
// below ten keep up to two decimals so small selectivity products stay
// visible.
func Count(value float64) string {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return "unknown"
	}
	if value < 10 && value != math.Trunc(value) {
		return humanize.FtoaWithDigits(value, 2)
	}
	if value < 1000 {
		return humanize.Ftoa(math.Round(value))
	}
	return humanize.SIWithDigits(value, 1, "")
}
