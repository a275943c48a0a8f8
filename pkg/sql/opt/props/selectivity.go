// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package props

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// epsilon is the minimum value Selectivity can hold. Floating point rounding
// in long conjunction products must never produce a zero or negative factor,
// since downstream math divides by the row counts those factors produce.
const epsilon = 1e-10

// Selectivity is a value in the range (0, 1] that is used to approximate the
// fraction of rows that survive a predicate. Construct it with
// MakeSelectivity so out-of-range inputs are clamped into the valid range.
type Selectivity struct {
	selectivity float64
}

// OneSelectivity is a Selectivity of 1.0, the factor of a predicate that
// filters nothing.
var OneSelectivity = MakeSelectivity(1.0)

// MakeSelectivity initializes and validates a float64 to ensure that it is in
// a valid range.
func MakeSelectivity(sel float64) Selectivity {
	return Selectivity{selectivityInRange(sel)}
}

// MakeSelectivityFromFraction calculates selectivity as a fraction of a and b
// if a is less than b and returns OneSelectivity otherwise.
func MakeSelectivityFromFraction(a, b float64) Selectivity {
	if a < b {
		return MakeSelectivity(a / b)
	}
	return OneSelectivity
}

// AsFloat returns the private selectivity field, allowing it to be accessed
// outside of this package.
func (s Selectivity) AsFloat() float64 {
	return s.selectivity
}

// Multiply is the equivalent of s *= other.
func (s *Selectivity) Multiply(other Selectivity) {
	s.selectivity = selectivityInRange(s.selectivity * other.selectivity)
}

// selectivityInRange performs the range check; the float value should always
// be in the range (0, 1].
func selectivityInRange(sel float64) float64 {
	switch {
	case sel < epsilon:
		return epsilon
	case sel > 1.0:
		return 1.0
	default:
		return sel
	}
}

func (s Selectivity) String() string {
	return fmt.Sprintf("%v", s.selectivity)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (s Selectivity) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%v", redact.Safe(s.selectivity))
}
