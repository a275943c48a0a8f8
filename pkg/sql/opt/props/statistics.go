// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package props

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// Statistics is the estimate of what a relational operator produces: how many
// rows, at what arrival rate, over what time span. It is the common currency
// passed between the per-operator combinators of the statistics builder.
//
// Bounded and unbounded data share this one representation rather than two
// tagged variants, which keeps the combinators uniform:
//
//   - A bounded relation has Rate == 0 and Window == RowCount (the "span" of
//     a finite dataset is the whole dataset). Rate == 0 is the discriminator.
//   - An unbounded relation has Rate > 0 (rows per second) and Window is the
//     time span in seconds the estimate is computed over, with
//     RowCount ≈ Rate * Window.
//
// The zero value is the "unknown" sentinel: Available is false and no field
// carries meaning. Unknown propagates conservatively through every
// combinator; it is never defaulted to zero or to a guess.
//
// Statistics values are immutable; combinators return new values.
type Statistics struct {
	// Available indicates whether the underlying source provided base
	// statistics. If false, the other fields hold no meaning.
	Available bool

	// RowCount is the estimated number of rows produced by the operator.
	RowCount float64

	// Rate is the estimated arrival rate in rows per second, a property of
	// the upstream unbounded source. It is zero for bounded data and it is
	// never changed by row-level filtering.
	Rate float64

	// Window is the span the estimate is computed over: RowCount for bounded
	// data, a time span in seconds for unbounded data.
	Window float64
}

// MakeBoundedStatistics returns the statistics of a bounded relation with the
// given row count.
func MakeBoundedStatistics(rowCount float64) Statistics {
	rowCount = nonNegative(rowCount)
	return Statistics{Available: true, RowCount: rowCount, Window: rowCount}
}

// MakeUnboundedStatistics returns the statistics of an unbounded relation
// arriving at the given rate over the given estimation window.
func MakeUnboundedStatistics(rate, window float64) Statistics {
	rate = nonNegative(rate)
	window = nonNegative(window)
	return Statistics{Available: true, RowCount: rate * window, Rate: rate, Window: window}
}

// IsUnknown returns true if no estimate is available.
func (s Statistics) IsUnknown() bool {
	return !s.Available
}

// IsUnbounded returns true if the statistics describe a stream contribution.
func (s Statistics) IsUnbounded() bool {
	return s.Available && s.Rate > 0
}

// ApplySelectivity returns the statistics of the relation after a predicate
// with the given selectivity filters it. RowCount and Window scale by the
// factor together, keeping RowCount ≈ Rate * Window self-consistent; Rate is
// untouched, since filtering does not change how fast upstream events arrive.
func (s Statistics) ApplySelectivity(selectivity Selectivity) Statistics {
	if s.IsUnknown() {
		return Statistics{}
	}
	return Statistics{
		Available: true,
		RowCount:  nonNegative(s.RowCount * selectivity.AsFloat()),
		Rate:      s.Rate,
		Window:    nonNegative(s.Window * selectivity.AsFloat()),
	}
}

// Add returns the component-wise sum of the two statistics, used for
// operators that concatenate their inputs (UNION ALL). The result is unknown
// if either input is unknown.
func (s Statistics) Add(other Statistics) Statistics {
	if s.IsUnknown() || other.IsUnknown() {
		return Statistics{}
	}
	return Statistics{
		Available: true,
		RowCount:  nonNegative(s.RowCount + other.RowCount),
		Rate:      nonNegative(s.Rate + other.Rate),
		Window:    nonNegative(s.Window + other.Window),
	}
}

// nonNegative clamps a negative intermediate to zero. A negative value is a
// combinator defect, not a legitimate estimate.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func (s Statistics) String() string {
	return string(redact.Sprint(s).StripMarkers())
}

// SafeFormat implements the redact.SafeFormatter interface.
func (s Statistics) SafeFormat(w redact.SafePrinter, _ rune) {
	if s.IsUnknown() {
		w.SafeString("[unknown]")
		return
	}
	w.Printf("[rows=%s, rate=%s, window=%s]",
		redact.Safe(formatFloat(s.RowCount)),
		redact.Safe(formatFloat(s.Rate)),
		redact.Safe(formatFloat(s.Window)),
	)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
