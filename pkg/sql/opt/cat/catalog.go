// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

// Package cat contains the interfaces through which the planner consumes
// source metadata. The host engine implements them over its registry of
// bounded tables and unbounded event streams; the planner only reads the
// schemas and base statistics they publish and never mutates catalog state.
package cat

import (
	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// DataSource is an interface to an object that produces rows: a bounded
// table or an unbounded event stream.
type DataSource interface {
	// Name returns the unqualified name of the object.
	Name() string

	// Schema returns the shape of the rows the object produces.
	Schema() *schema.Schema
}

// Table is a data source that can additionally publish base statistics about
// the rows it produces.
type Table interface {
	DataSource

	// Statistics returns the source's base statistics, or nil if the source
	// does not provide any. The result is treated as a snapshot valid for the
	// duration of one optimization pass; there is no invalidation protocol.
	Statistics() *TableStatistics
}

// TableStatistics is the raw statistics publication of a single source.
// Bounded sources report a finite row count; unbounded sources report an
// arrival rate over a default estimation window.
type TableStatistics struct {
	rowCount  float64
	rate      float64
	window    float64
	unbounded bool
}

// BoundedStatistics returns the publication for a bounded source with a known
// finite row count. The window of a bounded source is the whole dataset, so
// it equals the row count; the rate is zero.
func BoundedStatistics(rowCount float64) *TableStatistics {
	if rowCount < 0 {
		panic(errors.AssertionFailedf("negative row count %v", rowCount))
	}
	return &TableStatistics{rowCount: rowCount, window: rowCount}
}

// UnboundedStatistics returns the publication for an unbounded source that
// produces rows at the given rate (rows per second), estimated over the given
// window (seconds). The row count is derived as rate times window.
func UnboundedStatistics(rate, window float64) *TableStatistics {
	if rate < 0 || window < 0 {
		panic(errors.AssertionFailedf("negative rate %v or window %v", rate, window))
	}
	return &TableStatistics{rowCount: rate * window, rate: rate, window: window, unbounded: true}
}

// RowCount returns the published row count. For an unbounded source this is
// the count expected within one estimation window.
func (ts *TableStatistics) RowCount() float64 { return ts.rowCount }

// Rate returns the published arrival rate; zero for bounded sources.
func (ts *TableStatistics) Rate() float64 { return ts.rate }

// Window returns the published estimation window.
func (ts *TableStatistics) Window() float64 { return ts.window }

// Unbounded returns true if the source is an event stream.
func (ts *TableStatistics) Unbounded() bool { return ts.unbounded }
