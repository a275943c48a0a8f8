// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

// Package props defines the logical properties derived for the relational
// operators of a query plan: the output schema, the statistics estimate, and
// the selectivity factors the estimate is built from. Properties are derived
// bottom-up once, at plan construction time, and are immutable afterwards.
package props

import "github.com/danielarn/beam/pkg/sql/schema"

// Relational properties describe the content of the rows produced by a
// relational operator, independent of how those rows are physically computed.
type Relational struct {
	// OutputSchema is the shape of the rows the operator produces.
	OutputSchema *schema.Schema

	// Stats is the estimated cardinality, arrival rate, and estimation window
	// of the operator's output.
	Stats Statistics
}

// Statistics returns the statistics estimate of the operator's output.
func (r *Relational) Statistics() Statistics {
	return r.Stats
}
