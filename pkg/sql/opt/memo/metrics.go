// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts the work done by the statistics builder. Host engines that
// optimize many plans per second watch the unknown-propagation counter in
// particular: a climbing value means sources are registered without
// statistics and the optimizer is flying blind.
type Metrics struct {
	// NodesEstimated counts plan nodes whose statistics were derived.
	NodesEstimated prometheus.Counter

	// UnknownPropagated counts plan nodes that ended up with no estimate.
	UnknownPropagated prometheus.Counter

	// TableStatsSnapshots counts base-statistics snapshots taken from
	// sources (at most one per table per optimization pass).
	TableStatsSnapshots prometheus.Counter
}

// NewMetrics builds the builder metrics and registers them with the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodesEstimated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beam",
			Subsystem: "opt",
			Name:      "nodes_estimated_total",
			Help:      "Plan nodes whose statistics were derived.",
		}),
		UnknownPropagated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beam",
			Subsystem: "opt",
			Name:      "unknown_stats_total",
			Help:      "Plan nodes that ended up without a statistics estimate.",
		}),
		TableStatsSnapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beam",
			Subsystem: "opt",
			Name:      "table_stats_snapshots_total",
			Help:      "Base-statistics snapshots taken from sources.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.NodesEstimated, m.UnknownPropagated, m.TableStatsSnapshots)
	}
	return m
}

func (m *Metrics) incNodesEstimated() {
	if m != nil {
		m.NodesEstimated.Inc()
	}
}

func (m *Metrics) incUnknownPropagated() {
	if m != nil {
		m.UnknownPropagated.Inc()
	}
}

func (m *Metrics) incTableStatsSnapshots() {
	if m != nil {
		m.TableStatsSnapshots.Inc()
	}
}
