// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/opt/props"
	"github.com/danielarn/beam/pkg/util/log"
)

var statsAnnID = opt.NewTableAnnID()

// statisticsBuilder derives the statistics estimate of each relational
// expression when the expression is constructed.
//
// Background
// ----------
//
// Conceptually, there are two kinds of statistics: table statistics and
// relational expression statistics.
//
// 1. Table statistics
//
// Table statistics are the numbers a source publishes about itself: a bounded
// table reports its row count, an unbounded stream reports an arrival rate
// and a default estimation window. They come from the catalog through
// cat.Table.Statistics and this package only consumes them. The first scan of
// a table converts the publication to a props.Statistics and caches it as a
// table annotation in opt.Metadata, so the numbers are snapshotted once per
// optimization pass no matter how many scans reference the table.
//
// 2. Relational expression statistics
//
// Relational expression statistics estimate how the base numbers change as
// operators are applied. Each operator kind has a buildXXX rule that
// transforms the statistics of the operator's immediate child into the
// operator's own; no rule ever looks below the immediate child, which keeps
// estimation O(1) per node and O(plan size) for a whole tree. The result is
// stored in the expression's relational properties.
//
// For example:
//
//	Query:    SELECT name FROM users WHERE id = 1
//
//	Plan:          Project name      [rows=0.75, rate=0, window=0.75]
//	                    |
//	               Select id=1       [rows=0.75, rate=0, window=0.75]
//	                    |
//	                Scan users       [rows=5, rate=0, window=5]
//
// The Scan takes the bounded publication (5 rows). The Select multiplies the
// row count and window by the selectivity of its conjunction (0.15 for one
// equality). The Project passes statistics through untouched.
//
// Estimates this crude are wrong in absolute terms and that is fine; what the
// surrounding optimizer needs is directional consistency, which the rules
// guarantee by construction: adding a conjunct can only shrink the estimate
// (factors multiply and every factor is at most 1), filtering never changes
// the arrival rate of an upstream stream, and a source that publishes nothing
// poisons every ancestor with "unknown" rather than inventing a number.
type statisticsBuilder struct {
	ctx     context.Context
	md      *opt.Metadata
	cfg     *Config
	metrics *Metrics
}

func (sb *statisticsBuilder) init(
	ctx context.Context, md *opt.Metadata, cfg *Config, metrics *Metrics,
) {
	// This initialization pattern ensures that fields are not unwittingly
	// reused. Field reuse must be explicit.
	*sb = statisticsBuilder{
		ctx:     ctx,
		md:      md,
		cfg:     cfg,
		metrics: metrics,
	}
}

// buildStats derives the statistics of the given expression from its
// immediate children and stores them in its relational properties.
func (sb *statisticsBuilder) buildStats(e RelExpr) {
	switch t := e.(type) {
	case *ScanExpr:
		sb.buildScan(t)
	case *ValuesExpr:
		sb.buildValues(t)
	case *SelectExpr:
		sb.buildSelect(t)
	case *ProjectExpr:
		sb.buildProject(t)
	case *CalcExpr:
		sb.buildCalc(t)
	case *UnionAllExpr:
		sb.buildUnionAll(t)
	default:
		panic(errors.AssertionFailedf("no statistics rule for %s", e.Op()))
	}

	sb.metrics.incNodesEstimated()
	stats := e.Relational().Stats
	if stats.IsUnknown() {
		sb.metrics.incUnknownPropagated()
	}
	if log.V(2) {
		log.VEventf(sb.ctx, 2, "estimated %s: %s", e.Op(), stats)
	}
}

// +------+
// | Scan |
// +------+

func (sb *statisticsBuilder) buildScan(scan *ScanExpr) {
	scan.rel.Stats = sb.makeTableStatistics(scan.Table)
}

// makeTableStatistics converts a source's raw publication into the internal
// statistics value. The result is cached as a metadata annotation so the
// publication is snapshotted at most once per optimization pass.
func (sb *statisticsBuilder) makeTableStatistics(tabID opt.TableID) props.Statistics {
	if stats, ok := sb.md.TableAnnotation(tabID, statsAnnID).(props.Statistics); ok {
		// Already snapshotted.
		return stats
	}

	tab := sb.md.Table(tabID)
	raw := tab.Statistics()
	sb.metrics.incTableStatsSnapshots()

	var stats props.Statistics
	switch {
	case raw == nil:
		// The source publishes nothing. This is the only case that yields
		// unknown: a published zero row count is a definite zero.
		log.Warningf(sb.ctx, "source %s has no statistics", tab.Name())
	case raw.Unbounded():
		stats = props.MakeUnboundedStatistics(raw.Rate(), raw.Window())
	default:
		stats = props.MakeBoundedStatistics(raw.RowCount())
	}

	sb.md.SetTableAnnotation(tabID, statsAnnID, stats)
	return stats
}

// +--------+
// | Values |
// +--------+

func (sb *statisticsBuilder) buildValues(values *ValuesExpr) {
	// Literal rows have an exact, bounded cardinality.
	values.rel.Stats = props.MakeBoundedStatistics(float64(len(values.Rows)))
}

// +--------+
// | Select |
// +--------+

func (sb *statisticsBuilder) buildSelect(sel *SelectExpr) {
	inputStats := sel.Input.Relational().Stats
	sel.rel.Stats = inputStats.ApplySelectivity(sb.selectivityFromFilters(sel.Filters))
}

// +---------+
// | Project |
// +---------+

func (sb *statisticsBuilder) buildProject(prj *ProjectExpr) {
	// A projection never changes cardinality, rate, or window.
	prj.rel.Stats = prj.Input.Relational().Stats
}

// +------+
// | Calc |
// +------+

func (sb *statisticsBuilder) buildCalc(calc *CalcExpr) {
	// The filter rule followed by the projection rule; the latter is a no-op
	// on statistics, so a Calc without filters behaves exactly like Project.
	inputStats := calc.Input.Relational().Stats
	calc.rel.Stats = inputStats.ApplySelectivity(sb.selectivityFromFilters(calc.Filters))
}

// +-----------+
// | Union All |
// +-----------+

func (sb *statisticsBuilder) buildUnionAll(union *UnionAllExpr) {
	leftStats := union.Left.Relational().Stats
	rightStats := union.Right.Relational().Stats
	union.rel.Stats = leftStats.Add(rightStats)
}

// +-------------------+
// | Selectivity model |
// +-------------------+

// selectivityFromFilters returns the combined factor of a conjunction: the
// product of the factors of its conjuncts, under the usual independence
// assumption. The product form is what makes cardinality monotone under AND:
// every factor is at most 1, so adding a conjunct can only shrink the
// estimate.
func (sb *statisticsBuilder) selectivityFromFilters(filters FiltersExpr) props.Selectivity {
	selectivity := props.OneSelectivity
	for i := range filters {
		selectivity.Multiply(sb.selectivityFromCondition(filters[i].Condition))
	}
	return selectivity
}

// selectivityFromCondition classifies a single condition:
//
//   - equality (=): Config.EqualitySelectivity
//   - one-sided comparison (<, <=, >, >=): Config.ComparisonSelectivity
//   - top-level AND: the product of its flattened conjuncts
//   - anything else (OR, NOT, !=, function calls, opaque expressions,
//     constants, bare variables): 1.0
//
// The model never invents selectivity for a shape it cannot classify, and it
// never fails: an unsupported condition is an uninformative estimate, not an
// error.
func (sb *statisticsBuilder) selectivityFromCondition(cond opt.ScalarExpr) props.Selectivity {
	switch t := cond.(type) {
	case *ComparisonExpr:
		switch {
		case t.CmpOp == opt.EqOp:
			return props.MakeSelectivity(sb.cfg.EqualitySelectivity)
		case t.CmpOp.IsSingleSidedComparison():
			return props.MakeSelectivity(sb.cfg.ComparisonSelectivity)
		}

	case *AndExpr:
		// Flatten nested conjunctions so `a AND b` contributes the same
		// factor written as one condition or as two.
		selectivity := sb.selectivityFromCondition(t.Left)
		selectivity.Multiply(sb.selectivityFromCondition(t.Right))
		return selectivity
	}

	return props.OneSelectivity
}
