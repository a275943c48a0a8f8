// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/opt/props"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// RelExpr is implemented by all relational expressions: operators that
// produce rows. Expressions are constructed by a Factory, which derives the
// logical properties (output schema, statistics) bottom-up at construction
// time; they are immutable afterwards.
type RelExpr interface {
	opt.Expr

	// Relational returns the relational properties of the expression, derived
	// when the expression was constructed.
	Relational() *props.Relational
}

// GetNodeStats returns the statistics estimate for a plan node. Statistics
// are derived once, bottom-up, when the node is constructed; this lookup is
// cheap and deterministic, so callers may memoize it or not as they please.
func GetNodeStats(e RelExpr) props.Statistics {
	return e.Relational().Statistics()
}

// ------------------------------------------------------------
// Relational expressions.
// ------------------------------------------------------------

// ScanExpr reads all rows from a source registered in the metadata.
type ScanExpr struct {
	// Table identifies the source table within the metadata.
	Table opt.TableID

	rel props.Relational
}

// ValuesExpr produces a fixed, literal set of rows.
type ValuesExpr struct {
	// Rows holds the literal rows, each with one datum per schema field.
	Rows [][]schema.Datum

	rel props.Relational
}

// SelectExpr filters the rows of its input by a conjunction of conditions.
type SelectExpr struct {
	Input   RelExpr
	Filters FiltersExpr

	rel props.Relational
}

// ProjectExpr replaces the columns of its input with computed columns. It
// never changes cardinality.
type ProjectExpr struct {
	Input       RelExpr
	Projections ProjectionsExpr

	rel props.Relational
}

// CalcExpr is the fused filter+projection operator: an optional conjunction
// of conditions followed by column computation, in one pass over each row.
// With no filters it behaves exactly like Project.
type CalcExpr struct {
	Input       RelExpr
	Filters     FiltersExpr
	Projections ProjectionsExpr

	// fieldAccess is the set of input fields the fused computation reads,
	// derived and resolved against the input schema at construction time. The
	// executor consumes it to prune unread columns before materializing rows.
	fieldAccess schema.FieldAccessDescriptor

	rel props.Relational
}

// UnionAllExpr concatenates the rows of its two inputs.
type UnionAllExpr struct {
	Left  RelExpr
	Right RelExpr

	rel props.Relational
}

// FieldAccess returns the resolved field-access descriptor of the fused
// computation.
func (e *CalcExpr) FieldAccess() schema.FieldAccessDescriptor {
	return e.fieldAccess
}

// Op is part of the opt.Expr interface.
func (e *ScanExpr) Op() opt.Operator { return opt.ScanOp }

// ChildCount is part of the opt.Expr interface.
func (e *ScanExpr) ChildCount() int { return 0 }

// Child is part of the opt.Expr interface.
func (e *ScanExpr) Child(nth int) opt.Expr { panic(childIndexError(e, nth)) }

// Relational is part of the RelExpr interface.
func (e *ScanExpr) Relational() *props.Relational { return &e.rel }

// Op is part of the opt.Expr interface.
func (e *ValuesExpr) Op() opt.Operator { return opt.ValuesOp }

// ChildCount is part of the opt.Expr interface.
func (e *ValuesExpr) ChildCount() int { return 0 }

// Child is part of the opt.Expr interface.
func (e *ValuesExpr) Child(nth int) opt.Expr { panic(childIndexError(e, nth)) }

// Relational is part of the RelExpr interface.
func (e *ValuesExpr) Relational() *props.Relational { return &e.rel }

// Op is part of the opt.Expr interface.
func (e *SelectExpr) Op() opt.Operator { return opt.SelectOp }

// ChildCount is part of the opt.Expr interface.
func (e *SelectExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *SelectExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Input
	case 1:
		return &e.Filters
	}
	panic(childIndexError(e, nth))
}

// Relational is part of the RelExpr interface.
func (e *SelectExpr) Relational() *props.Relational { return &e.rel }

// Op is part of the opt.Expr interface.
func (e *ProjectExpr) Op() opt.Operator { return opt.ProjectOp }

// ChildCount is part of the opt.Expr interface.
func (e *ProjectExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *ProjectExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Input
	case 1:
		return &e.Projections
	}
	panic(childIndexError(e, nth))
}

// Relational is part of the RelExpr interface.
func (e *ProjectExpr) Relational() *props.Relational { return &e.rel }

// Op is part of the opt.Expr interface.
func (e *CalcExpr) Op() opt.Operator { return opt.CalcOp }

// ChildCount is part of the opt.Expr interface.
func (e *CalcExpr) ChildCount() int { return 3 }

// Child is part of the opt.Expr interface.
func (e *CalcExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Input
	case 1:
		return &e.Filters
	case 2:
		return &e.Projections
	}
	panic(childIndexError(e, nth))
}

// Relational is part of the RelExpr interface.
func (e *CalcExpr) Relational() *props.Relational { return &e.rel }

// Op is part of the opt.Expr interface.
func (e *UnionAllExpr) Op() opt.Operator { return opt.UnionAllOp }

// ChildCount is part of the opt.Expr interface.
func (e *UnionAllExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *UnionAllExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Left
	case 1:
		return e.Right
	}
	panic(childIndexError(e, nth))
}

// Relational is part of the RelExpr interface.
func (e *UnionAllExpr) Relational() *props.Relational { return &e.rel }

// ------------------------------------------------------------
// Filter and projection lists.
// ------------------------------------------------------------

// FiltersExpr is the ordered conjunction of conditions applied by Select and
// Calc. An empty list filters nothing.
type FiltersExpr []FiltersItem

// FiltersItem is one conjunct in a FiltersExpr.
type FiltersItem struct {
	Condition opt.ScalarExpr
}

// ProjectionsExpr is the ordered list of computed output columns of Project
// and Calc.
type ProjectionsExpr []ProjectionsItem

// ProjectionsItem is one computed output column: an element expression and
// the name of the output field it populates.
type ProjectionsItem struct {
	Element opt.ScalarExpr
	Alias   string
}

// Op is part of the opt.Expr interface.
func (e *FiltersExpr) Op() opt.Operator { return opt.FiltersOp }

// ChildCount is part of the opt.Expr interface.
func (e *FiltersExpr) ChildCount() int { return len(*e) }

// Child is part of the opt.Expr interface.
func (e *FiltersExpr) Child(nth int) opt.Expr { return &(*e)[nth] }

// Op is part of the opt.Expr interface.
func (e *FiltersItem) Op() opt.Operator { return opt.FiltersItemOp }

// ChildCount is part of the opt.Expr interface.
func (e *FiltersItem) ChildCount() int { return 1 }

// Child is part of the opt.Expr interface.
func (e *FiltersItem) Child(nth int) opt.Expr {
	if nth == 0 {
		return e.Condition
	}
	panic(childIndexError(e, nth))
}

// Op is part of the opt.Expr interface.
func (e *ProjectionsExpr) Op() opt.Operator { return opt.ProjectionsOp }

// ChildCount is part of the opt.Expr interface.
func (e *ProjectionsExpr) ChildCount() int { return len(*e) }

// Child is part of the opt.Expr interface.
func (e *ProjectionsExpr) Child(nth int) opt.Expr { return &(*e)[nth] }

// Op is part of the opt.Expr interface.
func (e *ProjectionsItem) Op() opt.Operator { return opt.ProjectionsItemOp }

// ChildCount is part of the opt.Expr interface.
func (e *ProjectionsItem) ChildCount() int { return 1 }

// Child is part of the opt.Expr interface.
func (e *ProjectionsItem) Child(nth int) opt.Expr {
	if nth == 0 {
		return e.Element
	}
	panic(childIndexError(e, nth))
}

func childIndexError(e opt.Expr, nth int) error {
	return errors.AssertionFailedf("child index %d out of range for %s", nth, e.Op())
}
