// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package opt

import "github.com/cockroachdb/errors"

// Operator describes the type of operation that a node in an expression tree
// performs. Relational operators produce rows; scalar operators are the
// building blocks of filter and projection expressions.
type Operator uint16

const (
	// UnknownOp should never be used; it exists so the zero Operator is
	// detectably invalid.
	UnknownOp Operator = iota

	// ------------------------------------------------------------
	// Relational operators.
	// ------------------------------------------------------------

	// ScanOp reads rows from a source registered in the metadata.
	ScanOp

	// ValuesOp produces a fixed, literal set of rows.
	ValuesOp

	// SelectOp filters the rows of its input by a conjunction of conditions.
	SelectOp

	// ProjectOp replaces the columns of its input with computed columns.
	ProjectOp

	// CalcOp is the fused filter+projection operator: it applies an optional
	// conjunction of conditions and then computes output columns, in one pass.
	CalcOp

	// UnionAllOp concatenates the rows of its two inputs without
	// deduplication.
	UnionAllOp

	// ------------------------------------------------------------
	// Scalar operators.
	// ------------------------------------------------------------

	// VariableOp is a reference to an input field, possibly nested.
	VariableOp

	// ConstOp is a literal constant value.
	ConstOp

	// AndOp is boolean conjunction.
	AndOp

	// OrOp is boolean disjunction.
	OrOp

	// NotOp is boolean negation.
	NotOp

	// EqOp is the equality comparison.
	EqOp

	// NeOp is the inequality comparison.
	NeOp

	// LtOp is the less-than comparison.
	LtOp

	// GtOp is the greater-than comparison.
	GtOp

	// LeOp is the less-than-or-equal comparison.
	LeOp

	// GeOp is the greater-than-or-equal comparison.
	GeOp

	// FunctionOp is an invocation of a named, statically analyzable function:
	// it reads exactly the fields its arguments read.
	FunctionOp

	// UnsupportedOp wraps opaque user code that cannot be statically
	// analyzed. Its field accesses are unknown, so any operator containing it
	// must assume the whole input row is read.
	UnsupportedOp

	// FiltersOp is the list of conjuncts applied by Select and Calc.
	FiltersOp

	// FiltersItemOp is a single conjunct in a FiltersOp list.
	FiltersItemOp

	// ProjectionsOp is the list of computed output columns of Project and
	// Calc.
	ProjectionsOp

	// ProjectionsItemOp is a single computed output column.
	ProjectionsItemOp

	// NumOperators tracks the count of operators.
	NumOperators
)

var opNames = [...]string{
	UnknownOp:         "unknown",
	ScanOp:            "scan",
	ValuesOp:          "values",
	SelectOp:          "select",
	ProjectOp:         "project",
	CalcOp:            "calc",
	UnionAllOp:        "union-all",
	VariableOp:        "variable",
	ConstOp:           "const",
	AndOp:             "and",
	OrOp:              "or",
	NotOp:             "not",
	EqOp:              "eq",
	NeOp:              "ne",
	LtOp:              "lt",
	GtOp:              "gt",
	LeOp:              "le",
	GeOp:              "ge",
	FunctionOp:        "function",
	UnsupportedOp:     "unsupported",
	FiltersOp:         "filters",
	FiltersItemOp:     "filters-item",
	ProjectionsOp:     "projections",
	ProjectionsItemOp: "projections-item",
}

func (op Operator) String() string {
	if op >= NumOperators {
		panic(errors.AssertionFailedf("unknown operator %d", int(op)))
	}
	return opNames[op]
}

// IsComparison returns true if the operator is a binary comparison.
func (op Operator) IsComparison() bool {
	switch op {
	case EqOp, NeOp, LtOp, GtOp, LeOp, GeOp:
		return true
	}
	return false
}

// IsSingleSidedComparison returns true if the operator constrains its column
// from one side only (<, <=, >, >=). Equality and inequality are excluded.
func (op Operator) IsSingleSidedComparison() bool {
	switch op {
	case LtOp, GtOp, LeOp, GeOp:
		return true
	}
	return false
}
