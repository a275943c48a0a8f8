// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package opt

import "github.com/danielarn/beam/pkg/sql/schema"

// Expr is a node in an expression tree: either a relational operator that
// produces rows or a scalar expression nested inside one. All nodes are
// immutable once constructed, so trees can be shared freely.
type Expr interface {
	// Op returns the operator type of the expression.
	Op() Operator

	// ChildCount returns the number of children of the expression.
	ChildCount() int

	// Child returns the nth child of the expression.
	Child(nth int) Expr
}

// ScalarExpr is an Expr that computes a single value from the fields of an
// input row.
type ScalarExpr interface {
	Expr

	// DataType returns the type of the value the expression produces.
	DataType() *schema.Type
}
