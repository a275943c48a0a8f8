// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// VariableExpr is a reference to an input field by path. A path of length
// one names a top-level field; longer paths descend into nested rows. The
// variable's type is bound when the enclosing relational operator is
// constructed, by resolving the path against the operator's input schema.
type VariableExpr struct {
	Path schema.FieldPath

	typ *schema.Type
}

// ConstExpr is a literal constant.
type ConstExpr struct {
	Value schema.Datum
}

// AndExpr is boolean conjunction.
type AndExpr struct {
	Left  opt.ScalarExpr
	Right opt.ScalarExpr
}

// OrExpr is boolean disjunction.
type OrExpr struct {
	Left  opt.ScalarExpr
	Right opt.ScalarExpr
}

// NotExpr is boolean negation.
type NotExpr struct {
	Input opt.ScalarExpr
}

// ComparisonExpr is a binary comparison between two scalar operands. The
// specific comparison is carried in CmpOp rather than in distinct struct
// types; the selectivity model and the field-access derivation only dispatch
// on the operator anyway.
type ComparisonExpr struct {
	CmpOp opt.Operator
	Left  opt.ScalarExpr
	Right opt.ScalarExpr
}

// FunctionExpr is an invocation of a named function whose field dependencies
// are statically analyzable: it reads exactly what its arguments read.
type FunctionExpr struct {
	Name string
	Typ  *schema.Type
	Args []opt.ScalarExpr
}

// UnsupportedExpr wraps opaque user code the planner cannot analyze. Its
// selectivity is taken as 1.0 and any operator containing it must assume the
// whole input row is read.
type UnsupportedExpr struct {
	Typ *schema.Type
}

// Op is part of the opt.Expr interface.
func (e *VariableExpr) Op() opt.Operator { return opt.VariableOp }

// ChildCount is part of the opt.Expr interface.
func (e *VariableExpr) ChildCount() int { return 0 }

// Child is part of the opt.Expr interface.
func (e *VariableExpr) Child(nth int) opt.Expr { panic(childIndexError(e, nth)) }

// DataType is part of the opt.ScalarExpr interface. It panics if the
// variable has not yet been bound to an input schema by a relational
// constructor.
func (e *VariableExpr) DataType() *schema.Type {
	if e.typ == nil {
		panic(errors.AssertionFailedf("variable %q is not bound to a schema", e.Path))
	}
	return e.typ
}

// Op is part of the opt.Expr interface.
func (e *ConstExpr) Op() opt.Operator { return opt.ConstOp }

// ChildCount is part of the opt.Expr interface.
func (e *ConstExpr) ChildCount() int { return 0 }

// Child is part of the opt.Expr interface.
func (e *ConstExpr) Child(nth int) opt.Expr { panic(childIndexError(e, nth)) }

// DataType is part of the opt.ScalarExpr interface.
func (e *ConstExpr) DataType() *schema.Type { return e.Value.ResolvedType() }

// Op is part of the opt.Expr interface.
func (e *AndExpr) Op() opt.Operator { return opt.AndOp }

// ChildCount is part of the opt.Expr interface.
func (e *AndExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *AndExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Left
	case 1:
		return e.Right
	}
	panic(childIndexError(e, nth))
}

// DataType is part of the opt.ScalarExpr interface.
func (e *AndExpr) DataType() *schema.Type { return schema.Bool }

// Op is part of the opt.Expr interface.
func (e *OrExpr) Op() opt.Operator { return opt.OrOp }

// ChildCount is part of the opt.Expr interface.
func (e *OrExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *OrExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Left
	case 1:
		return e.Right
	}
	panic(childIndexError(e, nth))
}

// DataType is part of the opt.ScalarExpr interface.
func (e *OrExpr) DataType() *schema.Type { return schema.Bool }

// Op is part of the opt.Expr interface.
func (e *NotExpr) Op() opt.Operator { return opt.NotOp }

// ChildCount is part of the opt.Expr interface.
func (e *NotExpr) ChildCount() int { return 1 }

// Child is part of the opt.Expr interface.
func (e *NotExpr) Child(nth int) opt.Expr {
	if nth == 0 {
		return e.Input
	}
	panic(childIndexError(e, nth))
}

// DataType is part of the opt.ScalarExpr interface.
func (e *NotExpr) DataType() *schema.Type { return schema.Bool }

// Op is part of the opt.Expr interface.
func (e *ComparisonExpr) Op() opt.Operator { return e.CmpOp }

// ChildCount is part of the opt.Expr interface.
func (e *ComparisonExpr) ChildCount() int { return 2 }

// Child is part of the opt.Expr interface.
func (e *ComparisonExpr) Child(nth int) opt.Expr {
	switch nth {
	case 0:
		return e.Left
	case 1:
		return e.Right
	}
	panic(childIndexError(e, nth))
}

// DataType is part of the opt.ScalarExpr interface.
func (e *ComparisonExpr) DataType() *schema.Type { return schema.Bool }

// Op is part of the opt.Expr interface.
func (e *FunctionExpr) Op() opt.Operator { return opt.FunctionOp }

// ChildCount is part of the opt.Expr interface.
func (e *FunctionExpr) ChildCount() int { return len(e.Args) }

// Child is part of the opt.Expr interface.
func (e *FunctionExpr) Child(nth int) opt.Expr { return e.Args[nth] }

// DataType is part of the opt.ScalarExpr interface.
func (e *FunctionExpr) DataType() *schema.Type { return e.Typ }

// Op is part of the opt.Expr interface.
func (e *UnsupportedExpr) Op() opt.Operator { return opt.UnsupportedOp }

// ChildCount is part of the opt.Expr interface.
func (e *UnsupportedExpr) ChildCount() int { return 0 }

// Child is part of the opt.Expr interface.
func (e *UnsupportedExpr) Child(nth int) opt.Expr { panic(childIndexError(e, nth)) }

// DataType is part of the opt.ScalarExpr interface.
func (e *UnsupportedExpr) DataType() *schema.Type { return e.Typ }

// Walk visits e and all of its descendants in depth-first preorder. If fn
// returns false for a node, that node's children are skipped.
func Walk(e opt.Expr, fn func(opt.Expr) bool) {
	if !fn(e) {
		return
	}
	for i, n := 0, e.ChildCount(); i < n; i++ {
		Walk(e.Child(i), fn)
	}
}
