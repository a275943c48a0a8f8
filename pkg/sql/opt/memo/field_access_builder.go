// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// DeriveFieldAccess computes the field-access declaration of a fused
// filter+projection computation: the union of every field referenced by the
// filter conjuncts and every field referenced by the projection elements.
//
//   - If any sub-expression is opaque (UnsupportedOp), static analysis is
//     impossible and the whole declaration degrades to AllFields, disabling
//     column pruning for the operator.
//   - If nothing references a field (a constant-only computation), the
//     declaration is NoFields.
//   - Otherwise the declaration lists exactly the referenced paths, in
//     left-to-right visit order.
//
// The result is a declaration, not yet checked against any schema; callers
// resolve it against the operator's input schema.
func DeriveFieldAccess(filters FiltersExpr, projections ProjectionsExpr) schema.FieldAccessDescriptor {
	var paths []schema.FieldPath
	opaque := false

	visit := func(e opt.Expr) bool {
		switch t := e.(type) {
		case *UnsupportedExpr:
			opaque = true
			return false
		case *VariableExpr:
			paths = append(paths, t.Path)
		}
		return !opaque
	}

	Walk(&filters, visit)
	if !opaque {
		Walk(&projections, visit)
	}

	if opaque {
		return schema.MakeAllFieldsAccess()
	}
	return schema.MakeFieldAccess(paths...)
}
