// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaLookup(t *testing.T) {
	sch := NewSchema(
		Field{Name: "id", Typ: Int64},
		Field{Name: "site", Typ: Int64},
		Field{Name: "name", Typ: String},
	)
	require.Equal(t, 3, sch.FieldCount())

	f, ok := sch.Lookup("site")
	require.True(t, ok)
	require.Equal(t, Int64, f.Typ)

	_, ok = sch.Lookup("missing")
	require.False(t, ok)

	require.Equal(t, []string{"id", "site", "name"}, sch.FieldNames())
	require.Equal(t, "(id int64, site int64, name string)", sch.String())
}

func TestSchemaValidation(t *testing.T) {
	require.Panics(t, func() {
		NewSchema(Field{Name: "a", Typ: Int64}, Field{Name: "a", Typ: String})
	})
	require.Panics(t, func() {
		NewSchema(Field{Name: "", Typ: Int64})
	})
	require.Panics(t, func() {
		NewSchema(Field{Name: "a"})
	})
}

func TestRowType(t *testing.T) {
	inner := NewSchema(Field{Name: "x", Typ: Float64})
	row := MakeRowType(inner)
	require.Equal(t, RowFamily, row.Family())
	require.Equal(t, inner, row.RowSchema())
	require.Equal(t, "row(x float64)", row.String())

	require.Panics(t, func() { Int64.RowSchema() })
}

func TestDatumTypes(t *testing.T) {
	require.Equal(t, Bool, DBool(true).ResolvedType())
	require.Equal(t, Int64, DInt(42).ResolvedType())
	require.Equal(t, Float64, DFloat(1.5).ResolvedType())
	require.Equal(t, String, DString("x").ResolvedType())
	require.Equal(t, Decimal, NewDDecimal("1.25").ResolvedType())
	require.Equal(t, "1.25", NewDDecimal("1.25").String())
	require.Equal(t, "42", DInt(42).String())
}
