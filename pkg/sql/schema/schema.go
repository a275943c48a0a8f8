// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package schema

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Family groups types by the kind of value they hold. Row is the only
// composite family; a Row-typed field carries its own nested Schema.
type Family int

const (
	// BoolFamily is the family of boolean types.
	BoolFamily Family = iota
	// IntFamily is the family of signed integer types.
	IntFamily
	// FloatFamily is the family of floating point types.
	FloatFamily
	// DecimalFamily is the family of arbitrary-precision decimal types.
	DecimalFamily
	// StringFamily is the family of character string types.
	StringFamily
	// BytesFamily is the family of raw byte array types.
	BytesFamily
	// TimestampFamily is the family of timestamp types.
	TimestampFamily
	// RowFamily is the family of nested record types.
	RowFamily
)

// Type describes the type of a single field in a row. Scalar types are
// available as the package-level singletons below; nested record types are
// created with MakeRowType.
type Type struct {
	family Family
	width  int
	row    *Schema
}

var (
	// Bool is the boolean field type.
	Bool = &Type{family: BoolFamily}
	// Int32 is the 32-bit signed integer field type.
	Int32 = &Type{family: IntFamily, width: 32}
	// Int64 is the 64-bit signed integer field type.
	Int64 = &Type{family: IntFamily, width: 64}
	// Float64 is the 64-bit floating point field type.
	Float64 = &Type{family: FloatFamily, width: 64}
	// Decimal is the arbitrary-precision decimal field type.
	Decimal = &Type{family: DecimalFamily}
	// String is the character string field type.
	String = &Type{family: StringFamily}
	// Bytes is the raw byte array field type.
	Bytes = &Type{family: BytesFamily}
	// Timestamp is the timestamp field type.
	Timestamp = &Type{family: TimestampFamily}
)

// MakeRowType returns a nested record type with the given schema.
func MakeRowType(sch *Schema) *Type {
	if sch == nil {
		panic(errors.AssertionFailedf("row type requires a schema"))
	}
	return &Type{family: RowFamily, row: sch}
}

// Family returns the type's family.
func (t *Type) Family() Family { return t.family }

// Width returns the size in bits for sized scalar types, and 0 otherwise.
func (t *Type) Width() int { return t.width }

// RowSchema returns the nested schema of a Row-typed field. It panics if the
// type is not in RowFamily.
func (t *Type) RowSchema() *Schema {
	if t.family != RowFamily {
		panic(errors.AssertionFailedf("RowSchema called on non-row type %s", t))
	}
	return t.row
}

func (t *Type) String() string {
	switch t.family {
	case BoolFamily:
		return "bool"
	case IntFamily:
		return fmt.Sprintf("int%d", t.width)
	case FloatFamily:
		return fmt.Sprintf("float%d", t.width)
	case DecimalFamily:
		return "decimal"
	case StringFamily:
		return "string"
	case BytesFamily:
		return "bytes"
	case TimestampFamily:
		return "timestamp"
	case RowFamily:
		return fmt.Sprintf("row%s", t.row)
	default:
		panic(errors.AssertionFailedf("unknown type family %d", t.family))
	}
}

// Field is a single named, typed slot in a row schema.
type Field struct {
	Name string
	Typ  *Type
}

// Schema is an ordered list of named fields describing the shape of the rows
// flowing out of a relational operator or a registered source. Schemas are
// immutable once constructed.
type Schema struct {
	fields []Field
}

// NewSchema constructs a schema from the given fields. Field names must be
// non-empty and unique within the schema.
func NewSchema(fields ...Field) *Schema {
	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		if fields[i].Name == "" {
			panic(errors.AssertionFailedf("schema field %d has an empty name", i))
		}
		if fields[i].Typ == nil {
			panic(errors.AssertionFailedf("schema field %q has no type", fields[i].Name))
		}
		if _, ok := seen[fields[i].Name]; ok {
			panic(errors.AssertionFailedf("duplicate schema field %q", fields[i].Name))
		}
		seen[fields[i].Name] = struct{}{}
	}
	return &Schema{fields: fields}
}

// FieldCount returns the number of fields in the schema.
func (s *Schema) FieldCount() int { return len(s.fields) }

// Field returns the field at the given ordinal position.
func (s *Schema) Field(i int) Field { return s.fields[i] }

// Lookup returns the field with the given name, if it exists.
func (s *Schema) Lookup(name string) (_ Field, ok bool) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return s.fields[i], true
		}
	}
	return Field{}, false
}

// FieldNames returns the schema's field names in ordinal order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i := range s.fields {
		names[i] = s.fields[i].Name
	}
	return names
}

func (s *Schema) String() string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i := range s.fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s %s", s.fields[i].Name, s.fields[i].Typ)
	}
	buf.WriteByte(')')
	return buf.String()
}
