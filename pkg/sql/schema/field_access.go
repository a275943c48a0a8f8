// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package schema

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrSchemaMismatch is reported when a declared field path does not exist in
// the schema it is resolved against. Callers detect it with errors.Is. It is
// never swallowed by resolution: a declared access that does not match the
// input would otherwise corrupt column pruning and drop data the computation
// actually reads.
var ErrSchemaMismatch = errors.New("declared field access does not match schema")

// FieldPath is a non-empty sequence of field names addressing a (possibly
// nested) field in a schema. A path of length one names a top-level field;
// each subsequent segment descends into a Row-typed field.
type FieldPath []string

// MakeFieldPath constructs a field path from the given segments.
func MakeFieldPath(segments ...string) FieldPath {
	if len(segments) == 0 {
		panic(errors.AssertionFailedf("field path must have at least one segment"))
	}
	return FieldPath(segments)
}

// ParseFieldPath constructs a field path from a dotted name like "addr.zip".
func ParseFieldPath(dotted string) FieldPath {
	return MakeFieldPath(strings.Split(dotted, ".")...)
}

// Equals returns true if the two paths have identical segments.
func (p FieldPath) Equals(other FieldPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if prefix is a leading sub-path of p (or equal to
// it).
func (p FieldPath) HasPrefix(prefix FieldPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (p FieldPath) String() string { return strings.Join(p, ".") }

// FieldAccessDescriptor declares which input fields a computation reads. It
// has three states:
//
//   - AllFields: the computation may read anything (column pruning disabled).
//   - NoFields: the computation reads no input at all (constant output).
//   - Explicit: the computation reads exactly the declared paths.
//
// A descriptor is built once when the operator is analyzed at plan-compile
// time and is immutable afterwards. Before the executor can act on it, it
// must be resolved against the operator's concrete input schema with Resolve,
// which validates every declared path and fails with ErrSchemaMismatch on any
// path the schema cannot satisfy.
type FieldAccessDescriptor struct {
	all      bool
	paths    []FieldPath
	resolved bool
}

// MakeAllFieldsAccess returns the descriptor declaring access to every field.
func MakeAllFieldsAccess() FieldAccessDescriptor {
	return FieldAccessDescriptor{all: true}
}

// MakeNoFieldsAccess returns the descriptor declaring access to no fields.
func MakeNoFieldsAccess() FieldAccessDescriptor {
	return FieldAccessDescriptor{}
}

// MakeFieldAccess returns the descriptor declaring access to exactly the
// given paths. With no paths it is equivalent to MakeNoFieldsAccess.
func MakeFieldAccess(paths ...FieldPath) FieldAccessDescriptor {
	for _, p := range paths {
		if len(p) == 0 {
			panic(errors.AssertionFailedf("field access declares an empty path"))
		}
	}
	return FieldAccessDescriptor{paths: paths}
}

// AllFields returns true if the descriptor declares access to every field.
func (d FieldAccessDescriptor) AllFields() bool { return d.all }

// NoFields returns true if the descriptor declares access to no fields.
func (d FieldAccessDescriptor) NoFields() bool { return !d.all && len(d.paths) == 0 }

// Resolved returns true if the descriptor has been validated against a
// schema.
func (d FieldAccessDescriptor) Resolved() bool { return d.resolved }

// Union combines the dependency sets of two descriptors: the result declares
// every field either input declares. AllFields absorbs everything. Union is
// used when an operator hosts several sub-expressions that each declare their
// own access and the operator needs the combined set.
func (d FieldAccessDescriptor) Union(other FieldAccessDescriptor) FieldAccessDescriptor {
	if d.all || other.all {
		return MakeAllFieldsAccess()
	}
	merged := make([]FieldPath, 0, len(d.paths)+len(other.paths))
	merged = append(merged, d.paths...)
	merged = append(merged, other.paths...)
	return FieldAccessDescriptor{paths: merged}
}

// Resolve validates the descriptor against a concrete input schema.
// AllFields and NoFields resolve to themselves against any schema. An
// explicit descriptor checks every declared path segment by segment: each
// segment must name a field at its nesting level, and every non-final
// segment must be Row-typed. A path the schema cannot satisfy fails with an
// error marked ErrSchemaMismatch.
//
// Resolution normalizes the declared paths: exact duplicates are dropped, a
// path covered by a shorter declared prefix is pruned (declaring "a" and
// "a.b" resolves to just "a"), and first-occurrence order is preserved.
func (d FieldAccessDescriptor) Resolve(sch *Schema) (FieldAccessDescriptor, error) {
	if sch == nil {
		return FieldAccessDescriptor{}, errors.AssertionFailedf("resolving field access against nil schema")
	}
	if d.all || len(d.paths) == 0 {
		res := d
		res.resolved = true
		return res, nil
	}
	for _, p := range d.paths {
		if err := checkPath(p, sch); err != nil {
			return FieldAccessDescriptor{}, err
		}
	}
	return FieldAccessDescriptor{paths: normalizePaths(d.paths), resolved: true}, nil
}

// checkPath walks one declared path through the schema.
func checkPath(p FieldPath, sch *Schema) error {
	_, err := sch.TypeOf(p)
	return err
}

// TypeOf returns the type of the field addressed by the given path,
// descending through nested rows segment by segment. A path the schema
// cannot satisfy fails with an error marked ErrSchemaMismatch.
func (s *Schema) TypeOf(p FieldPath) (*Type, error) {
	if len(p) == 0 {
		return nil, errors.AssertionFailedf("empty field path")
	}
	cur := s
	for i, seg := range p {
		field, ok := cur.Lookup(seg)
		if !ok {
			return nil, errors.Mark(
				errors.Newf("field %q of path %q not found in schema %s", seg, p, cur),
				ErrSchemaMismatch,
			)
		}
		if i == len(p)-1 {
			return field.Typ, nil
		}
		if field.Typ.Family() != RowFamily {
			return nil, errors.Mark(
				errors.Newf("field %q of path %q is not a nested row (type %s)", seg, p, field.Typ),
				ErrSchemaMismatch,
			)
		}
		cur = field.Typ.RowSchema()
	}
	panic("unreachable")
}

// normalizePaths deduplicates and prefix-prunes a validated path list,
// keeping first-occurrence order.
func normalizePaths(paths []FieldPath) []FieldPath {
	out := make([]FieldPath, 0, len(paths))
	for _, p := range paths {
		covered := false
		for _, kept := range out {
			if p.HasPrefix(kept) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		// A shorter path subsumes any longer ones already kept.
		filtered := out[:0]
		for _, kept := range out {
			if !kept.HasPrefix(p) {
				filtered = append(filtered, kept)
			}
		}
		out = append(filtered, p)
	}
	return out
}

// FieldsAccessed returns the names of the top-level fields accessed directly
// (declared paths of depth one). Empty for AllFields and NoFields.
func (d FieldAccessDescriptor) FieldsAccessed() []string {
	var names []string
	for _, p := range d.paths {
		if len(p) == 1 {
			names = append(names, p[0])
		}
	}
	return names
}

// NestedFieldsAccessed returns the declared paths that descend into nested
// rows (depth greater than one). Empty for AllFields and NoFields.
func (d FieldAccessDescriptor) NestedFieldsAccessed() []FieldPath {
	var nested []FieldPath
	for _, p := range d.paths {
		if len(p) > 1 {
			nested = append(nested, p)
		}
	}
	return nested
}

// FieldNamesAccessed returns the dotted names of every accessed path, in
// declaration order. It is only meaningful after resolution, since until then
// the path list may contain duplicates or unvalidated names.
func (d FieldAccessDescriptor) FieldNamesAccessed() []string {
	if !d.resolved {
		panic(errors.AssertionFailedf("FieldNamesAccessed called on unresolved descriptor"))
	}
	names := make([]string, len(d.paths))
	for i, p := range d.paths {
		names[i] = p.String()
	}
	return names
}

// ReferencesSingleField returns true if the descriptor accesses exactly one
// top-level field and nothing below it.
func (d FieldAccessDescriptor) ReferencesSingleField() bool {
	return !d.all && len(d.paths) == 1 && len(d.paths[0]) == 1
}

func (d FieldAccessDescriptor) String() string {
	if d.all {
		return "(all fields)"
	}
	if len(d.paths) == 0 {
		return "(no fields)"
	}
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, p := range d.paths {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteByte(')')
	return buf.String()
}
