// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package schema

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Datum is a constant value appearing in a plan: a literal in a projection or
// a comparison, or a cell of a Values relation.
type Datum interface {
	fmt.Stringer

	// ResolvedType returns the type of the datum.
	ResolvedType() *Type
}

// DBool is the boolean Datum.
type DBool bool

// DInt is the 64-bit integer Datum.
type DInt int64

// DFloat is the 64-bit float Datum.
type DFloat float64

// DDecimal is the arbitrary-precision decimal Datum.
type DDecimal struct {
	apd.Decimal
}

// DString is the string Datum.
type DString string

// DBytes is the byte array Datum.
type DBytes []byte

// DTimestamp is the timestamp Datum.
type DTimestamp struct {
	time.Time
}

// NewDDecimal constructs a decimal Datum from its string representation. It
// panics on malformed input; literals in plans are produced by a parser that
// has already validated them.
func NewDDecimal(s string) *DDecimal {
	d := &DDecimal{}
	if _, _, err := d.SetString(s); err != nil {
		panic(err)
	}
	return d
}

// ResolvedType is part of the Datum interface.
func (d DBool) ResolvedType() *Type { return Bool }

// ResolvedType is part of the Datum interface.
func (d DInt) ResolvedType() *Type { return Int64 }

// ResolvedType is part of the Datum interface.
func (d DFloat) ResolvedType() *Type { return Float64 }

// ResolvedType is part of the Datum interface.
func (d *DDecimal) ResolvedType() *Type { return Decimal }

// ResolvedType is part of the Datum interface.
func (d DString) ResolvedType() *Type { return String }

// ResolvedType is part of the Datum interface.
func (d DBytes) ResolvedType() *Type { return Bytes }

// ResolvedType is part of the Datum interface.
func (d *DTimestamp) ResolvedType() *Type { return Timestamp }

func (d DBool) String() string { return fmt.Sprintf("%v", bool(d)) }

func (d DInt) String() string { return fmt.Sprintf("%d", int64(d)) }

func (d DFloat) String() string { return fmt.Sprintf("%g", float64(d)) }

func (d *DDecimal) String() string { return d.Decimal.String() }

func (d DString) String() string { return fmt.Sprintf("%q", string(d)) }

func (d DBytes) String() string { return fmt.Sprintf("%x", []byte(d)) }

func (d *DTimestamp) String() string { return d.Format(time.RFC3339Nano) }
