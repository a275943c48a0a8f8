// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

// Package testcat implements an in-memory catalog for testing purposes: test
// tables are created programmatically and publish whatever base statistics
// the test injects.
package testcat

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt/cat"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// Catalog implements a name-to-table registry over the cat interfaces for
// testing purposes.
type Catalog struct {
	dataSources map[string]*Table
}

var _ cat.Table = &Table{}

// New creates a new empty instance of the test catalog.
func New() *Catalog {
	return &Catalog{dataSources: make(map[string]*Table)}
}

// CreateTable registers a bounded test table with the given row count.
func (tc *Catalog) CreateTable(name string, sch *schema.Schema, rowCount float64) *Table {
	return tc.add(&Table{
		name:  name,
		sch:   sch,
		stats: cat.BoundedStatistics(rowCount),
	})
}

// CreateUnboundedTable registers a test stream arriving at the given rate
// (rows per second), estimated over the given window (seconds).
func (tc *Catalog) CreateUnboundedTable(
	name string, sch *schema.Schema, rate, window float64,
) *Table {
	return tc.add(&Table{
		name:  name,
		sch:   sch,
		stats: cat.UnboundedStatistics(rate, window),
	})
}

// CreateTableWithoutStatistics registers a test table that publishes no base
// statistics at all.
func (tc *Catalog) CreateTableWithoutStatistics(name string, sch *schema.Schema) *Table {
	return tc.add(&Table{name: name, sch: sch})
}

func (tc *Catalog) add(tab *Table) *Table {
	if _, ok := tc.dataSources[tab.name]; ok {
		panic(errors.AssertionFailedf("table %q already exists", tab.name))
	}
	tc.dataSources[tab.name] = tab
	return tab
}

// Table returns the test table with the given name.
func (tc *Catalog) Table(name string) (*Table, error) {
	if tab, ok := tc.dataSources[name]; ok {
		return tab, nil
	}
	return nil, errors.Newf("no table named %q", name)
}

// TableNames returns the sorted names of all registered tables.
func (tc *Catalog) TableNames() []string {
	names := make([]string, 0, len(tc.dataSources))
	for name := range tc.dataSources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table implements the cat.Table interface for testing purposes.
type Table struct {
	name  string
	sch   *schema.Schema
	stats *cat.TableStatistics
}

// Name is part of the cat.DataSource interface.
func (tt *Table) Name() string { return tt.name }

// Schema is part of the cat.DataSource interface.
func (tt *Table) Schema() *schema.Schema { return tt.sch }

// Statistics is part of the cat.Table interface.
func (tt *Table) Statistics() *cat.TableStatistics { return tt.stats }

// SetStatistics replaces the table's published statistics; tests use it to
// model a source whose publication changes between optimization passes.
func (tt *Table) SetStatistics(stats *cat.TableStatistics) { tt.stats = stats }
