// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/util/humanizeutil"
	"github.com/danielarn/beam/pkg/util/treeprinter"
	"github.com/olekukonko/tablewriter"
)

// FormatExpr returns a tree rendering of a plan with the derived properties
// of each relational node, for debugging and datadriven tests.
func FormatExpr(f *Factory, e RelExpr) string {
	tp := treeprinter.New()
	formatRelational(f, e, tp)
	return tp.String()
}

func formatRelational(f *Factory, e RelExpr, tp treeprinter.Node) {
	var node treeprinter.Node
	switch t := e.(type) {
	case *ScanExpr:
		node = tp.Childf("scan %s", f.Metadata().Table(t.Table).Name())
	case *ValuesExpr:
		node = tp.Childf("values (%d rows)", len(t.Rows))
	default:
		node = tp.Child(e.Op().String())
	}

	rel := e.Relational()
	node.Childf("columns: %s", rel.OutputSchema)
	node.Childf("stats: %s", rel.Stats)

	switch t := e.(type) {
	case *SelectExpr:
		formatFilters(t.Filters, node)
	case *CalcExpr:
		formatFilters(t.Filters, node)
		formatProjections(t.Projections, node)
		node.Childf("field access: %s", t.FieldAccess())
	case *ProjectExpr:
		formatProjections(t.Projections, node)
	}

	for i, n := 0, e.ChildCount(); i < n; i++ {
		if child, ok := e.Child(i).(RelExpr); ok {
			formatRelational(f, child, node)
		}
	}
}

func formatFilters(filters FiltersExpr, tp treeprinter.Node) {
	if len(filters) == 0 {
		return
	}
	node := tp.Child("filters")
	for i := range filters {
		node.Child(FormatScalar(filters[i].Condition))
	}
}

func formatProjections(projections ProjectionsExpr, tp treeprinter.Node) {
	if len(projections) == 0 {
		return
	}
	node := tp.Child("projections")
	for i := range projections {
		node.Childf("%s := %s", projections[i].Alias, FormatScalar(projections[i].Element))
	}
}

// FormatScalar returns a compact, single-line rendering of a scalar
// expression.
func FormatScalar(s opt.ScalarExpr) string {
	switch t := s.(type) {
	case *VariableExpr:
		return t.Path.String()
	case *ConstExpr:
		return t.Value.String()
	case *AndExpr:
		return fmt.Sprintf("(%s) AND (%s)", FormatScalar(t.Left), FormatScalar(t.Right))
	case *OrExpr:
		return fmt.Sprintf("(%s) OR (%s)", FormatScalar(t.Left), FormatScalar(t.Right))
	case *NotExpr:
		return fmt.Sprintf("NOT (%s)", FormatScalar(t.Input))
	case *ComparisonExpr:
		return fmt.Sprintf("%s %s %s",
			FormatScalar(t.Left), comparisonSymbol(t.CmpOp), FormatScalar(t.Right))
	case *FunctionExpr:
		args := make([]string, len(t.Args))
		for i := range t.Args {
			args[i] = FormatScalar(t.Args[i])
		}
		return fmt.Sprintf("%s(%s)", t.Name, strings.Join(args, ", "))
	case *UnsupportedExpr:
		return "<opaque>"
	default:
		panic(errors.AssertionFailedf("no formatting for %s", s.Op()))
	}
}

func comparisonSymbol(op opt.Operator) string {
	switch op {
	case opt.EqOp:
		return "="
	case opt.NeOp:
		return "!="
	case opt.LtOp:
		return "<"
	case opt.GtOp:
		return ">"
	case opt.LeOp:
		return "<="
	case opt.GeOp:
		return ">="
	default:
		panic(errors.AssertionFailedf("%s is not a comparison operator", op))
	}
}

// FormatStatsTable returns a tabular per-node statistics summary of a plan,
// one row per relational operator in depth-first preorder.
func FormatStatsTable(f *Factory, e RelExpr) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Operator", "Rows", "Rate", "Window"})
	table.SetAutoFormatHeaders(false)

	Walk(e, func(x opt.Expr) bool {
		rel, ok := x.(RelExpr)
		if !ok {
			// Scalar subtrees hold no statistics.
			return false
		}
		stats := rel.Relational().Stats
		if stats.IsUnknown() {
			table.Append([]string{describeNode(f, rel), "unknown", "unknown", "unknown"})
			return true
		}
		table.Append([]string{
			describeNode(f, rel),
			humanizeutil.Count(stats.RowCount),
			humanizeutil.Count(stats.Rate),
			humanizeutil.Count(stats.Window),
		})
		return true
	})

	table.Render()
	return buf.String()
}

func describeNode(f *Factory, e RelExpr) string {
	if scan, ok := e.(*ScanExpr); ok {
		return fmt.Sprintf("scan %s", f.Metadata().Table(scan.Table).Name())
	}
	return e.Op().String()
}
