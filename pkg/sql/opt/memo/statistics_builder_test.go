// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"context"
	"testing"

	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/opt/testutils/testcat"
	"github.com/danielarn/beam/pkg/sql/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func ordersSchema() *schema.Schema {
	return schema.NewSchema(
		schema.Field{Name: "id", Typ: schema.Int64},
		schema.Field{Name: "site", Typ: schema.Int64},
		schema.Field{Name: "name", Typ: schema.String},
	)
}

// newTestFactory registers a 5-row bounded table "orders", an unbounded
// stream "events" (2 rows/sec over a 30 sec window), and a statistics-free
// table "mystery".
func newTestFactory(t *testing.T) (*Factory, map[string]opt.TableID) {
	t.Helper()
	cat := testcat.New()
	cat.CreateTable("orders", ordersSchema(), 5)
	cat.CreateUnboundedTable("events", ordersSchema(), 2, 30)
	cat.CreateTableWithoutStatistics("mystery", ordersSchema())

	var md opt.Metadata
	md.Init()
	ids := make(map[string]opt.TableID)
	for _, name := range cat.TableNames() {
		tab, err := cat.Table(name)
		require.NoError(t, err)
		ids[name] = md.AddTable(tab)
	}

	var f Factory
	f.Init(context.Background(), &md, nil /* cfg */)
	return &f, ids
}

// eqFilter returns the conjunction {path = val}.
func eqFilter(f *Factory, path string, val int64) FiltersExpr {
	return FiltersExpr{{Condition: f.ConstructEq(
		f.ConstructVariable(schema.ParseFieldPath(path)),
		f.ConstructConst(schema.DInt(val)),
	)}}
}

func TestScanStats(t *testing.T) {
	f, ids := newTestFactory(t)

	t.Run("bounded", func(t *testing.T) {
		scan := f.ConstructScan(ids["orders"])
		stats := GetNodeStats(scan)
		require.Equal(t, 5.0, stats.RowCount)
		require.Equal(t, 0.0, stats.Rate)
		require.Equal(t, 5.0, stats.Window)
	})

	t.Run("unbounded", func(t *testing.T) {
		scan := f.ConstructScan(ids["events"])
		stats := GetNodeStats(scan)
		require.Equal(t, 60.0, stats.RowCount)
		require.Equal(t, 2.0, stats.Rate)
		require.Equal(t, 30.0, stats.Window)
	})

	t.Run("no statistics", func(t *testing.T) {
		scan := f.ConstructScan(ids["mystery"])
		require.True(t, GetNodeStats(scan).IsUnknown())
	})
}

func TestScanStatsSnapshot(t *testing.T) {
	f, ids := newTestFactory(t)

	scan1 := f.ConstructScan(ids["orders"])
	require.Equal(t, 5.0, GetNodeStats(scan1).RowCount)

	// The publication changes mid-pass; the snapshot taken at the first scan
	// stays authoritative for this optimization pass.
	tab := f.Metadata().Table(ids["orders"]).(*testcat.Table)
	tab.SetStatistics(nil)
	scan2 := f.ConstructScan(ids["orders"])
	require.Equal(t, 5.0, GetNodeStats(scan2).RowCount)
}

func TestScanZeroRowsIsDefinite(t *testing.T) {
	cat := testcat.New()
	cat.CreateTable("empty", ordersSchema(), 0)
	var md opt.Metadata
	md.Init()
	tab, err := cat.Table("empty")
	require.NoError(t, err)
	id := md.AddTable(tab)

	var f Factory
	f.Init(context.Background(), &md, nil)
	stats := GetNodeStats(f.ConstructScan(id))
	require.False(t, stats.IsUnknown())
	require.Equal(t, 0.0, stats.RowCount)
}

func TestProjectPreservesStats(t *testing.T) {
	f, ids := newTestFactory(t)
	scan := f.ConstructScan(ids["orders"])
	prj := f.ConstructProject(scan, ProjectionsExpr{{
		Element: f.ConstructVariable(schema.ParseFieldPath("name")),
		Alias:   "name",
	}})

	require.Equal(t, GetNodeStats(scan), GetNodeStats(prj))
	require.Equal(t, "(name string)", prj.Relational().OutputSchema.String())
}

func TestSelectStats(t *testing.T) {
	f, ids := newTestFactory(t)

	t.Run("monotone under filtering", func(t *testing.T) {
		scan := f.ConstructScan(ids["orders"])
		sel := f.ConstructSelect(scan, eqFilter(f, "id", 1))
		stats := GetNodeStats(sel)
		require.Less(t, stats.RowCount, 5.0)
		require.Less(t, stats.Window, 5.0)
		require.Equal(t, 0.0, stats.Rate)
		require.Equal(t, 5.0*defaultEqualitySelectivity, stats.RowCount)
	})

	t.Run("equality stricter than comparison", func(t *testing.T) {
		eqSel := f.ConstructSelect(f.ConstructScan(ids["orders"]), eqFilter(f, "id", 1))
		geSel := f.ConstructSelect(f.ConstructScan(ids["orders"]), FiltersExpr{{
			Condition: f.ConstructGe(
				f.ConstructVariable(schema.ParseFieldPath("id")),
				f.ConstructConst(schema.DInt(1)),
			),
		}})
		require.Less(t, GetNodeStats(eqSel).RowCount, GetNodeStats(geSel).RowCount)
		require.Less(t, GetNodeStats(eqSel).Window, GetNodeStats(geSel).Window)
	})

	t.Run("conjunction strictness", func(t *testing.T) {
		one := f.ConstructSelect(f.ConstructScan(ids["orders"]), eqFilter(f, "id", 1))
		two := f.ConstructSelect(f.ConstructScan(ids["orders"]), FiltersExpr{
			eqFilter(f, "id", 1)[0],
			eqFilter(f, "site", 2)[0],
		})
		require.Less(t, GetNodeStats(two).RowCount, GetNodeStats(one).RowCount)
		require.Less(t, GetNodeStats(two).Window, GetNodeStats(one).Window)
	})

	t.Run("nested AND matches separate conjuncts", func(t *testing.T) {
		fused := f.ConstructSelect(f.ConstructScan(ids["orders"]), FiltersExpr{{
			Condition: f.ConstructAnd(
				eqFilter(f, "id", 1)[0].Condition,
				eqFilter(f, "site", 2)[0].Condition,
			),
		}})
		split := f.ConstructSelect(f.ConstructScan(ids["orders"]), FiltersExpr{
			eqFilter(f, "id", 1)[0],
			eqFilter(f, "site", 2)[0],
		})
		require.Equal(t, GetNodeStats(split), GetNodeStats(fused))
	})

	t.Run("unclassified shapes filter nothing", func(t *testing.T) {
		scan := f.ConstructScan(ids["orders"])
		for _, cond := range []opt.ScalarExpr{
			f.ConstructOr(
				eqFilter(f, "id", 1)[0].Condition,
				eqFilter(f, "site", 2)[0].Condition,
			),
			f.ConstructNot(eqFilter(f, "id", 1)[0].Condition),
			f.ConstructNe(
				f.ConstructVariable(schema.ParseFieldPath("id")),
				f.ConstructConst(schema.DInt(1)),
			),
			f.ConstructFunction("starts_with", schema.Bool,
				f.ConstructVariable(schema.ParseFieldPath("name")),
				f.ConstructConst(schema.DString("a"))),
			f.ConstructUnsupported(schema.Bool),
			f.ConstructConst(schema.DBool(true)),
		} {
			sel := f.ConstructSelect(scan, FiltersExpr{{Condition: cond}})
			require.Equal(t, 5.0, GetNodeStats(sel).RowCount, "condition %s", cond.Op())
		}
	})

	t.Run("rate invariance on streams", func(t *testing.T) {
		scan := f.ConstructScan(ids["events"])
		sel := f.ConstructSelect(scan, eqFilter(f, "id", 1))
		stats := GetNodeStats(sel)
		require.Equal(t, 2.0, stats.Rate)
		require.Less(t, stats.RowCount, 60.0)
		require.Less(t, stats.Window, 30.0)
		require.InEpsilon(t, stats.Rate*stats.Window, stats.RowCount, 1e-9)
	})
}

func TestCalcStats(t *testing.T) {
	f, ids := newTestFactory(t)
	projections := ProjectionsExpr{{
		Element: f.ConstructVariable(schema.ParseFieldPath("name")),
		Alias:   "name",
	}}

	t.Run("filter plus projection", func(t *testing.T) {
		calc := f.ConstructCalc(f.ConstructScan(ids["orders"]), eqFilter(f, "id", 1), projections)
		stats := GetNodeStats(calc)
		require.Equal(t, 5.0*defaultEqualitySelectivity, stats.RowCount)
		require.Equal(t, stats.RowCount, stats.Window)
	})

	t.Run("no filters behaves like project", func(t *testing.T) {
		scan := f.ConstructScan(ids["orders"])
		calc := f.ConstructCalc(scan, nil /* filters */, projections)
		require.Equal(t, GetNodeStats(scan), GetNodeStats(calc))
	})
}

func TestUnknownPropagation(t *testing.T) {
	f, ids := newTestFactory(t)
	scan := f.ConstructScan(ids["mystery"])
	sel := f.ConstructSelect(scan, eqFilter(f, "id", 1))
	prj := f.ConstructProject(sel, ProjectionsExpr{{
		Element: f.ConstructVariable(schema.ParseFieldPath("name")),
		Alias:   "name",
	}})
	calc := f.ConstructCalc(prj, nil, ProjectionsExpr{{
		Element: f.ConstructConst(schema.DInt(1)),
		Alias:   "one",
	}})

	require.True(t, GetNodeStats(scan).IsUnknown())
	require.True(t, GetNodeStats(sel).IsUnknown())
	require.True(t, GetNodeStats(prj).IsUnknown())
	require.True(t, GetNodeStats(calc).IsUnknown())
}

func TestValuesStats(t *testing.T) {
	f, _ := newTestFactory(t)
	sch := schema.NewSchema(schema.Field{Name: "x", Typ: schema.Int64})
	values := f.ConstructValues([][]schema.Datum{
		{schema.DInt(1)}, {schema.DInt(2)}, {schema.DInt(3)},
	}, sch)
	stats := GetNodeStats(values)
	require.Equal(t, 3.0, stats.RowCount)
	require.Equal(t, 0.0, stats.Rate)
	require.Equal(t, 3.0, stats.Window)
}

func TestUnionAllStats(t *testing.T) {
	f, ids := newTestFactory(t)

	t.Run("bounded", func(t *testing.T) {
		union := f.ConstructUnionAll(
			f.ConstructScan(ids["orders"]),
			f.ConstructScan(ids["orders"]),
		)
		stats := GetNodeStats(union)
		require.Equal(t, 10.0, stats.RowCount)
		require.Equal(t, 0.0, stats.Rate)
	})

	t.Run("mixed bounded and unbounded", func(t *testing.T) {
		union := f.ConstructUnionAll(
			f.ConstructScan(ids["orders"]),
			f.ConstructScan(ids["events"]),
		)
		stats := GetNodeStats(union)
		require.Equal(t, 65.0, stats.RowCount)
		require.Equal(t, 2.0, stats.Rate)
	})

	t.Run("unknown side poisons", func(t *testing.T) {
		union := f.ConstructUnionAll(
			f.ConstructScan(ids["orders"]),
			f.ConstructScan(ids["mystery"]),
		)
		require.True(t, GetNodeStats(union).IsUnknown())
	})
}

func TestCustomSelectivityConfig(t *testing.T) {
	cat := testcat.New()
	cat.CreateTable("orders", ordersSchema(), 100)
	var md opt.Metadata
	md.Init()
	tab, err := cat.Table("orders")
	require.NoError(t, err)
	id := md.AddTable(tab)

	var f Factory
	f.Init(context.Background(), &md, &Config{
		EqualitySelectivity:   0.1,
		ComparisonSelectivity: 0.5,
	})

	sel := f.ConstructSelect(f.ConstructScan(id), eqFilter(&f, "id", 1))
	require.Equal(t, 10.0, GetNodeStats(sel).RowCount)
}

func TestBuilderMetrics(t *testing.T) {
	cat := testcat.New()
	cat.CreateTable("orders", ordersSchema(), 5)
	cat.CreateTableWithoutStatistics("mystery", ordersSchema())
	var md opt.Metadata
	md.Init()
	orders, err := cat.Table("orders")
	require.NoError(t, err)
	mystery, err := cat.Table("mystery")
	require.NoError(t, err)
	ordersID := md.AddTable(orders)
	mysteryID := md.AddTable(mystery)

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	var f Factory
	f.InitWithMetrics(context.Background(), &md, nil, metrics)

	f.ConstructSelect(f.ConstructScan(ordersID), eqFilter(&f, "id", 1))
	f.ConstructScan(mysteryID)
	f.ConstructScan(ordersID) // snapshot already cached

	require.Equal(t, 4.0, testutil.ToFloat64(metrics.NodesEstimated))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.UnknownPropagated))
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.TableStatsSnapshots))
}

func TestFactoryMisusePanics(t *testing.T) {
	f, ids := newTestFactory(t)

	require.Panics(t, func() { f.ConstructSelect(nil, nil) })
	require.Panics(t, func() { f.ConstructVariable(nil) })
	require.Panics(t, func() {
		// Variable path not in the input schema.
		f.ConstructSelect(f.ConstructScan(ids["orders"]), eqFilter(f, "bogus", 1))
	})
	require.Panics(t, func() {
		// Union arity mismatch.
		one := f.ConstructProject(f.ConstructScan(ids["orders"]), ProjectionsExpr{{
			Element: f.ConstructVariable(schema.ParseFieldPath("id")), Alias: "id",
		}})
		f.ConstructUnionAll(one, f.ConstructScan(ids["orders"]))
	})
	require.Panics(t, func() {
		f.ConstructValues([][]schema.Datum{{schema.DInt(1), schema.DInt(2)}},
			schema.NewSchema(schema.Field{Name: "x", Typ: schema.Int64}))
	})
}

func TestCatchPlannerError(t *testing.T) {
	f, ids := newTestFactory(t)

	buildBogus := func() (err error) {
		defer func() { err = opt.CatchPlannerError(recover()) }()
		f.ConstructSelect(f.ConstructScan(ids["orders"]), eqFilter(f, "bogus", 1))
		return nil
	}
	require.Error(t, buildBogus())
}
