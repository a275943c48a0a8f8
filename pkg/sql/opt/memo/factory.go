// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package memo

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt"
	"github.com/danielarn/beam/pkg/sql/schema"
)

// Factory constructs the relational and scalar expressions of a plan. Each
// relational constructor derives the operator's logical properties bottom-up:
// it binds the operator's scalar expressions to the input schema, derives the
// output schema, and builds the statistics estimate (and, for Calc, the
// field-access descriptor). Construction-time misuse - a nil child, a field
// reference the input schema cannot satisfy, mismatched union arity - is an
// assertion failure, surfaced as a panic that callers convert to an error
// with opt.CatchPlannerError.
type Factory struct {
	ctx context.Context
	md  *opt.Metadata
	cfg *Config

	sb statisticsBuilder
}

// Init prepares the factory for use. A nil cfg selects DefaultConfig. The
// config must validate; loading and validating configuration is the host's
// job, so an invalid config here is an assertion failure.
func (f *Factory) Init(ctx context.Context, md *opt.Metadata, cfg *Config) {
	f.InitWithMetrics(ctx, md, cfg, nil /* metrics */)
}

// InitWithMetrics is Init with builder metrics attached.
func (f *Factory) InitWithMetrics(
	ctx context.Context, md *opt.Metadata, cfg *Config, metrics *Metrics,
) {
	if md == nil {
		panic(errors.AssertionFailedf("factory requires metadata"))
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "invalid statistics config"))
	}
	// This initialization pattern ensures that fields are not unwittingly
	// reused. Field reuse must be explicit.
	*f = Factory{ctx: ctx, md: md, cfg: cfg}
	f.sb.init(ctx, md, cfg, metrics)
}

// Metadata returns the metadata the factory constructs against.
func (f *Factory) Metadata() *opt.Metadata { return f.md }

// ------------------------------------------------------------
// Relational constructors.
// ------------------------------------------------------------

// ConstructScan constructs a Scan of the given metadata table.
func (f *Factory) ConstructScan(table opt.TableID) *ScanExpr {
	tab := f.md.Table(table)
	e := &ScanExpr{Table: table}
	e.rel.OutputSchema = tab.Schema()
	f.sb.buildStats(e)
	return e
}

// ConstructValues constructs a literal relation with the given rows and
// schema. Every row must have one datum per schema field, of a matching type
// family.
func (f *Factory) ConstructValues(rows [][]schema.Datum, sch *schema.Schema) *ValuesExpr {
	if sch == nil {
		panic(errors.AssertionFailedf("values requires a schema"))
	}
	for i, row := range rows {
		if len(row) != sch.FieldCount() {
			panic(errors.AssertionFailedf(
				"values row %d has %d datums, schema %s has %d fields",
				i, len(row), sch, sch.FieldCount()))
		}
		for j, d := range row {
			if d == nil {
				panic(errors.AssertionFailedf("values row %d has nil datum %d", i, j))
			}
			if d.ResolvedType().Family() != sch.Field(j).Typ.Family() {
				panic(errors.AssertionFailedf(
					"values row %d datum %d has type %s, expected %s",
					i, j, d.ResolvedType(), sch.Field(j).Typ))
			}
		}
	}
	e := &ValuesExpr{Rows: rows}
	e.rel.OutputSchema = sch
	f.sb.buildStats(e)
	return e
}

// ConstructSelect constructs a filter over the input. The output schema is
// the input schema.
func (f *Factory) ConstructSelect(input RelExpr, filters FiltersExpr) *SelectExpr {
	checkInput(input)
	f.bindFilters(filters, input.Relational().OutputSchema)
	e := &SelectExpr{Input: input, Filters: filters}
	e.rel.OutputSchema = input.Relational().OutputSchema
	f.sb.buildStats(e)
	return e
}

// ConstructProject constructs a projection over the input. The output schema
// is derived from the projection aliases and element types.
func (f *Factory) ConstructProject(input RelExpr, projections ProjectionsExpr) *ProjectExpr {
	checkInput(input)
	inputSchema := input.Relational().OutputSchema
	f.bindProjections(projections, inputSchema)
	e := &ProjectExpr{Input: input, Projections: projections}
	e.rel.OutputSchema = projectedSchema(projections)
	f.sb.buildStats(e)
	return e
}

// ConstructCalc constructs the fused filter+projection operator. Besides the
// usual property derivation it computes the operator's field-access
// descriptor, resolved against the input schema, for use by column pruning.
func (f *Factory) ConstructCalc(
	input RelExpr, filters FiltersExpr, projections ProjectionsExpr,
) *CalcExpr {
	checkInput(input)
	inputSchema := input.Relational().OutputSchema
	f.bindFilters(filters, inputSchema)
	f.bindProjections(projections, inputSchema)

	access, err := DeriveFieldAccess(filters, projections).Resolve(inputSchema)
	if err != nil {
		// Binding above already validated every referenced path.
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "resolving derived field access"))
	}

	e := &CalcExpr{Input: input, Filters: filters, Projections: projections, fieldAccess: access}
	e.rel.OutputSchema = projectedSchema(projections)
	f.sb.buildStats(e)
	return e
}

// ConstructUnionAll constructs the concatenation of two inputs. The inputs
// must have the same arity and type families; the output schema is the left
// input's.
func (f *Factory) ConstructUnionAll(left, right RelExpr) *UnionAllExpr {
	checkInput(left)
	checkInput(right)
	lsch := left.Relational().OutputSchema
	rsch := right.Relational().OutputSchema
	if lsch.FieldCount() != rsch.FieldCount() {
		panic(errors.AssertionFailedf(
			"union-all inputs have mismatched arity: %s vs %s", lsch, rsch))
	}
	for i := 0; i < lsch.FieldCount(); i++ {
		if lsch.Field(i).Typ.Family() != rsch.Field(i).Typ.Family() {
			panic(errors.AssertionFailedf(
				"union-all field %d has mismatched types: %s vs %s",
				i, lsch.Field(i).Typ, rsch.Field(i).Typ))
		}
	}
	e := &UnionAllExpr{Left: left, Right: right}
	e.rel.OutputSchema = lsch
	f.sb.buildStats(e)
	return e
}

// ------------------------------------------------------------
// Scalar constructors.
// ------------------------------------------------------------

// ConstructVariable constructs a reference to an input field. The variable's
// type is bound later, when the enclosing relational operator is constructed
// against a concrete input schema.
func (f *Factory) ConstructVariable(path schema.FieldPath) *VariableExpr {
	if len(path) == 0 {
		panic(errors.AssertionFailedf("variable requires a non-empty path"))
	}
	return &VariableExpr{Path: path}
}

// ConstructConst constructs a literal constant.
func (f *Factory) ConstructConst(value schema.Datum) *ConstExpr {
	if value == nil {
		panic(errors.AssertionFailedf("const requires a datum"))
	}
	return &ConstExpr{Value: value}
}

// ConstructAnd constructs a boolean conjunction.
func (f *Factory) ConstructAnd(left, right opt.ScalarExpr) *AndExpr {
	return &AndExpr{Left: left, Right: right}
}

// ConstructOr constructs a boolean disjunction.
func (f *Factory) ConstructOr(left, right opt.ScalarExpr) *OrExpr {
	return &OrExpr{Left: left, Right: right}
}

// ConstructNot constructs a boolean negation.
func (f *Factory) ConstructNot(input opt.ScalarExpr) *NotExpr {
	return &NotExpr{Input: input}
}

// ConstructComparison constructs a binary comparison with the given
// comparison operator.
func (f *Factory) ConstructComparison(op opt.Operator, left, right opt.ScalarExpr) *ComparisonExpr {
	if !op.IsComparison() {
		panic(errors.AssertionFailedf("%s is not a comparison operator", op))
	}
	return &ComparisonExpr{CmpOp: op, Left: left, Right: right}
}

// ConstructEq constructs an equality comparison.
func (f *Factory) ConstructEq(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.EqOp, left, right)
}

// ConstructNe constructs an inequality comparison.
func (f *Factory) ConstructNe(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.NeOp, left, right)
}

// ConstructLt constructs a less-than comparison.
func (f *Factory) ConstructLt(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.LtOp, left, right)
}

// ConstructGt constructs a greater-than comparison.
func (f *Factory) ConstructGt(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.GtOp, left, right)
}

// ConstructLe constructs a less-than-or-equal comparison.
func (f *Factory) ConstructLe(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.LeOp, left, right)
}

// ConstructGe constructs a greater-than-or-equal comparison.
func (f *Factory) ConstructGe(left, right opt.ScalarExpr) *ComparisonExpr {
	return f.ConstructComparison(opt.GeOp, left, right)
}

// ConstructFunction constructs an invocation of a statically analyzable
// function with the given result type.
func (f *Factory) ConstructFunction(
	name string, typ *schema.Type, args ...opt.ScalarExpr,
) *FunctionExpr {
	if typ == nil {
		panic(errors.AssertionFailedf("function %q requires a result type", name))
	}
	return &FunctionExpr{Name: name, Typ: typ, Args: args}
}

// ConstructUnsupported constructs the placeholder for opaque user code with
// the given result type.
func (f *Factory) ConstructUnsupported(typ *schema.Type) *UnsupportedExpr {
	return &UnsupportedExpr{Typ: typ}
}

// ------------------------------------------------------------
// Binding and schema derivation.
// ------------------------------------------------------------

// bindFilters binds every variable in the filter conjuncts to the input
// schema.
func (f *Factory) bindFilters(filters FiltersExpr, sch *schema.Schema) {
	for i := range filters {
		if filters[i].Condition == nil {
			panic(errors.AssertionFailedf("filters item %d has no condition", i))
		}
		bindScalar(filters[i].Condition, sch)
	}
}

// bindProjections binds every variable in the projection elements to the
// input schema and checks that aliases are present.
func (f *Factory) bindProjections(projections ProjectionsExpr, sch *schema.Schema) {
	for i := range projections {
		if projections[i].Element == nil {
			panic(errors.AssertionFailedf("projections item %d has no element", i))
		}
		if projections[i].Alias == "" {
			panic(errors.AssertionFailedf("projections item %d has no alias", i))
		}
		bindScalar(projections[i].Element, sch)
	}
}

// bindScalar resolves the type of every variable in the scalar tree against
// the given input schema. A path the schema cannot satisfy is construction
// misuse.
func bindScalar(s opt.ScalarExpr, sch *schema.Schema) {
	Walk(s, func(e opt.Expr) bool {
		if v, ok := e.(*VariableExpr); ok {
			typ, err := sch.TypeOf(v.Path)
			if err != nil {
				panic(errors.NewAssertionErrorWithWrappedErrf(
					err, "binding variable %q", v.Path))
			}
			v.typ = typ
		}
		return true
	})
}

// projectedSchema derives the output schema of a projection list.
func projectedSchema(projections ProjectionsExpr) *schema.Schema {
	fields := make([]schema.Field, len(projections))
	for i := range projections {
		fields[i] = schema.Field{
			Name: projections[i].Alias,
			Typ:  projections[i].Element.DataType(),
		}
	}
	return schema.NewSchema(fields...)
}

func checkInput(input RelExpr) {
	if input == nil {
		panic(errors.AssertionFailedf("relational constructor requires an input"))
	}
}
