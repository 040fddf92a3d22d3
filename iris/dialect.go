package iris

import (
	"github.com/irisql/irisql/internal/render"
	"github.com/irisql/irisql/internal/types"
)

const dialectName = "iris"

// dialect overrides the rendering junctions where InterSystems IRIS differs
// from ANSI SQL. Everything else falls through to render.Base.
type dialect struct {
	render.Base
}

var _ render.Dialect = dialect{}

func (dialect) Name() string { return dialectName }

// capabilities is the single source for Capabilities and the Supports* hooks.
var capabilities = render.Capabilities{
	RowValueConstructor:  false,
	RowValueInList:       false,
	RowValueQuantified:   false,
	DistinctFromOperator: false,
	Intersect:            false,
	OffsetFetch:          false,
	TopClause:            true,
	Returning:            false,
	IdentityColumns:      Identity.SupportsIdentityColumns(),
	RowLocking:           render.RowLockingNone,
}

func (dialect) Capabilities() render.Capabilities { return capabilities }

// LockStrategy drops every lock request; IRIS has no FOR UPDATE clause.
func (dialect) LockStrategy(*render.Context, *types.Lock) render.LockStrategy {
	return render.LockStrategyNone
}

func (dialect) RenderForUpdate(*render.Translator, *render.Context, *types.Lock) error {
	return nil
}

// NeedsRowsToSkip is true: offsets are never rendered, the caller skips rows.
func (dialect) NeedsRowsToSkip() bool { return true }

// RenderTopClause writes TOP (limit + offset) ahead of the select list.
func (dialect) RenderTopClause(t *render.Translator, ctx *render.Context, ast *types.AST) error {
	if err := t.AssertRowsOnlyFetchType(ast); err != nil {
		return err
	}
	return t.RenderTop(ctx, ast, true, true)
}

// RenderOffsetFetch emits nothing. An offset inside a subquery or a compound
// member cannot be emulated by skipping rows and is rejected.
func (dialect) RenderOffsetFetch(_ *render.Translator, ctx *render.Context, ast *types.AST) error {
	if !ctx.Root() && ast.Offset != nil {
		return render.NewUnsupportedFeatureError(dialectName, "OFFSET in a subquery",
			"can't emulate offset clause in subquery")
	}
	return nil
}

func (dialect) RenderFetchPlusOffset(t *render.Translator, ctx *render.Context, fetch, offset *types.PaginationValue) error {
	return t.RenderFetchPlusOffsetAsSingleParameter(ctx, fetch, offset)
}

// RenderComparison expands IS [NOT] DISTINCT FROM into plain null checks.
func (d dialect) RenderComparison(t *render.Translator, ctx *render.Context, lhs types.Operand, op types.Operator, rhs types.Operand) error {
	switch op {
	case types.DistinctFrom:
		t.WriteString("((")
		renderNullUnequal(t, ctx, lhs, rhs)
		t.WriteString(") AND NOT (")
		renderBothNull(t, ctx, lhs, rhs)
		t.WriteString("))")
		return nil
	case types.NotDistinctFrom:
		t.WriteString("(NOT (")
		renderNullUnequal(t, ctx, lhs, rhs)
		t.WriteString(") OR (")
		renderBothNull(t, ctx, lhs, rhs)
		t.WriteString("))")
		return nil
	}
	return d.Base.RenderComparison(t, ctx, lhs, op, rhs)
}

// renderNullUnequal writes A <> B OR A IS NULL OR B IS NULL.
func renderNullUnequal(t *render.Translator, ctx *render.Context, lhs, rhs types.Operand) {
	t.RenderOperand(ctx, lhs)
	t.WriteString(" <> ")
	t.RenderOperand(ctx, rhs)
	t.WriteString(" OR ")
	t.RenderOperand(ctx, lhs)
	t.WriteString(" IS NULL OR ")
	t.RenderOperand(ctx, rhs)
	t.WriteString(" IS NULL")
}

// renderBothNull writes A IS NULL AND B IS NULL.
func renderBothNull(t *render.Translator, ctx *render.Context, lhs, rhs types.Operand) {
	t.RenderOperand(ctx, lhs)
	t.WriteString(" IS NULL AND ")
	t.RenderOperand(ctx, rhs)
	t.WriteString(" IS NULL")
}

func (dialect) RenderSelectTupleComparison(t *render.Translator, ctx *render.Context, lhs []types.Field, op types.Operator, rhs []types.Operand) error {
	return t.EmulateTupleComparison(ctx, lhs, rhs, op, true)
}

func (dialect) SupportsRowValueConstructorSyntax() bool {
	return capabilities.RowValueConstructor
}
func (dialect) SupportsRowValueConstructorSyntaxInInList() bool {
	return capabilities.RowValueInList
}
func (dialect) SupportsRowValueConstructorSyntaxInQuantifiedPredicates() bool {
	return capabilities.RowValueQuantified
}
func (dialect) SupportsDistinctFromPredicate() bool { return capabilities.DistinctFromOperator }
func (dialect) SupportsIntersect() bool             { return capabilities.Intersect }

// RenderPartitionItem replaces a constant partition with a string
// concatenation IRIS accepts, and rejects ROLLUP and CUBE.
func (d dialect) RenderPartitionItem(t *render.Translator, ctx *render.Context, item types.PartitionItem) error {
	switch item.(type) {
	case types.Literal:
		t.WriteString("'0' || '0'")
		return nil
	case types.Summarization:
		return render.NewUnsupportedFeatureError(dialectName, "summarization in PARTITION BY")
	}
	return d.Base.RenderPartitionItem(t, ctx, item)
}

// RenderSelectExpression turns predicates into CASE expressions and wraps
// columns of DISTINCT or grouped queries in %EXACT so collation does not
// fold their values.
func (d dialect) RenderSelectExpression(t *render.Translator, ctx *render.Context, expr types.FieldExpression) error {
	switch {
	case expr.Predicate != nil:
		if err := t.RenderExpressionAsClauseItem(ctx, expr.Predicate); err != nil {
			return err
		}
		if expr.Alias != "" {
			t.WriteString(" AS " + t.QuoteIdentifier(expr.Alias))
		}
		return nil
	case expr.IsColumnReference() && (ctx.Distinct() || ctx.InGroupBy(expr.Field)):
		name := expr.Alias
		if name == "" {
			name = expr.Field.Name
		}
		t.WriteString("%EXACT ")
		t.WriteString(t.RenderField(expr.Field))
		t.WriteString(" AS ")
		t.WriteString(t.QuoteIdentifier(name))
		return nil
	}
	return d.Base.RenderSelectExpression(t, ctx, expr)
}

func (dialect) Identity() render.IdentitySupport { return Identity }
