package render

import (
	"fmt"
	"strings"

	"github.com/irisql/irisql/internal/types"
)

// Base implements every Dialect hook with ANSI SQL behavior.
type Base struct{}

var _ Dialect = Base{}

func (Base) Name() string { return "ansi" }

// QuoteIdentifier wraps name in double quotes, doubling embedded quotes.
func (Base) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ansiCapabilities backs both Capabilities and the Supports* hooks.
var ansiCapabilities = Capabilities{
	RowValueConstructor:  true,
	RowValueInList:       true,
	RowValueQuantified:   true,
	DistinctFromOperator: true,
	Intersect:            true,
	OffsetFetch:          true,
	Returning:            true,
	RowLocking:           RowLockingBasic,
}

func (Base) Capabilities() Capabilities { return ansiCapabilities }

func (Base) LockStrategy(*Context, *types.Lock) LockStrategy {
	return LockStrategyClause
}

func (Base) RenderForUpdate(t *Translator, _ *Context, lock *types.Lock) error {
	t.WriteString(" ")
	t.WriteString(string(lock.Mode))
	if lock.Wait != types.LockWaitDefault {
		t.WriteString(" ")
		t.WriteString(string(lock.Wait))
	}
	return nil
}

func (Base) NeedsRowsToSkip() bool { return false }

func (Base) RenderTopClause(*Translator, *Context, *types.AST) error { return nil }

// RenderOffsetFetch renders the standard OFFSET ... ROWS FETCH FIRST ... clause.
func (Base) RenderOffsetFetch(t *Translator, ctx *Context, ast *types.AST) error {
	if ast.Offset != nil {
		t.WriteString(" OFFSET ")
		t.RenderPaginationValue(ctx, ast.Offset)
		t.WriteString(" ROWS")
	}
	if ast.Limit != nil {
		t.WriteString(" FETCH FIRST ")
		t.RenderPaginationValue(ctx, ast.Limit)
		t.WriteString(" ")
		t.WriteString(string(ast.FetchType.Effective()))
	}
	return nil
}

// RenderFetchPlusOffset renders fetch+offset as arithmetic, folding constants.
func (Base) RenderFetchPlusOffset(t *Translator, ctx *Context, fetch, offset *types.PaginationValue) error {
	if fetch.IsStatic() && offset.IsStatic() {
		t.WriteString(fmt.Sprintf("%d", *fetch.Static+*offset.Static))
		return nil
	}
	t.WriteString("(")
	t.RenderPaginationValue(ctx, fetch)
	t.WriteString(" + ")
	t.RenderPaginationValue(ctx, offset)
	t.WriteString(")")
	return nil
}

func (Base) RenderComparison(t *Translator, ctx *Context, lhs types.Operand, op types.Operator, rhs types.Operand) error {
	if (op == types.DistinctFrom || op == types.NotDistinctFrom) && !t.Dialect().SupportsDistinctFromPredicate() {
		return NewUnsupportedFeatureError(t.Dialect().Name(), string(op))
	}
	t.RenderOperand(ctx, lhs)
	t.WriteString(" ")
	t.WriteString(string(op))
	t.WriteString(" ")
	t.RenderOperand(ctx, rhs)
	return nil
}

func (Base) RenderSelectTupleComparison(t *Translator, ctx *Context, lhs []types.Field, op types.Operator, rhs []types.Operand) error {
	return t.EmulateTupleComparison(ctx, lhs, rhs, op, false)
}

func (Base) SupportsRowValueConstructorSyntax() bool {
	return ansiCapabilities.RowValueConstructor
}
func (Base) SupportsRowValueConstructorSyntaxInInList() bool {
	return ansiCapabilities.RowValueInList
}
func (Base) SupportsRowValueConstructorSyntaxInQuantifiedPredicates() bool {
	return ansiCapabilities.RowValueQuantified
}
func (Base) SupportsDistinctFromPredicate() bool { return ansiCapabilities.DistinctFromOperator }

func (Base) RenderSelectExpression(t *Translator, ctx *Context, expr types.FieldExpression) error {
	return t.RenderFieldExpression(ctx, expr)
}

func (Base) RenderPartitionItem(t *Translator, ctx *Context, item types.PartitionItem) error {
	switch it := item.(type) {
	case types.Field:
		t.WriteString(t.RenderField(it))
	case types.Literal:
		return t.RenderLiteral(it)
	case types.Summarization:
		if len(it.Fields) == 0 {
			return fmt.Errorf("%s requires at least one field", it.Kind)
		}
		t.WriteString(string(it.Kind))
		t.WriteString("(")
		for i, f := range it.Fields {
			if i > 0 {
				t.WriteString(", ")
			}
			t.WriteString(t.RenderField(f))
		}
		t.WriteString(")")
	default:
		return fmt.Errorf("unknown partition item: %T", item)
	}
	return nil
}

func (Base) SupportsIntersect() bool { return ansiCapabilities.Intersect }

func (Base) Identity() IdentitySupport { return NoIdentity{} }
