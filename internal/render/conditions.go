package render

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// RenderCondition writes a WHERE/HAVING/ON condition.
func (t *Translator) RenderCondition(ctx *Context, cond types.ConditionItem) error {
	switch c := cond.(type) {
	case types.Condition:
		return t.renderSimpleCondition(ctx, c)
	case types.ConditionGroup:
		if len(c.Conditions) == 0 {
			return fmt.Errorf("empty condition group")
		}
		t.WriteString("(")
		for i, sub := range c.Conditions {
			if i > 0 {
				t.WriteString(" " + string(c.Logic) + " ")
			}
			if err := t.RenderCondition(ctx, sub); err != nil {
				return err
			}
		}
		t.WriteString(")")
		return nil
	case types.FieldComparison:
		return t.dialect.RenderComparison(t, ctx, c.LeftField, c.Operator, c.RightField)
	case types.SubqueryCondition:
		return t.renderSubqueryCondition(ctx, c)
	case types.TupleCondition:
		return t.renderTupleCondition(ctx, c)
	case types.TupleInCondition:
		return t.renderTupleInCondition(ctx, c)
	case types.SubqueryTupleCondition:
		return t.renderSubqueryTupleCondition(ctx, c)
	default:
		return fmt.Errorf("unknown condition type: %T", c)
	}
}

func (t *Translator) renderSimpleCondition(ctx *Context, c types.Condition) error {
	field := t.RenderField(c.Field)
	switch c.Operator {
	case types.IsNull, types.IsNotNull:
		t.WriteString(field + " " + string(c.Operator))
	case types.IN, types.NotIn:
		t.WriteString(field + " " + string(c.Operator) + " (" + t.AddParam(ctx, c.Value) + ")")
	case types.EXISTS, types.NotExists:
		return fmt.Errorf("operator %s requires a subquery", c.Operator)
	default:
		return t.dialect.RenderComparison(t, ctx, c.Field, c.Operator, c.Value)
	}
	return nil
}

func (t *Translator) renderSubqueryCondition(ctx *Context, c types.SubqueryCondition) error {
	switch c.Operator {
	case types.EXISTS, types.NotExists:
		t.WriteString(string(c.Operator) + " ")
	default:
		if c.Field == nil {
			return fmt.Errorf("operator %s requires a field", c.Operator)
		}
		t.WriteString(t.RenderField(*c.Field) + " " + string(c.Operator) + " ")
	}

	t.WriteString("(")
	if err := t.renderSubquery(ctx, c.Subquery); err != nil {
		return err
	}
	t.WriteString(")")
	return nil
}

func (t *Translator) renderFieldList(fields []types.Field) {
	t.WriteString("(")
	for i, f := range fields {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.RenderField(f))
	}
	t.WriteString(")")
}

func (t *Translator) renderOperandList(ctx *Context, operands []types.Operand) {
	t.WriteString("(")
	for i, op := range operands {
		if i > 0 {
			t.WriteString(", ")
		}
		t.RenderOperand(ctx, op)
	}
	t.WriteString(")")
}

func (t *Translator) renderTupleCondition(ctx *Context, c types.TupleCondition) error {
	rhs := c.RightOperands()
	if len(rhs) != len(c.Left) {
		return fmt.Errorf("tuple arity mismatch: %d vs %d", len(c.Left), len(rhs))
	}
	if t.dialect.SupportsRowValueConstructorSyntax() {
		t.renderFieldList(c.Left)
		t.WriteString(" " + string(c.Operator) + " ")
		t.renderOperandList(ctx, rhs)
		return nil
	}
	return t.EmulateTupleComparison(ctx, c.Left, rhs, c.Operator, true)
}

func (t *Translator) renderTupleInCondition(ctx *Context, c types.TupleInCondition) error {
	if t.dialect.SupportsRowValueConstructorSyntaxInInList() {
		t.renderFieldList(c.Left)
		if c.Negated {
			t.WriteString(" NOT IN (")
		} else {
			t.WriteString(" IN (")
		}
		for i, row := range c.Rows {
			if i > 0 {
				t.WriteString(", ")
			}
			t.renderOperandList(ctx, paramOperands(row))
		}
		t.WriteString(")")
		return nil
	}

	if c.Negated {
		t.WriteString("NOT ")
	}
	t.WriteString("(")
	for i, row := range c.Rows {
		if i > 0 {
			t.WriteString(" OR ")
		}
		if err := t.EmulateTupleComparison(ctx, c.Left, paramOperands(row), types.EQ, true); err != nil {
			return err
		}
	}
	t.WriteString(")")
	return nil
}

func (t *Translator) renderSubqueryTupleCondition(ctx *Context, c types.SubqueryTupleCondition) error {
	if c.Subquery.AST == nil {
		return fmt.Errorf("subquery has no AST")
	}
	if c.Operator != types.IN && c.Operator != types.NotIn && !c.Operator.IsComparison() {
		return fmt.Errorf("operator %s cannot compare a tuple with a subquery", c.Operator)
	}

	if t.dialect.SupportsRowValueConstructorSyntaxInQuantifiedPredicates() {
		t.renderFieldList(c.Left)
		t.WriteString(" " + string(c.Operator) + " (")
		if err := t.renderSubquery(ctx, c.Subquery); err != nil {
			return err
		}
		t.WriteString(")")
		return nil
	}

	return t.emulateSubqueryTupleCondition(ctx, c)
}

// emulateSubqueryTupleCondition rewrites (a, b) op (SELECT x, y FROM s WHERE w)
// as [NOT] EXISTS (SELECT 1 FROM s WHERE <(x, y) mirrored-op (a, b)> AND (w)).
func (t *Translator) emulateSubqueryTupleCondition(ctx *Context, c types.SubqueryTupleCondition) error {
	sub := c.Subquery.AST
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("invalid subquery: %w", err)
	}
	if sub.Operation != types.OpSelect {
		return fmt.Errorf("subquery must be SELECT, got %s", sub.Operation)
	}
	if len(sub.FieldExpressions) > 0 || len(sub.Fields) != len(c.Left) {
		return fmt.Errorf("tuple subquery must select exactly %d plain columns", len(c.Left))
	}
	if len(sub.GroupBy) > 0 || sub.Limit != nil || sub.Offset != nil {
		return NewUnsupportedFeatureError(t.dialect.Name(), "row value comparison with a grouped or paginated subquery")
	}

	subCtx, err := ctx.withSubquery()
	if err != nil {
		return err
	}

	op := c.Operator
	if op == types.NotIn {
		t.WriteString("NOT ")
		op = types.EQ
	} else if op == types.IN {
		op = types.EQ
	}

	// Inside EXISTS the subquery's tables shadow the outer ones, so outer
	// columns must carry a qualifier that none of them uses.
	inner := subqueryQualifier(sub.Target)
	shadowed := map[string]bool{inner: true}
	for _, j := range sub.Joins {
		shadowed[subqueryQualifier(j.Table)] = true
	}
	outer := make([]types.Operand, len(c.Left))
	for i, f := range c.Left {
		if !f.Qualified() {
			return fmt.Errorf("column %s must be qualified to compare a row value with a subquery", f.Name)
		}
		if shadowed[f.Table] {
			return fmt.Errorf("column %s.%s is shadowed by a subquery table; alias the outer table", f.Table, f.Name)
		}
		outer[i] = f
	}
	selected := make([]types.Field, len(sub.Fields))
	for i, f := range sub.Fields {
		if !f.Qualified() {
			f = f.WithTable(inner)
		}
		selected[i] = f
	}

	t.WriteString("EXISTS (SELECT 1 FROM ")
	t.WriteString(t.renderTable(sub.Target))
	subAST := *sub
	subAST.WhereClause = nil
	if err := t.renderJoinsAndWhere(subCtx, &subAST); err != nil {
		return err
	}
	t.WriteString(" WHERE ")
	if err := t.dialect.RenderSelectTupleComparison(t, subCtx, selected, op.Mirror(), outer); err != nil {
		return err
	}
	if sub.WhereClause != nil {
		t.WriteString(" AND (")
		if err := t.RenderCondition(subCtx, sub.WhereClause); err != nil {
			return err
		}
		t.WriteString(")")
	}
	t.WriteString(")")
	return nil
}

func subqueryQualifier(table types.Table) string {
	if table.Aliased() {
		return table.Alias
	}
	return table.Name
}

// EmulateTupleComparison expands (x1, ..., xn) op (y1, ..., yn) into scalar
// comparisons. Equality becomes a conjunction and inequality a disjunction.
// Ordering operators expand lexicographically; with indexOptimized the leading
// column is compared on its own first so an index on it can be used:
//
//	(a, b) < (1, 2)  =>  (a <= 1 AND NOT (a = 1 AND b >= 2))
func (t *Translator) EmulateTupleComparison(ctx *Context, lhs []types.Field, rhs []types.Operand, op types.Operator, indexOptimized bool) error {
	if len(lhs) == 0 || len(lhs) != len(rhs) {
		return fmt.Errorf("tuple arity mismatch: %d vs %d", len(lhs), len(rhs))
	}
	if len(lhs) == 1 {
		return t.dialect.RenderComparison(t, ctx, lhs[0], op, rhs[0])
	}

	switch op {
	case types.EQ, types.NE:
		logic := " AND "
		if op == types.NE {
			logic = " OR "
		}
		t.WriteString("(")
		for i := range lhs {
			if i > 0 {
				t.WriteString(logic)
			}
			if err := t.dialect.RenderComparison(t, ctx, lhs[i], op, rhs[i]); err != nil {
				return err
			}
		}
		t.WriteString(")")
		return nil
	case types.LT, types.LE, types.GT, types.GE:
		if !indexOptimized {
			return t.renderLexicographic(ctx, lhs, rhs, op)
		}
		lead := types.LE
		if op == types.GT || op == types.GE {
			lead = types.GE
		}
		t.WriteString("(")
		if err := t.dialect.RenderComparison(t, ctx, lhs[0], lead, rhs[0]); err != nil {
			return err
		}
		t.WriteString(" AND NOT (")
		if err := t.dialect.RenderComparison(t, ctx, lhs[0], types.EQ, rhs[0]); err != nil {
			return err
		}
		t.WriteString(" AND ")
		if err := t.renderLexicographic(ctx, lhs[1:], rhs[1:], op.Negate()); err != nil {
			return err
		}
		t.WriteString("))")
		return nil
	default:
		return fmt.Errorf("operator %s cannot compare tuples", op)
	}
}

// renderLexicographic writes (x1 s y1 OR (x1 = y1 AND <rest>)) where s is the
// strict form of op and the last column uses op itself.
func (t *Translator) renderLexicographic(ctx *Context, lhs []types.Field, rhs []types.Operand, op types.Operator) error {
	if len(lhs) == 1 {
		return t.dialect.RenderComparison(t, ctx, lhs[0], op, rhs[0])
	}
	t.WriteString("(")
	if err := t.dialect.RenderComparison(t, ctx, lhs[0], op.Strict(), rhs[0]); err != nil {
		return err
	}
	t.WriteString(" OR (")
	if err := t.dialect.RenderComparison(t, ctx, lhs[0], types.EQ, rhs[0]); err != nil {
		return err
	}
	t.WriteString(" AND ")
	if err := t.renderLexicographic(ctx, lhs[1:], rhs[1:], op); err != nil {
		return err
	}
	t.WriteString("))")
	return nil
}

func paramOperands(params []types.Param) []types.Operand {
	out := make([]types.Operand, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}
