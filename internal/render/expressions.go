package render

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// RenderFieldExpression writes a select-list item with its alias.
func (t *Translator) RenderFieldExpression(ctx *Context, expr types.FieldExpression) error {
	switch {
	case expr.Predicate != nil:
		t.WriteString("(")
		if err := t.RenderCondition(ctx, expr.Predicate); err != nil {
			return err
		}
		t.WriteString(")")
	case expr.Window != nil:
		if err := t.renderWindowExpression(ctx, *expr.Window); err != nil {
			return err
		}
	case expr.Aggregate != "":
		t.WriteString(t.renderAggregateExpression(expr.Aggregate, expr.Field))
	case expr.Case != nil:
		if err := t.renderCaseExpression(ctx, *expr.Case); err != nil {
			return err
		}
	case expr.Coalesce != nil:
		t.WriteString("COALESCE(")
		t.renderBareOperandList(ctx, expr.Coalesce.Values)
		t.WriteString(")")
	case expr.NullIf != nil:
		t.WriteString("NULLIF(")
		t.renderBareOperandList(ctx, []types.Operand{expr.NullIf.Left, expr.NullIf.Right})
		t.WriteString(")")
	case expr.Math != nil:
		if err := t.renderMathExpression(ctx, *expr.Math); err != nil {
			return err
		}
	default:
		t.WriteString(t.RenderField(expr.Field))
	}

	t.writeAlias(expr.Alias)
	return nil
}

// RenderExpressionAsClauseItem writes a predicate as an integer-valued
// expression usable in a select list: CASE WHEN <p> THEN 1 ELSE 0 END.
func (t *Translator) RenderExpressionAsClauseItem(ctx *Context, pred types.ConditionItem) error {
	t.WriteString("CASE WHEN ")
	if err := t.RenderCondition(ctx, pred); err != nil {
		return err
	}
	t.WriteString(" THEN 1 ELSE 0 END")
	return nil
}

func (t *Translator) renderCaseExpression(ctx *Context, expr types.CaseExpression) error {
	t.WriteString("CASE")
	for _, when := range expr.WhenClauses {
		t.WriteString(" WHEN ")
		if err := t.RenderCondition(ctx, when.Condition); err != nil {
			return err
		}
		t.WriteString(" THEN ")
		t.RenderOperand(ctx, when.Result)
	}
	if expr.Else != nil {
		t.WriteString(" ELSE ")
		t.RenderOperand(ctx, expr.Else)
	}
	t.WriteString(" END")
	return nil
}

func (t *Translator) renderBareOperandList(ctx *Context, ops []types.Operand) {
	for i, op := range ops {
		if i > 0 {
			t.WriteString(", ")
		}
		t.RenderOperand(ctx, op)
	}
}

func (t *Translator) renderMathExpression(ctx *Context, expr types.MathExpression) error {
	switch expr.Function {
	case types.MathRound:
		t.WriteString("ROUND(" + t.RenderField(expr.Field) + ", ")
		if expr.Argument != nil {
			t.WriteString(t.AddParam(ctx, *expr.Argument))
		} else {
			t.WriteString("0")
		}
		t.WriteString(")")
	case types.MathPower:
		if expr.Argument == nil {
			return fmt.Errorf("POWER requires an exponent")
		}
		t.WriteString("POWER(" + t.RenderField(expr.Field) + ", " + t.AddParam(ctx, *expr.Argument) + ")")
	case types.MathFloor, types.MathCeil, types.MathAbs, types.MathSqrt:
		t.WriteString(string(expr.Function) + "(" + t.RenderField(expr.Field) + ")")
	default:
		return fmt.Errorf("unsupported math function: %s", expr.Function)
	}
	return nil
}

func (t *Translator) writeAlias(alias string) {
	if alias != "" {
		t.WriteString(" AS ")
		t.WriteString(t.QuoteIdentifier(alias))
	}
}

func (t *Translator) renderAggregateExpression(aggregate types.AggregateFunc, field types.Field) string {
	switch aggregate {
	case types.AggCountField:
		if field.Name == "" {
			return countStarSQL
		}
		return fmt.Sprintf("COUNT(%s)", t.RenderField(field))
	case types.AggCountDistinct:
		return fmt.Sprintf("COUNT(DISTINCT %s)", t.RenderField(field))
	case types.AggSum, types.AggAvg, types.AggMin, types.AggMax:
		return fmt.Sprintf("%s(%s)", aggregate, t.RenderField(field))
	default:
		return t.RenderField(field)
	}
}

func (t *Translator) renderWindowExpression(ctx *Context, expr types.WindowExpression) error {
	switch {
	case expr.Function != "":
		switch expr.Function {
		case types.WinRowNumber, types.WinRank, types.WinDenseRank:
			t.WriteString(string(expr.Function) + "()")
		default:
			return fmt.Errorf("unknown window function: %s", expr.Function)
		}
	case expr.Aggregate != "":
		if expr.Field != nil {
			t.WriteString(t.renderAggregateExpression(expr.Aggregate, *expr.Field))
		} else {
			t.WriteString(countStarSQL)
		}
	default:
		return fmt.Errorf("window expression requires a function or an aggregate")
	}

	t.WriteString(" OVER (")

	if len(expr.Window.PartitionBy) > 0 {
		t.WriteString("PARTITION BY ")
		for i, item := range expr.Window.PartitionBy {
			if i > 0 {
				t.WriteString(", ")
			}
			if err := t.dialect.RenderPartitionItem(t, ctx, item); err != nil {
				return err
			}
		}
	}

	if len(expr.Window.OrderBy) > 0 {
		if len(expr.Window.PartitionBy) > 0 {
			t.WriteString(" ")
		}
		t.WriteString("ORDER BY ")
		for i, order := range expr.Window.OrderBy {
			if i > 0 {
				t.WriteString(", ")
			}
			dir := order.Direction
			if dir == "" {
				dir = types.ASC
			}
			t.WriteString(t.RenderField(order.Field) + " " + string(dir))
		}
	}

	t.WriteString(")")
	return nil
}
