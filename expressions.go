package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// Helper functions for creating field expressions.

// Sum creates a SUM aggregate expression.
func Sum(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggSum}
}

// Avg creates an AVG aggregate expression.
func Avg(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggAvg}
}

// Min creates a MIN aggregate expression.
func Min(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggMin}
}

// Max creates a MAX aggregate expression.
func Max(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggMax}
}

// CountField creates a COUNT aggregate expression for a specific field.
func CountField(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggCountField}
}

// CountStar creates a COUNT(*) expression.
func CountStar() types.FieldExpression {
	return types.FieldExpression{Aggregate: types.AggCountField}
}

// CountDistinct creates a COUNT(DISTINCT) aggregate expression.
func CountDistinct(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field, Aggregate: types.AggCountDistinct}
}

// Col selects a plain column; use it with As to alias a column.
func Col(field types.Field) types.FieldExpression {
	return types.FieldExpression{Field: field}
}

// Predicate selects the truth value of a condition. Dialects without a
// boolean type render it as CASE WHEN <condition> THEN 1 ELSE 0 END.
func Predicate(cond types.ConditionItem) types.FieldExpression {
	return types.FieldExpression{Predicate: cond}
}

// Case starts a searched CASE expression.
func Case() *CaseBuilder {
	return &CaseBuilder{}
}

// CaseBuilder assembles a CASE expression branch by branch.
type CaseBuilder struct {
	expr  types.CaseExpression
	alias string
}

// When adds a WHEN condition THEN result branch. result is a field or a param.
func (cb *CaseBuilder) When(condition types.ConditionItem, result types.Operand) *CaseBuilder {
	cb.expr.WhenClauses = append(cb.expr.WhenClauses, types.WhenClause{Condition: condition, Result: result})
	return cb
}

// Else sets the value used when no branch matches.
func (cb *CaseBuilder) Else(result types.Operand) *CaseBuilder {
	cb.expr.Else = result
	return cb
}

// As aliases the CASE expression and returns it.
func (cb *CaseBuilder) As(alias string) types.FieldExpression {
	return As(cb.Build(), alias)
}

// Build returns the CASE expression. It panics without a WHEN branch.
func (cb *CaseBuilder) Build() types.FieldExpression {
	if len(cb.expr.WhenClauses) == 0 {
		panic(fmt.Errorf("CASE requires at least one WHEN"))
	}
	expr := cb.expr
	expr.WhenClauses = append([]types.WhenClause(nil), cb.expr.WhenClauses...)
	return types.FieldExpression{Case: &expr}
}

// Coalesce selects the first non-null of values.
func Coalesce(values ...types.Operand) types.FieldExpression {
	if len(values) < 2 {
		panic(fmt.Errorf("COALESCE requires at least 2 values"))
	}
	return types.FieldExpression{Coalesce: &types.CoalesceExpression{Values: values}}
}

// NullIf selects NULL when left equals right, otherwise left.
func NullIf(left, right types.Operand) types.FieldExpression {
	return types.FieldExpression{NullIf: &types.NullIfExpression{Left: left, Right: right}}
}

func mathExpr(fn types.MathFunc, field types.Field, arg *types.Param) types.FieldExpression {
	return types.FieldExpression{Math: &types.MathExpression{Function: fn, Field: field, Argument: arg}}
}

// Round rounds field to precision digits, or to an integer without one.
func Round(field types.Field, precision ...types.Param) types.FieldExpression {
	if len(precision) > 0 {
		return mathExpr(types.MathRound, field, &precision[0])
	}
	return mathExpr(types.MathRound, field, nil)
}

// Floor creates a FLOOR expression.
func Floor(field types.Field) types.FieldExpression { return mathExpr(types.MathFloor, field, nil) }

// Ceil creates a CEILING expression.
func Ceil(field types.Field) types.FieldExpression { return mathExpr(types.MathCeil, field, nil) }

// Abs creates an ABS expression.
func Abs(field types.Field) types.FieldExpression { return mathExpr(types.MathAbs, field, nil) }

// Power raises field to exponent.
func Power(field types.Field, exponent types.Param) types.FieldExpression {
	return mathExpr(types.MathPower, field, &exponent)
}

// Sqrt creates a SQRT expression.
func Sqrt(field types.Field) types.FieldExpression { return mathExpr(types.MathSqrt, field, nil) }

// As returns expr with an alias.
func As(expr types.FieldExpression, alias string) types.FieldExpression {
	if !isValidSQLIdentifier(alias) {
		panic(fmt.Errorf("invalid alias: %q is not a valid identifier", alias))
	}
	expr.Alias = alias
	return expr
}

// CF creates a field comparison condition.
func CF(left types.Field, op types.Operator, right types.Field) types.FieldComparison {
	return types.FieldComparison{
		LeftField:  left,
		Operator:   op,
		RightField: right,
	}
}

// CSub creates a subquery condition with a field.
func CSub(field types.Field, op types.Operator, subquery types.Subquery) types.SubqueryCondition {
	switch op {
	case types.IN, types.NotIn:
	default:
		panic(fmt.Errorf("operator %s cannot be used with CSub - use CSubExists for EXISTS/NOT EXISTS", op))
	}

	return types.SubqueryCondition{
		Field:    &field,
		Operator: op,
		Subquery: subquery,
	}
}

// CSubExists creates an EXISTS/NOT EXISTS subquery condition.
func CSubExists(op types.Operator, subquery types.Subquery) types.SubqueryCondition {
	switch op {
	case types.EXISTS, types.NotExists:
	default:
		panic(fmt.Errorf("CSubExists only accepts EXISTS or NOT EXISTS, got %s", op))
	}

	return types.SubqueryCondition{
		Operator: op,
		Subquery: subquery,
	}
}

// Sub creates a subquery from a builder.
func Sub(builder *Builder) types.Subquery {
	ast, err := builder.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build subquery: %w", err))
	}
	if ast.Operation != types.OpSelect {
		panic(fmt.Errorf("subquery must be SELECT, got %s", ast.Operation))
	}
	return types.Subquery{AST: ast}
}

// WindowBuilder provides a fluent API for the OVER clause of a window function.
type WindowBuilder struct {
	expr types.WindowExpression
}

// RowNumber starts a ROW_NUMBER() window expression.
func RowNumber() *WindowBuilder {
	return &WindowBuilder{expr: types.WindowExpression{Function: types.WinRowNumber}}
}

// Rank starts a RANK() window expression.
func Rank() *WindowBuilder {
	return &WindowBuilder{expr: types.WindowExpression{Function: types.WinRank}}
}

// DenseRank starts a DENSE_RANK() window expression.
func DenseRank() *WindowBuilder {
	return &WindowBuilder{expr: types.WindowExpression{Function: types.WinDenseRank}}
}

// SumOver starts a SUM(field) OVER (...) expression.
func SumOver(field types.Field) *WindowBuilder {
	return Over(Sum(field))
}

// CountOver starts a COUNT(*) OVER (...) expression.
func CountOver() *WindowBuilder {
	return &WindowBuilder{expr: types.WindowExpression{Aggregate: types.AggCountField}}
}

// Over turns an aggregate expression such as Avg(f) into a window
// expression. It panics if expr is not an aggregate.
func Over(expr types.FieldExpression) *WindowBuilder {
	if expr.Aggregate == "" || expr.Window != nil || expr.Predicate != nil {
		panic(fmt.Errorf("Over requires an aggregate expression"))
	}
	w := types.WindowExpression{Aggregate: expr.Aggregate}
	if expr.Field.Name != "" {
		field := expr.Field
		w.Field = &field
	}
	return &WindowBuilder{expr: w}
}

// PartitionBy appends items to the PARTITION BY list. Items are fields,
// literals (Lit) or summarizations (Rollup, Cube).
func (w *WindowBuilder) PartitionBy(items ...types.PartitionItem) *WindowBuilder {
	w.expr.Window.PartitionBy = append(w.expr.Window.PartitionBy, items...)
	return w
}

// OrderBy appends a window ordering column.
func (w *WindowBuilder) OrderBy(field types.Field, direction types.Direction) *WindowBuilder {
	w.expr.Window.OrderBy = append(w.expr.Window.OrderBy, types.OrderBy{Field: field, Direction: direction})
	return w
}

// As finishes the window expression with an alias.
func (w *WindowBuilder) As(alias string) types.FieldExpression {
	return As(w.Build(), alias)
}

// Build finishes the window expression without an alias.
func (w *WindowBuilder) Build() types.FieldExpression {
	expr := w.expr
	return types.FieldExpression{Window: &expr}
}

// Lit creates a constant partition item.
func Lit(value any) types.Literal {
	switch value.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
	default:
		panic(fmt.Errorf("unsupported literal type: %T", value))
	}
	return types.Literal{Value: value}
}

// Rollup creates a ROLLUP(...) partition item.
func Rollup(fields ...types.Field) types.Summarization {
	return types.Summarization{Kind: types.Rollup, Fields: fields}
}

// Cube creates a CUBE(...) partition item.
func Cube(fields ...types.Field) types.Summarization {
	return types.Summarization{Kind: types.Cube, Fields: fields}
}
