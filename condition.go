package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// TryC creates a simple condition, returning an error if invalid.
func TryC(f types.Field, op types.Operator, v types.Param) (types.Condition, error) {
	switch op {
	case types.IsNull, types.IsNotNull:
		return types.Condition{}, fmt.Errorf("use Null or NotNull for %s", op)
	case types.EXISTS, types.NotExists:
		return types.Condition{}, fmt.Errorf("use CSubExists for %s", op)
	}
	return types.Condition{
		Field:    f,
		Operator: op,
		Value:    v,
	}, nil
}

// C creates a simple condition.
func C(f types.Field, op types.Operator, v types.Param) types.Condition {
	c, err := TryC(f, op, v)
	if err != nil {
		panic(err)
	}
	return c
}

// Null creates an IS NULL condition.
func Null(f types.Field) types.Condition {
	return types.Condition{Field: f, Operator: types.IsNull}
}

// NotNull creates an IS NOT NULL condition.
func NotNull(f types.Field) types.Condition {
	return types.Condition{Field: f, Operator: types.IsNotNull}
}

// TryAnd creates a ConditionGroup with AND logic, returning an error if invalid.
func TryAnd(conditions ...types.ConditionItem) (types.ConditionGroup, error) {
	if len(conditions) == 0 {
		return types.ConditionGroup{}, fmt.Errorf("AND requires at least one condition")
	}
	return types.ConditionGroup{
		Logic:      types.AND,
		Conditions: conditions,
	}, nil
}

// And creates a ConditionGroup with AND logic.
func And(conditions ...types.ConditionItem) types.ConditionGroup {
	g, err := TryAnd(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryOr creates a ConditionGroup with OR logic, returning an error if invalid.
func TryOr(conditions ...types.ConditionItem) (types.ConditionGroup, error) {
	if len(conditions) == 0 {
		return types.ConditionGroup{}, fmt.Errorf("OR requires at least one condition")
	}
	return types.ConditionGroup{
		Logic:      types.OR,
		Conditions: conditions,
	}, nil
}

// Or creates a ConditionGroup with OR logic.
func Or(conditions ...types.ConditionItem) types.ConditionGroup {
	g, err := TryOr(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}

// DistinctFrom is true when f and p differ, treating two NULLs as equal and
// NULL as different from every value.
func DistinctFrom(f types.Field, p types.Param) types.Condition {
	return types.Condition{Field: f, Operator: types.DistinctFrom, Value: p}
}

// NotDistinctFrom is the null-safe equality of f and p.
func NotDistinctFrom(f types.Field, p types.Param) types.Condition {
	return types.Condition{Field: f, Operator: types.NotDistinctFrom, Value: p}
}

// DistinctFromField compares two columns with IS DISTINCT FROM semantics.
func DistinctFromField(left, right types.Field) types.FieldComparison {
	return CF(left, types.DistinctFrom, right)
}

// NotDistinctFromField compares two columns with IS NOT DISTINCT FROM semantics.
func NotDistinctFromField(left, right types.Field) types.FieldComparison {
	return CF(left, types.NotDistinctFrom, right)
}

// TryTuple compares a row of fields with a row of parameters:
// (a, b) < (:x, :y).
func TryTuple(fields []types.Field, op types.Operator, params ...types.Param) (types.TupleCondition, error) {
	c := types.TupleCondition{Left: fields, Operator: op, Values: params}
	if len(fields) != len(params) {
		return c, fmt.Errorf("tuple has %d fields and %d parameters", len(fields), len(params))
	}
	if !op.IsComparison() {
		return c, fmt.Errorf("operator %s cannot compare tuples", op)
	}
	return c, nil
}

// Tuple compares a row of fields with a row of parameters.
func Tuple(fields []types.Field, op types.Operator, params ...types.Param) types.TupleCondition {
	c, err := TryTuple(fields, op, params...)
	if err != nil {
		panic(err)
	}
	return c
}

// TupleFields compares two rows of fields: (a, b) = (c, d).
func TupleFields(left []types.Field, op types.Operator, right []types.Field) types.TupleCondition {
	if len(left) != len(right) {
		panic(fmt.Errorf("tuple arity mismatch: %d vs %d", len(left), len(right)))
	}
	if !op.IsComparison() {
		panic(fmt.Errorf("operator %s cannot compare tuples", op))
	}
	return types.TupleCondition{Left: left, Operator: op, Right: right}
}

// TupleIn tests a row of fields against rows of parameters:
// (a, b) IN ((:a1, :b1), (:a2, :b2)).
func TupleIn(fields []types.Field, rows ...[]types.Param) types.TupleInCondition {
	return types.TupleInCondition{Left: fields, Rows: rows}
}

// TupleNotIn is the negation of TupleIn.
func TupleNotIn(fields []types.Field, rows ...[]types.Param) types.TupleInCondition {
	return types.TupleInCondition{Left: fields, Rows: rows, Negated: true}
}

// TupleSub compares a row of fields with the rows of a subquery. op is IN,
// NOT IN or a comparison operator.
func TupleSub(fields []types.Field, op types.Operator, subquery types.Subquery) types.SubqueryTupleCondition {
	if op != types.IN && op != types.NotIn && !op.IsComparison() {
		panic(fmt.Errorf("operator %s cannot compare a tuple with a subquery", op))
	}
	return types.SubqueryTupleCondition{Left: fields, Operator: op, Subquery: subquery}
}
