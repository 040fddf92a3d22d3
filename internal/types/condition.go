package types

import "fmt"

// Condition compares a field with a named parameter.
// Values are always parameters, never literals.
type Condition struct {
	Field    Field
	Operator Operator
	Value    Param
}

// ConditionItem represents either a single condition or a group of conditions.
type ConditionItem interface {
	IsConditionItem()
}

// LogicOperator represents how conditions are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// ConditionGroup represents grouped conditions with AND/OR logic.
type ConditionGroup struct {
	Logic      LogicOperator
	Conditions []ConditionItem
}

// FieldComparison compares two fields.
type FieldComparison struct {
	LeftField  Field
	Operator   Operator
	RightField Field
}

// SubqueryCondition applies IN / NOT IN / EXISTS / NOT EXISTS to a subquery.
type SubqueryCondition struct {
	Subquery Subquery
	Field    *Field
	Operator Operator
}

// TupleCondition compares a tuple of fields with a tuple of parameters or
// another tuple of fields: (a, b) < (:x, :y).
type TupleCondition struct {
	Left     []Field
	Operator Operator
	Values   []Param
	Right    []Field
}

// RightOperands returns the right-hand side as operands.
func (c TupleCondition) RightOperands() []Operand {
	if len(c.Right) > 0 {
		out := make([]Operand, len(c.Right))
		for i, f := range c.Right {
			out[i] = f
		}
		return out
	}
	out := make([]Operand, len(c.Values))
	for i, p := range c.Values {
		out[i] = p
	}
	return out
}

func (c TupleCondition) validate() error {
	if len(c.Left) == 0 || len(c.Left) > MaxTupleArity {
		return fmt.Errorf("tuple arity must be between 1 and %d", MaxTupleArity)
	}
	if len(c.Values) > 0 && len(c.Right) > 0 {
		return fmt.Errorf("tuple comparison takes either parameters or fields, not both")
	}
	if n := len(c.RightOperands()); n != len(c.Left) {
		return fmt.Errorf("tuple arity mismatch: %d vs %d", len(c.Left), n)
	}
	if !c.Operator.IsComparison() {
		return fmt.Errorf("operator %s cannot compare tuples", c.Operator)
	}
	return nil
}

// TupleInCondition tests a tuple against a list of parameter rows:
// (a, b) IN ((:a1, :b1), (:a2, :b2)).
type TupleInCondition struct {
	Left    []Field
	Rows    [][]Param
	Negated bool
}

func (c TupleInCondition) validate() error {
	if len(c.Left) == 0 || len(c.Left) > MaxTupleArity {
		return fmt.Errorf("tuple arity must be between 1 and %d", MaxTupleArity)
	}
	if len(c.Rows) == 0 {
		return fmt.Errorf("tuple IN requires at least one row")
	}
	for i, row := range c.Rows {
		if len(row) != len(c.Left) {
			return fmt.Errorf("tuple IN row %d has %d values, want %d", i, len(row), len(c.Left))
		}
	}
	return nil
}

// SubqueryTupleCondition compares a tuple of fields with the rows of a subquery:
// (a, b) IN (SELECT x, y ...) or (a, b) = (SELECT x, y ...).
type SubqueryTupleCondition struct {
	Left     []Field
	Operator Operator
	Subquery Subquery
}

func (Condition) IsConditionItem()              {}
func (ConditionGroup) IsConditionItem()         {}
func (FieldComparison) IsConditionItem()        {}
func (SubqueryCondition) IsConditionItem()      {}
func (TupleCondition) IsConditionItem()         {}
func (TupleInCondition) IsConditionItem()       {}
func (SubqueryTupleCondition) IsConditionItem() {}
