package types

// CaseExpression is a searched CASE. Results are fields or parameters; a
// missing Else yields NULL.
type CaseExpression struct {
	WhenClauses []WhenClause
	Else        Operand
}

// WhenClause is one WHEN ... THEN branch.
type WhenClause struct {
	Condition ConditionItem
	Result    Operand
}

// CoalesceExpression returns the first non-null value.
type CoalesceExpression struct {
	Values []Operand
}

// NullIfExpression is NULL when Left equals Right, otherwise Left.
type NullIfExpression struct {
	Left  Operand
	Right Operand
}

// MathFunc names a scalar math function.
type MathFunc string

const (
	MathRound MathFunc = "ROUND"
	MathFloor MathFunc = "FLOOR"
	MathCeil  MathFunc = "CEILING"
	MathAbs   MathFunc = "ABS"
	MathPower MathFunc = "POWER"
	MathSqrt  MathFunc = "SQRT"
)

// MathExpression applies Function to Field. Argument is the ROUND precision
// or the POWER exponent.
type MathExpression struct {
	Function MathFunc
	Field    Field
	Argument *Param
}
