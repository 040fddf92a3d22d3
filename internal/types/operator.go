package types

// Operator represents query comparison operators.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "<>"
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Extended operators.
	IN        Operator = "IN"
	NotIn     Operator = "NOT IN"
	LIKE      Operator = "LIKE"
	NotLike   Operator = "NOT LIKE"
	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"
	EXISTS    Operator = "EXISTS"
	NotExists Operator = "NOT EXISTS"

	// Null-safe comparison.
	DistinctFrom    Operator = "IS DISTINCT FROM"
	NotDistinctFrom Operator = "IS NOT DISTINCT FROM"
)

// IsComparison reports whether op is one of the six relational operators.
func (op Operator) IsComparison() bool {
	switch op {
	case EQ, NE, GT, GE, LT, LE:
		return true
	}
	return false
}

// IsOrdering reports whether op is <, <=, > or >=.
func (op Operator) IsOrdering() bool {
	switch op {
	case GT, GE, LT, LE:
		return true
	}
	return false
}

// Mirror returns the operator that gives the same result with the operands swapped.
func (op Operator) Mirror() Operator {
	switch op {
	case GT:
		return LT
	case GE:
		return LE
	case LT:
		return GT
	case LE:
		return GE
	}
	return op
}

// Negate returns the logical complement of a relational operator.
func (op Operator) Negate() Operator {
	switch op {
	case EQ:
		return NE
	case NE:
		return EQ
	case GT:
		return LE
	case GE:
		return LT
	case LT:
		return GE
	case LE:
		return GT
	case IN:
		return NotIn
	case NotIn:
		return IN
	case DistinctFrom:
		return NotDistinctFrom
	case NotDistinctFrom:
		return DistinctFrom
	}
	return op
}

// Strict returns the strict form of an ordering operator (<= becomes <).
func (op Operator) Strict() Operator {
	switch op {
	case GE:
		return GT
	case LE:
		return LT
	}
	return op
}
