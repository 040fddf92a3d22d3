package types

import "fmt"

// SetOperation combines the results of two queries.
type SetOperation string

const (
	SetUnion        SetOperation = "UNION"
	SetUnionAll     SetOperation = "UNION ALL"
	SetIntersect    SetOperation = "INTERSECT"
	SetIntersectAll SetOperation = "INTERSECT ALL"
	SetExcept       SetOperation = "EXCEPT"
	SetExceptAll    SetOperation = "EXCEPT ALL"
)

// IsIntersect reports whether op is either INTERSECT form.
func (op SetOperation) IsIntersect() bool {
	return op == SetIntersect || op == SetIntersectAll
}

// SetOperand is one query joined to the base by a set operation.
type SetOperand struct {
	AST       *AST
	Operation SetOperation
}

// CompoundQuery is a chain of SELECTs combined with set operations.
type CompoundQuery struct {
	Base     *AST
	Operands []SetOperand
	Ordering []OrderBy
	Limit    *PaginationValue
	Offset   *PaginationValue
}

// Validate checks that every member is a valid SELECT.
func (q *CompoundQuery) Validate() error {
	if q.Base == nil {
		return fmt.Errorf("compound query requires a base query")
	}
	if len(q.Operands) == 0 {
		return fmt.Errorf("compound query requires at least one set operation")
	}
	members := []*AST{q.Base}
	for _, op := range q.Operands {
		if op.AST == nil {
			return fmt.Errorf("%s operand is nil", op.Operation)
		}
		members = append(members, op.AST)
	}
	for i, m := range members {
		if m.Operation != OpSelect {
			return fmt.Errorf("compound member %d must be SELECT, got %s", i, m.Operation)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("compound member %d: %w", i, err)
		}
	}
	if err := q.Limit.validate("LIMIT"); err != nil {
		return err
	}
	return q.Offset.validate("OFFSET")
}
