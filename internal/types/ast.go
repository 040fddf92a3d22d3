package types

import "fmt"

// Operation represents the type of query operation.
type Operation string

const (
	OpSelect Operation = "SELECT"
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
	OpCount  Operation = "COUNT"
)

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderBy represents an ORDER BY clause.
type OrderBy struct {
	Field     Field
	Direction Direction
}

// JoinType represents the type of SQL join.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
	CrossJoin JoinType = "CROSS JOIN"
)

// Join represents a SQL JOIN clause.
type Join struct {
	On    ConditionItem
	Table Table
	Type  JoinType
}

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc string

const (
	AggSum AggregateFunc = "SUM"
	AggAvg AggregateFunc = "AVG"
	AggMin AggregateFunc = "MIN"
	AggMax AggregateFunc = "MAX"
	// COUNT is also an operation; as an aggregate it counts a field (or * when the field is empty).
	AggCountField    AggregateFunc = "COUNT"
	AggCountDistinct AggregateFunc = "COUNT_DISTINCT"
)

// FieldExpression is one item of a select list.
// At most one of Aggregate, Window, Predicate, Case, Coalesce, NullIf or Math
// may be set; when none is set the expression is a plain column reference to
// Field.
type FieldExpression struct {
	Field     Field
	Aggregate AggregateFunc
	Window    *WindowExpression
	Predicate ConditionItem
	Case      *CaseExpression
	Coalesce  *CoalesceExpression
	NullIf    *NullIfExpression
	Math      *MathExpression
	Alias     string
}

// IsColumnReference reports whether the expression is a bare column reference.
func (e FieldExpression) IsColumnReference() bool {
	return e.kinds() == 0 && e.Field.Name != ""
}

func (e FieldExpression) kinds() int {
	n := 0
	for _, set := range []bool{
		e.Aggregate != "", e.Window != nil, e.Predicate != nil,
		e.Case != nil, e.Coalesce != nil, e.NullIf != nil, e.Math != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Lock describes a row locking request (FOR UPDATE / FOR SHARE).
type Lock struct {
	Mode LockMode
	Wait LockWait
}

// LockMode is the strength of a row lock.
type LockMode string

const (
	LockForUpdate LockMode = "FOR UPDATE"
	LockForShare  LockMode = "FOR SHARE"
)

// LockWait controls what happens when a row is already locked.
type LockWait string

const (
	LockWaitDefault LockWait = ""
	LockNoWait      LockWait = "NOWAIT"
	LockSkipLocked  LockWait = "SKIP LOCKED"
)

// Subquery represents a nested query.
type Subquery struct {
	AST *AST
}

// Limits enforced by Validate.
const (
	MaxSubqueryDepth   = 3
	MaxConditionDepth  = 10
	MaxJoinCount       = 10
	MaxFieldCount      = 100
	MaxWindowFunctions = 10
	MaxTupleArity      = 16
)

// AST is the abstract syntax tree of a single query.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type AST struct {
	Operation        Operation
	Target           Table
	Fields           []Field
	FieldExpressions []FieldExpression
	WhereClause      ConditionItem
	Joins            []Join
	GroupBy          []Field
	Having           []ConditionItem
	Ordering         []OrderBy
	Limit            *PaginationValue
	Offset           *PaginationValue
	FetchType        FetchType
	Lock             *Lock
	Updates          map[Field]Param   // For UPDATE operations
	Values           []map[Field]Param // For INSERT operations
	Returning        []Field
	IdentityColumn   *Field // INSERT: column whose generated key is fetched afterwards
	Distinct         bool
}

// Validate performs structural validation on the AST.
func (ast *AST) Validate() error {
	if ast.Target.Name == "" {
		return fmt.Errorf("target table is required")
	}

	if len(ast.Joins) > MaxJoinCount {
		return fmt.Errorf("too many JOINs: %d (max %d)", len(ast.Joins), MaxJoinCount)
	}
	if len(ast.Fields)+len(ast.FieldExpressions) > MaxFieldCount {
		return fmt.Errorf("too many fields: %d (max %d)", len(ast.Fields)+len(ast.FieldExpressions), MaxFieldCount)
	}

	windows := 0
	for i := range ast.FieldExpressions {
		expr := &ast.FieldExpressions[i]
		if expr.kinds() > 1 {
			return fmt.Errorf("field expression %d mixes several expression kinds", i)
		}
		if expr.Window != nil {
			windows++
		}
		if expr.Predicate != nil {
			if err := validateConditionDepth(expr.Predicate, 0); err != nil {
				return err
			}
		}
		if expr.Case != nil {
			if len(expr.Case.WhenClauses) == 0 {
				return fmt.Errorf("field expression %d: CASE requires at least one WHEN", i)
			}
			for _, w := range expr.Case.WhenClauses {
				if w.Condition == nil || w.Result == nil {
					return fmt.Errorf("field expression %d: WHEN requires a condition and a result", i)
				}
				if err := validateConditionDepth(w.Condition, 0); err != nil {
					return err
				}
			}
		}
		if expr.Coalesce != nil && len(expr.Coalesce.Values) < 2 {
			return fmt.Errorf("field expression %d: COALESCE requires at least 2 values", i)
		}
		if expr.NullIf != nil && (expr.NullIf.Left == nil || expr.NullIf.Right == nil) {
			return fmt.Errorf("field expression %d: NULLIF requires two values", i)
		}
	}
	if windows > MaxWindowFunctions {
		return fmt.Errorf("too many window functions: %d (max %d)", windows, MaxWindowFunctions)
	}

	switch ast.Operation {
	case OpSelect, OpCount:
	case OpInsert:
		if len(ast.Values) == 0 {
			return fmt.Errorf("INSERT requires at least one value set")
		}
		if len(ast.Values) > 1 {
			firstKeys := make(map[Field]bool)
			for k := range ast.Values[0] {
				firstKeys[k] = true
			}
			for i, valueSet := range ast.Values[1:] {
				if len(valueSet) != len(firstKeys) {
					return fmt.Errorf("value set %d has different number of fields", i+1)
				}
				for k := range valueSet {
					if !firstKeys[k] {
						return fmt.Errorf("value set %d has different fields", i+1)
					}
				}
			}
		}
	case OpUpdate:
		if len(ast.Updates) == 0 {
			return fmt.Errorf("UPDATE requires at least one field to update")
		}
		if ast.Distinct || len(ast.Joins) > 0 || len(ast.GroupBy) > 0 {
			return fmt.Errorf("UPDATE cannot have SELECT features like DISTINCT, JOIN, or GROUP BY")
		}
	case OpDelete:
		if ast.Distinct || len(ast.Joins) > 0 || len(ast.GroupBy) > 0 {
			return fmt.Errorf("DELETE cannot have SELECT features like DISTINCT, JOIN, or GROUP BY")
		}
	default:
		return fmt.Errorf("unsupported operation: %s", ast.Operation)
	}

	if ast.Operation != OpSelect {
		if ast.Limit != nil || ast.Offset != nil {
			return fmt.Errorf("%s cannot have LIMIT or OFFSET", ast.Operation)
		}
		if ast.Lock != nil {
			return fmt.Errorf("%s cannot have a row lock", ast.Operation)
		}
	}

	if ast.IdentityColumn != nil && ast.Operation != OpInsert {
		return fmt.Errorf("identity retrieval only applies to INSERT")
	}

	if len(ast.Having) > 0 && len(ast.GroupBy) == 0 {
		return fmt.Errorf("HAVING requires GROUP BY")
	}

	if err := ast.Limit.validate("LIMIT"); err != nil {
		return err
	}
	if err := ast.Offset.validate("OFFSET"); err != nil {
		return err
	}
	if ast.FetchType != "" && !ast.FetchType.valid() {
		return fmt.Errorf("unknown fetch type: %s", ast.FetchType)
	}

	if ast.WhereClause != nil {
		if err := validateConditionDepth(ast.WhereClause, 0); err != nil {
			return err
		}
	}
	for _, cond := range ast.Having {
		if err := validateConditionDepth(cond, 0); err != nil {
			return err
		}
	}
	for _, join := range ast.Joins {
		if join.On != nil {
			if err := validateConditionDepth(join.On, 0); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateConditionDepth bounds condition nesting and checks tuple shapes.
func validateConditionDepth(cond ConditionItem, depth int) error {
	if depth > MaxConditionDepth {
		return fmt.Errorf("condition nesting exceeds maximum depth (%d)", MaxConditionDepth)
	}

	switch c := cond.(type) {
	case ConditionGroup:
		for _, sub := range c.Conditions {
			if err := validateConditionDepth(sub, depth+1); err != nil {
				return err
			}
		}
	case TupleCondition:
		return c.validate()
	case TupleInCondition:
		return c.validate()
	case SubqueryTupleCondition:
		if len(c.Left) == 0 || len(c.Left) > MaxTupleArity {
			return fmt.Errorf("tuple arity must be between 1 and %d", MaxTupleArity)
		}
	}
	return nil
}
