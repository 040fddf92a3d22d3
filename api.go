// Package irisql builds SQL statements as an abstract syntax tree and renders
// them for InterSystems IRIS or standard SQL.
//
// The package generates an AST from fluent builder calls, then renders it
// with named parameters through a dialect renderer.
//
// # Basic Usage
//
//	import "github.com/irisql/irisql/iris"
//
//	query := irisql.Select(irisql.T("users")).
//		Fields(irisql.F("id"), irisql.F("name")).
//		Where(irisql.C(irisql.F("active"), irisql.EQ, irisql.P("active"))).
//		OrderBy(irisql.F("name"), irisql.ASC).
//		Limit(10).
//		Offset(20)
//
//	result, err := query.Render(iris.New())
//	// result.SQL:  SELECT TOP (30) "id", "name" FROM "users" WHERE "active" = :active ORDER BY "name" ASC
//	// result.Skip: 20
//
// # Dialects
//
// IRIS has no OFFSET clause, no row value constructors, no IS DISTINCT FROM
// predicate and no INTERSECT. The iris renderer emulates what it can: offsets
// are folded into TOP and reported through QueryResult.Skip, tuple comparisons
// and null-safe comparisons are expanded into scalar predicates. Constructs it
// cannot express fail with an UnsupportedFeatureError.
//
// The ansi renderer uses the standard form of every construct.
//
// # Schema-Validated Usage
//
// An instance created from a DBML schema validates table and field names:
//
//	instance, err := irisql.NewFromDBML(project)
//	if err != nil {
//		return err
//	}
//
//	users := instance.T("users")
//	email := instance.F("email")
//
// # Output Format
//
// All queries use named parameters (`:param_name`). Derived parameters, such
// as a TOP count combining a limit and an offset parameter, are computed by
// QueryResult.Bind.
package irisql

import (
	"github.com/irisql/irisql/internal/render"
	"github.com/irisql/irisql/internal/types"
)

// AST represents the abstract syntax tree for a query.
// This is re-exported from internal/types for use by consumers.
type AST = types.AST

// QueryResult contains the rendered SQL and required parameters.
type QueryResult = types.QueryResult

// DerivedParam is a parameter computed from caller-supplied parameters.
type DerivedParam = types.DerivedParam

// Table is a table reference with an optional alias.
type Table = types.Table

// Field is a column reference with an optional table qualifier.
type Field = types.Field

// Param is a named parameter reference.
type Param = types.Param

// Operation represents the type of query operation.
type Operation = types.Operation

// Re-export operation constants for public API.
const (
	OpSelect = types.OpSelect
	OpInsert = types.OpInsert
	OpUpdate = types.OpUpdate
	OpDelete = types.OpDelete
	OpCount  = types.OpCount
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// Operator represents SQL comparison operators.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Basic comparison operators.
	EQ = types.EQ
	NE = types.NE
	GT = types.GT
	GE = types.GE
	LT = types.LT
	LE = types.LE

	// Extended operators.
	IN        = types.IN
	NotIn     = types.NotIn
	LIKE      = types.LIKE
	NotLike   = types.NotLike
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull
	EXISTS    = types.EXISTS
	NotExists = types.NotExists

	// Null-safe comparison.
	IsDistinctFrom    = types.DistinctFrom
	IsNotDistinctFrom = types.NotDistinctFrom
)

// ConditionItem represents either a single condition or a group of conditions.
type ConditionItem = types.ConditionItem

// Condition compares a field with a parameter.
type Condition = types.Condition

// ConditionGroup combines conditions with AND or OR.
type ConditionGroup = types.ConditionGroup

// FieldComparison compares two fields.
type FieldComparison = types.FieldComparison

// SubqueryCondition compares a field with a subquery, or tests its existence.
type SubqueryCondition = types.SubqueryCondition

// TupleCondition compares a row of fields with a row of parameters or fields.
type TupleCondition = types.TupleCondition

// TupleInCondition tests a row of fields against a list of parameter rows.
type TupleInCondition = types.TupleInCondition

// SubqueryTupleCondition compares a row of fields with the rows of a subquery.
type SubqueryTupleCondition = types.SubqueryTupleCondition

// Subquery is a nested SELECT.
type Subquery = types.Subquery

// FieldExpression is one item of a select list.
type FieldExpression = types.FieldExpression

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc = types.AggregateFunc

// Re-export aggregate function constants for public API.
const (
	AggSum           = types.AggSum
	AggAvg           = types.AggAvg
	AggMin           = types.AggMin
	AggMax           = types.AggMax
	AggCountField    = types.AggCountField
	AggCountDistinct = types.AggCountDistinct
)

// Operand is a field or parameter used as a value.
type Operand = types.Operand

// CaseExpression is a searched CASE in a select list.
type CaseExpression = types.CaseExpression

// WhenClause is one WHEN ... THEN branch of a CASE.
type WhenClause = types.WhenClause

// MathFunc names a scalar math function.
type MathFunc = types.MathFunc

// Re-export math function constants for public API.
const (
	MathRound = types.MathRound
	MathFloor = types.MathFloor
	MathCeil  = types.MathCeil
	MathAbs   = types.MathAbs
	MathPower = types.MathPower
	MathSqrt  = types.MathSqrt
)

// WindowFunc represents ranking window functions.
type WindowFunc = types.WindowFunc

// Re-export window function constants for public API.
const (
	WinRowNumber = types.WinRowNumber
	WinRank      = types.WinRank
	WinDenseRank = types.WinDenseRank
)

// WindowExpression is a window function with its OVER clause.
type WindowExpression = types.WindowExpression

// WindowSpec represents a window specification.
type WindowSpec = types.WindowSpec

// PartitionItem is one element of a PARTITION BY list.
type PartitionItem = types.PartitionItem

// Literal is a constant written directly into SQL text.
type Literal = types.Literal

// Summarization is a ROLLUP or CUBE grouping.
type Summarization = types.Summarization

// PaginationValue is a static row count or a parameter.
type PaginationValue = types.PaginationValue

// FetchType selects the row limiting mode.
type FetchType = types.FetchType

// Re-export fetch type constants for public API.
const (
	FetchRowsOnly        = types.FetchRowsOnly
	FetchRowsWithTies    = types.FetchRowsWithTies
	FetchPercentOnly     = types.FetchPercentOnly
	FetchPercentWithTies = types.FetchPercentWithTies
)

// Lock is a row locking request.
type Lock = types.Lock

// SetOperation represents SQL set operations (UNION, INTERSECT, EXCEPT).
type SetOperation = types.SetOperation

// Re-export set operation constants for public API.
const (
	SetUnion        = types.SetUnion
	SetUnionAll     = types.SetUnionAll
	SetIntersect    = types.SetIntersect
	SetIntersectAll = types.SetIntersectAll
	SetExcept       = types.SetExcept
	SetExceptAll    = types.SetExceptAll
)

// SetOperand represents one operand in a set operation.
type SetOperand = types.SetOperand

// CompoundQuery represents a query with set operations.
type CompoundQuery = types.CompoundQuery

// TableDefinition describes a table for CREATE TABLE.
type TableDefinition = types.TableDefinition

// ColumnDefinition describes one column of a TableDefinition.
type ColumnDefinition = types.ColumnDefinition

// Capabilities lists the SQL features a renderer supports.
type Capabilities = render.Capabilities

// UnsupportedFeatureError indicates a construct the target dialect cannot express.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// IsUnsupported reports whether err is, or wraps, an UnsupportedFeatureError.
func IsUnsupported(err error) bool {
	return render.IsUnsupported(err)
}
