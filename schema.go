package irisql

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/irisql/irisql/internal/types"
	"gopkg.in/yaml.v3"
)

// QuerySchema represents a query in declarative form.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type QuerySchema struct {
	Operation   string              `json:"operation" yaml:"operation"`
	Table       string              `json:"table" yaml:"table"`
	Alias       string              `json:"alias,omitempty" yaml:"alias,omitempty"`
	Distinct    bool                `json:"distinct,omitempty" yaml:"distinct,omitempty"`
	Fields      []string            `json:"fields,omitempty" yaml:"fields,omitempty"`
	Select      []ExpressionSchema  `json:"select,omitempty" yaml:"select,omitempty"`
	Joins       []JoinSchema        `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where       *ConditionSchema    `json:"where,omitempty" yaml:"where,omitempty"`
	GroupBy     []string            `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Having      []ConditionSchema   `json:"having,omitempty" yaml:"having,omitempty"`
	OrderBy     []OrderSchema       `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Limit       *int                `json:"limit,omitempty" yaml:"limit,omitempty"`
	LimitParam  string              `json:"limit_param,omitempty" yaml:"limit_param,omitempty"`
	Offset      *int                `json:"offset,omitempty" yaml:"offset,omitempty"`
	OffsetParam string              `json:"offset_param,omitempty" yaml:"offset_param,omitempty"`
	Lock        string              `json:"lock,omitempty" yaml:"lock,omitempty"`
	Updates     map[string]string   `json:"updates,omitempty" yaml:"updates,omitempty"`
	Values      []map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	Returning   []string            `json:"returning,omitempty" yaml:"returning,omitempty"`
	Identity    string              `json:"identity,omitempty" yaml:"identity,omitempty"`
	Compound    []SetSchema         `json:"compound,omitempty" yaml:"compound,omitempty"`
}

// ExpressionSchema is a select-list expression: an aggregate over a field or
// a predicate.
type ExpressionSchema struct {
	Aggregate string           `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Field     string           `json:"field,omitempty" yaml:"field,omitempty"`
	Predicate *ConditionSchema `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Alias     string           `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// JoinSchema is a join clause.
type JoinSchema struct {
	Type  string           `json:"type" yaml:"type"`
	Table string           `json:"table" yaml:"table"`
	Alias string           `json:"alias,omitempty" yaml:"alias,omitempty"`
	On    *ConditionSchema `json:"on,omitempty" yaml:"on,omitempty"`
}

// ConditionSchema represents a condition in declarative form. Exactly one
// shape is used: a group (Logic + Conditions), a tuple (Fields with Params or
// RightFields), or a single comparison (Field with Param or RightField).
type ConditionSchema struct {
	Logic       string            `json:"logic,omitempty" yaml:"logic,omitempty"`
	Conditions  []ConditionSchema `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Field       string            `json:"field,omitempty" yaml:"field,omitempty"`
	Fields      []string          `json:"fields,omitempty" yaml:"fields,omitempty"`
	Operator    string            `json:"operator,omitempty" yaml:"operator,omitempty"`
	Param       string            `json:"param,omitempty" yaml:"param,omitempty"`
	Params      []string          `json:"params,omitempty" yaml:"params,omitempty"`
	RightField  string            `json:"right_field,omitempty" yaml:"right_field,omitempty"`
	RightFields []string          `json:"right_fields,omitempty" yaml:"right_fields,omitempty"`
}

// OrderSchema is one ORDER BY item.
type OrderSchema struct {
	Field     string `json:"field" yaml:"field"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// SetSchema appends a query to the base query with a set operation.
type SetSchema struct {
	Operation string      `json:"operation" yaml:"operation"`
	Query     QuerySchema `json:"query" yaml:"query"`
}

// TableSchema represents a CREATE TABLE definition in declarative form.
type TableSchema struct {
	Name       string         `json:"name" yaml:"name"`
	Columns    []ColumnSchema `json:"columns" yaml:"columns"`
	PrimaryKey []string       `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// ColumnSchema is one column of a TableSchema.
type ColumnSchema struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	NotNull  bool   `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	Identity bool   `json:"identity,omitempty" yaml:"identity,omitempty"`
}

// ParseQuerySchema decodes a YAML (or JSON) query document. Unknown keys are
// rejected.
func ParseQuerySchema(data []byte) (*QuerySchema, error) {
	var schema QuerySchema
	if err := decodeStrict(data, &schema); err != nil {
		return nil, fmt.Errorf("parse query schema: %w", err)
	}
	return &schema, nil
}

// ParseTableSchema decodes a YAML (or JSON) table document.
func ParseTableSchema(data []byte) (*TableSchema, error) {
	var schema TableSchema
	if err := decodeStrict(data, &schema); err != nil {
		return nil, fmt.Errorf("parse table schema: %w", err)
	}
	return &schema, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty document")
		}
		return err
	}
	return nil
}

// Render builds the query described by schema (compound or single) and
// renders it with r.
func (schema *QuerySchema) Render(r Renderer) (*QueryResult, error) {
	if len(schema.Compound) > 0 {
		query, err := BuildCompoundFromSchema(schema)
		if err != nil {
			return nil, err
		}
		return r.RenderCompound(query)
	}
	ast, err := BuildFromSchema(schema)
	if err != nil {
		return nil, err
	}
	return r.Render(ast)
}

// BuildFromSchema converts a QuerySchema to an AST.
func BuildFromSchema(schema *QuerySchema) (*AST, error) {
	builder, err := builderFromSchema(schema)
	if err != nil {
		return nil, err
	}
	return builder.Build()
}

// BuildCompoundFromSchema converts a QuerySchema with compound members to a
// CompoundQuery. ORDER BY and pagination of the outer schema apply to the
// combined result.
func BuildCompoundFromSchema(schema *QuerySchema) (*CompoundQuery, error) {
	if len(schema.Compound) == 0 {
		return nil, fmt.Errorf("compound requires at least one member")
	}

	outer := *schema
	outer.OrderBy, outer.Limit, outer.Offset, outer.Compound = nil, nil, nil, nil
	if schema.LimitParam != "" || schema.OffsetParam != "" {
		return nil, fmt.Errorf("compound pagination must be static")
	}
	base, err := builderFromSchema(&outer)
	if err != nil {
		return nil, err
	}

	var cb *CompoundBuilder
	for i := range schema.Compound {
		member := &schema.Compound[i]
		next, err := builderFromSchema(&member.Query)
		if err != nil {
			return nil, fmt.Errorf("compound member %d: %w", i+1, err)
		}
		op, err := parseSetOperation(member.Operation)
		if err != nil {
			return nil, err
		}
		if cb == nil {
			cb = newCompound(op, base, next)
		} else {
			cb = cb.add(op, next)
		}
	}

	for _, o := range schema.OrderBy {
		f, dir, err := parseOrder(o)
		if err != nil {
			return nil, err
		}
		cb = cb.OrderBy(f, dir)
	}
	if schema.Limit != nil {
		cb = cb.Limit(*schema.Limit)
	}
	if schema.Offset != nil {
		cb = cb.Offset(*schema.Offset)
	}
	return cb.Build()
}

func builderFromSchema(schema *QuerySchema) (*Builder, error) {
	if schema.Operation == "" {
		return nil, fmt.Errorf("operation is required")
	}
	if schema.Table == "" {
		return nil, fmt.Errorf("table is required")
	}

	var alias []string
	if schema.Alias != "" {
		alias = append(alias, schema.Alias)
	}
	table, err := TryT(schema.Table, alias...)
	if err != nil {
		return nil, err
	}

	var builder *Builder
	switch strings.ToUpper(schema.Operation) {
	case "SELECT":
		builder = Select(table)
	case "INSERT":
		builder = Insert(table)
	case "UPDATE":
		builder = Update(table)
	case "DELETE":
		builder = Delete(table)
	case "COUNT":
		builder = Count(table)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", schema.Operation)
	}

	if len(schema.Fields) > 0 {
		fields, err := parseFields(schema.Fields)
		if err != nil {
			return nil, err
		}
		builder = builder.Fields(fields...)
	}
	for _, e := range schema.Select {
		expr, err := buildExpressionFromSchema(e)
		if err != nil {
			return nil, err
		}
		builder = builder.SelectExpr(expr)
	}
	if schema.Distinct {
		builder = builder.Distinct()
	}

	for _, j := range schema.Joins {
		if err := addJoinFromSchema(builder, j); err != nil {
			return nil, err
		}
	}

	if schema.Where != nil {
		condition, err := buildConditionFromSchema(schema.Where)
		if err != nil {
			return nil, fmt.Errorf("invalid where clause: %w", err)
		}
		builder = builder.Where(condition)
	}

	if len(schema.GroupBy) > 0 {
		fields, err := parseFields(schema.GroupBy)
		if err != nil {
			return nil, err
		}
		builder = builder.GroupBy(fields...)
	}
	for i := range schema.Having {
		condition, err := buildConditionFromSchema(&schema.Having[i])
		if err != nil {
			return nil, fmt.Errorf("invalid having clause: %w", err)
		}
		builder = builder.Having(condition)
	}

	for _, o := range schema.OrderBy {
		f, dir, err := parseOrder(o)
		if err != nil {
			return nil, err
		}
		builder = builder.OrderBy(f, dir)
	}

	if err := applyPagination(builder, schema); err != nil {
		return nil, err
	}

	switch strings.ToLower(schema.Lock) {
	case "":
	case "update":
		builder = builder.ForUpdate()
	case "share":
		builder = builder.ForShare()
	default:
		return nil, fmt.Errorf("unknown lock mode: %s", schema.Lock)
	}

	for field, param := range schema.Updates {
		f, err := TryF(field)
		if err != nil {
			return nil, fmt.Errorf("invalid update field '%s': %w", field, err)
		}
		p, err := TryP(param)
		if err != nil {
			return nil, err
		}
		builder = builder.Set(f, p)
	}

	for i, valueSet := range schema.Values {
		if i > 0 {
			builder = builder.NextRow()
		}
		for field, param := range valueSet {
			f, err := TryF(field)
			if err != nil {
				return nil, fmt.Errorf("invalid insert field '%s': %w", field, err)
			}
			p, err := TryP(param)
			if err != nil {
				return nil, err
			}
			builder = builder.Value(f, p)
		}
	}

	if len(schema.Returning) > 0 {
		fields, err := parseFields(schema.Returning)
		if err != nil {
			return nil, err
		}
		builder = builder.Returning(fields...)
	}
	if schema.Identity != "" {
		f, err := TryF(schema.Identity)
		if err != nil {
			return nil, err
		}
		builder = builder.ReturningIdentity(f)
	}

	return builder, builder.GetError()
}

func applyPagination(builder *Builder, schema *QuerySchema) error {
	if schema.Limit != nil && schema.LimitParam != "" {
		return fmt.Errorf("limit and limit_param are mutually exclusive")
	}
	if schema.Offset != nil && schema.OffsetParam != "" {
		return fmt.Errorf("offset and offset_param are mutually exclusive")
	}
	if schema.Limit != nil {
		builder.Limit(*schema.Limit)
	}
	if schema.LimitParam != "" {
		p, err := TryP(schema.LimitParam)
		if err != nil {
			return err
		}
		builder.LimitParam(p)
	}
	if schema.Offset != nil {
		builder.Offset(*schema.Offset)
	}
	if schema.OffsetParam != "" {
		p, err := TryP(schema.OffsetParam)
		if err != nil {
			return err
		}
		builder.OffsetParam(p)
	}
	return nil
}

func addJoinFromSchema(builder *Builder, j JoinSchema) error {
	var alias []string
	if j.Alias != "" {
		alias = append(alias, j.Alias)
	}
	table, err := TryT(j.Table, alias...)
	if err != nil {
		return err
	}

	var on types.ConditionItem
	if j.On != nil {
		if on, err = buildConditionFromSchema(j.On); err != nil {
			return fmt.Errorf("invalid join condition: %w", err)
		}
	}

	switch strings.ToUpper(j.Type) {
	case "", "INNER":
		builder.InnerJoin(table, on)
	case "LEFT":
		builder.LeftJoin(table, on)
	case "RIGHT":
		builder.RightJoin(table, on)
	case "CROSS":
		builder.CrossJoin(table)
	default:
		return fmt.Errorf("unknown join type: %s", j.Type)
	}
	return nil
}

func buildExpressionFromSchema(e ExpressionSchema) (types.FieldExpression, error) {
	var expr types.FieldExpression
	switch {
	case e.Predicate != nil:
		if e.Aggregate != "" {
			return expr, fmt.Errorf("expression cannot have both an aggregate and a predicate")
		}
		cond, err := buildConditionFromSchema(e.Predicate)
		if err != nil {
			return expr, fmt.Errorf("invalid predicate: %w", err)
		}
		expr = Predicate(cond)
	case e.Aggregate != "":
		agg, err := parseAggregate(e.Aggregate)
		if err != nil {
			return expr, err
		}
		expr.Aggregate = agg
		if e.Field != "" {
			if expr.Field, err = parseField(e.Field); err != nil {
				return expr, err
			}
		} else if agg != types.AggCountField {
			return expr, fmt.Errorf("aggregate %s requires a field", e.Aggregate)
		}
	case e.Field != "":
		f, err := parseField(e.Field)
		if err != nil {
			return expr, err
		}
		expr = Col(f)
	default:
		return expr, fmt.Errorf("expression requires a field, an aggregate or a predicate")
	}

	if e.Alias != "" {
		if !isValidSQLIdentifier(e.Alias) {
			return expr, fmt.Errorf("invalid alias: %q is not a valid identifier", e.Alias)
		}
		expr.Alias = e.Alias
	}
	return expr, nil
}

// buildConditionFromSchema converts a ConditionSchema to a condition item.
func buildConditionFromSchema(schema *ConditionSchema) (types.ConditionItem, error) {
	if schema.Logic != "" || len(schema.Conditions) > 0 {
		items := make([]types.ConditionItem, 0, len(schema.Conditions))
		for i := range schema.Conditions {
			item, err := buildConditionFromSchema(&schema.Conditions[i])
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		switch strings.ToUpper(schema.Logic) {
		case "", "AND":
			return TryAnd(items...)
		case "OR":
			return TryOr(items...)
		default:
			return nil, fmt.Errorf("unknown logic operator: %s", schema.Logic)
		}
	}

	if schema.Operator == "" {
		return nil, fmt.Errorf("operator is required for condition")
	}
	op, err := parseOperator(schema.Operator)
	if err != nil {
		return nil, err
	}

	if len(schema.Fields) > 0 {
		return buildTupleFromSchema(schema, op)
	}

	if schema.Field == "" {
		return nil, fmt.Errorf("field is required for condition")
	}
	field, err := parseField(schema.Field)
	if err != nil {
		return nil, fmt.Errorf("invalid condition field '%s': %w", schema.Field, err)
	}

	switch op {
	case types.IsNull:
		return Null(field), nil
	case types.IsNotNull:
		return NotNull(field), nil
	}

	if schema.RightField != "" {
		right, err := parseField(schema.RightField)
		if err != nil {
			return nil, err
		}
		return CF(field, op, right), nil
	}

	if schema.Param == "" {
		return nil, fmt.Errorf("param is required for condition")
	}
	p, err := TryP(schema.Param)
	if err != nil {
		return nil, err
	}
	return TryC(field, op, p)
}

func buildTupleFromSchema(schema *ConditionSchema, op types.Operator) (types.ConditionItem, error) {
	left, err := parseFields(schema.Fields)
	if err != nil {
		return nil, err
	}
	if len(schema.RightFields) > 0 {
		right, err := parseFields(schema.RightFields)
		if err != nil {
			return nil, err
		}
		if len(right) != len(left) {
			return nil, fmt.Errorf("tuple arity mismatch: %d vs %d", len(left), len(right))
		}
		if !op.IsComparison() {
			return nil, fmt.Errorf("operator %s cannot compare tuples", op)
		}
		return TupleFields(left, op, right), nil
	}

	params := make([]types.Param, len(schema.Params))
	for i, name := range schema.Params {
		if params[i], err = TryP(name); err != nil {
			return nil, err
		}
	}
	return TryTuple(left, op, params...)
}

// parseField accepts "name" or "table.name".
func parseField(s string) (types.Field, error) {
	if table, name, ok := strings.Cut(s, "."); ok {
		f, err := TryF(name)
		if err != nil {
			return types.Field{}, err
		}
		return TryWithTable(f, table)
	}
	return TryF(s)
}

func parseFields(names []string) ([]types.Field, error) {
	fields := make([]types.Field, len(names))
	for i, name := range names {
		f, err := parseField(name)
		if err != nil {
			return nil, fmt.Errorf("invalid field '%s': %w", name, err)
		}
		fields[i] = f
	}
	return fields, nil
}

func parseOrder(o OrderSchema) (types.Field, types.Direction, error) {
	f, err := parseField(o.Field)
	if err != nil {
		return types.Field{}, "", err
	}
	switch strings.ToUpper(o.Direction) {
	case "", "ASC":
		return f, types.ASC, nil
	case "DESC":
		return f, types.DESC, nil
	default:
		return types.Field{}, "", fmt.Errorf("unknown direction: %s", o.Direction)
	}
}

var schemaOperators = map[string]types.Operator{
	"=": types.EQ, "==": types.EQ, "EQ": types.EQ,
	"<>": types.NE, "!=": types.NE, "NE": types.NE,
	">": types.GT, "GT": types.GT,
	">=": types.GE, "GE": types.GE,
	"<": types.LT, "LT": types.LT,
	"<=": types.LE, "LE": types.LE,
	"IN":                   types.IN,
	"NOT IN":               types.NotIn,
	"LIKE":                 types.LIKE,
	"NOT LIKE":             types.NotLike,
	"IS NULL":              types.IsNull,
	"IS NOT NULL":          types.IsNotNull,
	"IS DISTINCT FROM":     types.DistinctFrom,
	"IS NOT DISTINCT FROM": types.NotDistinctFrom,
}

// parseOperator converts an operator string to an Operator type.
func parseOperator(s string) (types.Operator, error) {
	key := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	if op, ok := schemaOperators[key]; ok {
		return op, nil
	}
	return "", fmt.Errorf("unknown operator: %s", s)
}

func parseAggregate(s string) (types.AggregateFunc, error) {
	switch strings.ToUpper(s) {
	case "SUM":
		return types.AggSum, nil
	case "AVG":
		return types.AggAvg, nil
	case "MIN":
		return types.AggMin, nil
	case "MAX":
		return types.AggMax, nil
	case "COUNT":
		return types.AggCountField, nil
	case "COUNT_DISTINCT":
		return types.AggCountDistinct, nil
	default:
		return "", fmt.Errorf("unknown aggregate: %s", s)
	}
}

func parseSetOperation(s string) (types.SetOperation, error) {
	switch strings.Join(strings.Fields(strings.ToUpper(s)), " ") {
	case "UNION":
		return types.SetUnion, nil
	case "UNION ALL":
		return types.SetUnionAll, nil
	case "INTERSECT":
		return types.SetIntersect, nil
	case "INTERSECT ALL":
		return types.SetIntersectAll, nil
	case "EXCEPT":
		return types.SetExcept, nil
	case "EXCEPT ALL":
		return types.SetExceptAll, nil
	default:
		return "", fmt.Errorf("unknown set operation: %s", s)
	}
}

// BuildTableFromSchema converts a TableSchema to a TableDefinition.
func BuildTableFromSchema(schema *TableSchema) (*TableDefinition, error) {
	tb := CreateTable(schema.Name)
	for _, col := range schema.Columns {
		switch {
		case col.Identity:
			tb = tb.Identity(col.Name, col.Type)
		case col.NotNull:
			tb = tb.NotNullColumn(col.Name, col.Type)
		default:
			tb = tb.Column(col.Name, col.Type)
		}
	}
	if len(schema.PrimaryKey) > 0 {
		tb = tb.PrimaryKey(schema.PrimaryKey...)
	}
	return tb.Build()
}
