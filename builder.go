package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// and creates an AND condition group (internal helper for builder).
func and(conditions ...types.ConditionItem) types.ConditionGroup {
	return types.ConditionGroup{
		Logic:      types.AND,
		Conditions: conditions,
	}
}

// Builder provides a fluent API for constructing queries.
// The first error recorded by a method is returned from Build; later calls
// are no-ops.
type Builder struct {
	ast *types.AST
	err error
}

// GetAST returns the internal AST.
func (b *Builder) GetAST() *types.AST {
	return b.ast
}

// GetError returns the first error recorded by the builder.
func (b *Builder) GetError() error {
	return b.err
}

func newBuilder(op types.Operation, t types.Table) *Builder {
	return &Builder{
		ast: &types.AST{
			Operation: op,
			Target:    t,
		},
	}
}

// Select creates a new SELECT query builder.
func Select(t types.Table) *Builder {
	return newBuilder(types.OpSelect, t)
}

// Insert creates a new INSERT query builder.
func Insert(t types.Table) *Builder {
	return newBuilder(types.OpInsert, t)
}

// Update creates a new UPDATE query builder.
func Update(t types.Table) *Builder {
	b := newBuilder(types.OpUpdate, t)
	b.ast.Updates = make(map[types.Field]types.Param)
	return b
}

// Delete creates a new DELETE query builder.
func Delete(t types.Table) *Builder {
	return newBuilder(types.OpDelete, t)
}

// Count creates a new COUNT query builder.
func Count(t types.Table) *Builder {
	return newBuilder(types.OpCount, t)
}

// requireSelect records an error unless the builder is a SELECT.
func (b *Builder) requireSelect(method string) bool {
	if b.err != nil {
		return false
	}
	if b.ast.Operation != types.OpSelect {
		b.err = fmt.Errorf("%s can only be used with SELECT queries", method)
		return false
	}
	return true
}

// Fields sets the fields to select.
func (b *Builder) Fields(fields ...types.Field) *Builder {
	if !b.requireSelect("Fields()") {
		return b
	}
	b.ast.Fields = fields
	return b
}

// SelectExpr adds a field expression (aggregate, window, predicate) to SELECT.
func (b *Builder) SelectExpr(expr types.FieldExpression) *Builder {
	if !b.requireSelect("SelectExpr") {
		return b
	}
	b.ast.FieldExpressions = append(b.ast.FieldExpressions, expr)
	return b
}

// Distinct sets the DISTINCT flag for SELECT queries.
func (b *Builder) Distinct() *Builder {
	if !b.requireSelect("DISTINCT") {
		return b
	}
	b.ast.Distinct = true
	return b
}

// Where sets or adds conditions.
func (b *Builder) Where(condition types.ConditionItem) *Builder {
	if b.err != nil {
		return b
	}
	if condition == nil {
		b.err = fmt.Errorf("Where() requires a condition")
		return b
	}

	if b.ast.WhereClause == nil {
		b.ast.WhereClause = condition
	} else {
		// If there's already a where clause, combine with AND
		b.ast.WhereClause = and(b.ast.WhereClause, condition)
	}

	return b
}

// WhereField is a convenience method for simple field conditions.
func (b *Builder) WhereField(f types.Field, op types.Operator, p types.Param) *Builder {
	return b.Where(C(f, op, p))
}

// Join adds an INNER JOIN.
func (b *Builder) Join(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.InnerJoin, table, on)
}

// InnerJoin adds an INNER JOIN.
func (b *Builder) InnerJoin(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.InnerJoin, table, on)
}

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.LeftJoin, table, on)
}

// RightJoin adds a RIGHT JOIN.
func (b *Builder) RightJoin(table types.Table, on types.ConditionItem) *Builder {
	return b.addJoin(types.RightJoin, table, on)
}

// CrossJoin adds a CROSS JOIN (no ON clause needed).
func (b *Builder) CrossJoin(table types.Table) *Builder {
	return b.addJoin(types.CrossJoin, table, nil)
}

func (b *Builder) addJoin(joinType types.JoinType, table types.Table, on types.ConditionItem) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpSelect && b.ast.Operation != types.OpCount {
		b.err = fmt.Errorf("JOIN can only be used with SELECT or COUNT queries")
		return b
	}
	if joinType == types.CrossJoin && on != nil {
		b.err = fmt.Errorf("CROSS JOIN cannot have ON clause")
		return b
	}
	if joinType != types.CrossJoin && on == nil {
		b.err = fmt.Errorf("%s requires ON clause", joinType)
		return b
	}

	b.ast.Joins = append(b.ast.Joins, types.Join{
		Type:  joinType,
		Table: table,
		On:    on,
	})
	return b
}

// GroupBy adds GROUP BY fields.
func (b *Builder) GroupBy(fields ...types.Field) *Builder {
	if !b.requireSelect("GROUP BY") {
		return b
	}
	b.ast.GroupBy = append(b.ast.GroupBy, fields...)
	return b
}

// Having adds HAVING conditions. GroupBy must be called first.
func (b *Builder) Having(conditions ...types.ConditionItem) *Builder {
	if !b.requireSelect("HAVING") {
		return b
	}
	if len(b.ast.GroupBy) == 0 {
		b.err = fmt.Errorf("HAVING requires GROUP BY")
		return b
	}
	b.ast.Having = append(b.ast.Having, conditions...)
	return b
}

// OrderBy adds ordering.
func (b *Builder) OrderBy(f types.Field, direction types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	b.ast.Ordering = append(b.ast.Ordering, types.OrderBy{
		Field:     f,
		Direction: direction,
	})
	return b
}

// Limit sets a static row limit.
func (b *Builder) Limit(limit int) *Builder {
	if !b.requireSelect("LIMIT") {
		return b
	}
	b.ast.Limit = types.StaticValue(limit)
	return b
}

// LimitParam sets a row limit supplied at execution time.
func (b *Builder) LimitParam(p types.Param) *Builder {
	if !b.requireSelect("LIMIT") {
		return b
	}
	b.ast.Limit = types.ParamValue(p.Name)
	return b
}

// Offset sets a static number of leading rows to skip.
func (b *Builder) Offset(offset int) *Builder {
	if !b.requireSelect("OFFSET") {
		return b
	}
	b.ast.Offset = types.StaticValue(offset)
	return b
}

// OffsetParam sets the number of leading rows to skip at execution time.
func (b *Builder) OffsetParam(p types.Param) *Builder {
	if !b.requireSelect("OFFSET") {
		return b
	}
	b.ast.Offset = types.ParamValue(p.Name)
	return b
}

// FetchPercent makes the limit a percentage of the result rows.
func (b *Builder) FetchPercent() *Builder {
	if !b.requireSelect("FetchPercent()") {
		return b
	}
	switch b.ast.FetchType.Effective() {
	case types.FetchRowsWithTies, types.FetchPercentWithTies:
		b.ast.FetchType = types.FetchPercentWithTies
	default:
		b.ast.FetchType = types.FetchPercentOnly
	}
	return b
}

// WithTies includes rows that tie with the last row of the limit.
func (b *Builder) WithTies() *Builder {
	if !b.requireSelect("WithTies()") {
		return b
	}
	switch b.ast.FetchType.Effective() {
	case types.FetchPercentOnly, types.FetchPercentWithTies:
		b.ast.FetchType = types.FetchPercentWithTies
	default:
		b.ast.FetchType = types.FetchRowsWithTies
	}
	return b
}

// ForUpdate requests an exclusive row lock.
func (b *Builder) ForUpdate() *Builder {
	return b.lock(types.LockForUpdate)
}

// ForShare requests a shared row lock.
func (b *Builder) ForShare() *Builder {
	return b.lock(types.LockForShare)
}

func (b *Builder) lock(mode types.LockMode) *Builder {
	if !b.requireSelect(string(mode)) {
		return b
	}
	b.ast.Lock = &types.Lock{Mode: mode}
	return b
}

// NoWait fails instead of waiting for a locked row.
func (b *Builder) NoWait() *Builder {
	return b.lockWait(types.LockNoWait)
}

// SkipLocked skips rows that are already locked.
func (b *Builder) SkipLocked() *Builder {
	return b.lockWait(types.LockSkipLocked)
}

func (b *Builder) lockWait(wait types.LockWait) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Lock == nil {
		b.err = fmt.Errorf("%s requires ForUpdate() or ForShare()", wait)
		return b
	}
	b.ast.Lock.Wait = wait
	return b
}

// Set adds a field update for UPDATE queries.
func (b *Builder) Set(f types.Field, p types.Param) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpUpdate {
		b.err = fmt.Errorf("Set() can only be used with UPDATE queries")
		return b
	}
	b.ast.Updates[f] = p
	return b
}

// Value adds a single field-value pair for INSERT queries.
// Multiple calls to Value() build up a single row to insert.
// Call NextRow() to finalize the current row and start a new one.
func (b *Builder) Value(f types.Field, p types.Param) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpInsert {
		b.err = fmt.Errorf("Value() can only be used with INSERT queries")
		return b
	}
	if len(b.ast.Values) == 0 {
		b.ast.Values = append(b.ast.Values, make(map[types.Field]types.Param))
	}
	b.ast.Values[len(b.ast.Values)-1][f] = p
	return b
}

// NextRow finalizes the current row and starts a new one for INSERT queries.
func (b *Builder) NextRow() *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpInsert {
		b.err = fmt.Errorf("NextRow() can only be used with INSERT queries")
		return b
	}
	b.ast.Values = append(b.ast.Values, make(map[types.Field]types.Param))
	return b
}

// Returning adds RETURNING fields for INSERT/UPDATE/DELETE.
func (b *Builder) Returning(fields ...types.Field) *Builder {
	if b.err != nil {
		return b
	}
	switch b.ast.Operation {
	case types.OpInsert, types.OpUpdate, types.OpDelete:
		b.ast.Returning = append(b.ast.Returning, fields...)
	default:
		b.err = fmt.Errorf("RETURNING can only be used with INSERT, UPDATE, or DELETE")
	}
	return b
}

// ReturningIdentity asks the renderer for the statement that reads the key
// generated for column by this INSERT (QueryResult.IdentitySelect).
func (b *Builder) ReturningIdentity(column types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Operation != types.OpInsert {
		b.err = fmt.Errorf("ReturningIdentity() can only be used with INSERT queries")
		return b
	}
	b.ast.IdentityColumn = &column
	return b
}

// Build returns the constructed AST or an error.
func (b *Builder) Build() (*types.AST, error) {
	if b.err != nil {
		return nil, b.err
	}

	// A trailing NextRow() leaves an empty row behind
	if n := len(b.ast.Values); n > 1 && len(b.ast.Values[n-1]) == 0 {
		b.ast.Values = b.ast.Values[:n-1]
	}

	if err := b.ast.Validate(); err != nil {
		return nil, err
	}

	return b.ast, nil
}

// MustBuild returns the AST or panics on error.
func (b *Builder) MustBuild() *types.AST {
	ast, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ast
}

// Render builds the AST and renders it with r.
func (b *Builder) Render(r Renderer) (*QueryResult, error) {
	ast, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.Render(ast)
}

// MustRender builds and renders the AST or panics on error.
func (b *Builder) MustRender(r Renderer) *QueryResult {
	result, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
