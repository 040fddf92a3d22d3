package render

import "github.com/irisql/irisql/internal/types"

// LockStrategy is how a dialect expresses a row lock request.
type LockStrategy int

const (
	// LockStrategyNone drops the lock request; nothing is rendered.
	LockStrategyNone LockStrategy = iota
	// LockStrategyClause appends a FOR UPDATE / FOR SHARE clause.
	LockStrategyClause
)

// Dialect is the set of rendering junctions a SQL dialect may override.
//
// Implementations embed Base and override only what differs. Hooks receive the
// Translator so they can write SQL and reuse the generic rendering helpers; when
// a hook needs another hook it must go through t.Dialect() so that overrides in
// the embedding type are honored.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Capabilities() Capabilities

	// Locking.
	LockStrategy(ctx *Context, lock *types.Lock) LockStrategy
	RenderForUpdate(t *Translator, ctx *Context, lock *types.Lock) error

	// Pagination.
	NeedsRowsToSkip() bool
	RenderTopClause(t *Translator, ctx *Context, ast *types.AST) error
	RenderOffsetFetch(t *Translator, ctx *Context, ast *types.AST) error
	RenderFetchPlusOffset(t *Translator, ctx *Context, fetch, offset *types.PaginationValue) error

	// Predicates.
	RenderComparison(t *Translator, ctx *Context, lhs types.Operand, op types.Operator, rhs types.Operand) error
	RenderSelectTupleComparison(t *Translator, ctx *Context, lhs []types.Field, op types.Operator, rhs []types.Operand) error
	SupportsRowValueConstructorSyntax() bool
	SupportsRowValueConstructorSyntaxInInList() bool
	SupportsRowValueConstructorSyntaxInQuantifiedPredicates() bool
	SupportsDistinctFromPredicate() bool

	// Select list and windows.
	RenderSelectExpression(t *Translator, ctx *Context, expr types.FieldExpression) error
	RenderPartitionItem(t *Translator, ctx *Context, item types.PartitionItem) error

	// Set operations.
	SupportsIntersect() bool

	// DDL and generated keys.
	Identity() IdentitySupport
}

// IdentitySupport is a dialect's policy for identity (auto-generated key) columns.
type IdentitySupport interface {
	SupportsIdentityColumns() bool
	HasDataTypeInIdentityColumn() bool
	IdentityColumnString(sqlType string) string
	IdentitySelectString(table, column, sqlType string) string
}

// NoIdentity is the policy of dialects without identity columns.
type NoIdentity struct{}

func (NoIdentity) SupportsIdentityColumns() bool              { return false }
func (NoIdentity) HasDataTypeInIdentityColumn() bool          { return true }
func (NoIdentity) IdentityColumnString(string) string         { return "" }
func (NoIdentity) IdentitySelectString(_, _, _ string) string { return "" }
