// Package iris renders queries for InterSystems IRIS.
//
// IRIS has no OFFSET clause and no row locking clause. Row limits are written
// as TOP (limit + offset) and QueryResult.Skip tells the caller how many
// leading rows to discard. Row value constructors, IS [NOT] DISTINCT FROM and
// INTERSECT are emulated or rejected.
package iris

import (
	"github.com/irisql/irisql/internal/render"
	"github.com/irisql/irisql/internal/types"
)

// Renderer implements the IRIS dialect renderer.
type Renderer struct {
	dialect dialect
}

// New creates a new IRIS renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts an AST to a QueryResult with IRIS SQL.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	return render.Translate(r.dialect, ast)
}

// RenderCompound converts a CompoundQuery to a QueryResult with IRIS SQL.
func (r *Renderer) RenderCompound(query *types.CompoundQuery) (*types.QueryResult, error) {
	return render.TranslateCompound(r.dialect, query)
}

// RenderCreateTable renders a CREATE TABLE statement.
func (r *Renderer) RenderCreateTable(def *types.TableDefinition) (*types.QueryResult, error) {
	return render.TranslateCreateTable(r.dialect, def)
}

// IdentitySelect returns the statement that reads the key generated by the
// last INSERT into table.column on the current connection.
func (r *Renderer) IdentitySelect(table, column string) string {
	return Identity.IdentitySelectString(table, column, "")
}

// Capabilities returns the SQL features supported by IRIS.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.dialect.Capabilities()
}

// Dialect exposes the IRIS hooks to callers that drive a render.Translator directly.
func (r *Renderer) Dialect() render.Dialect {
	return r.dialect
}
