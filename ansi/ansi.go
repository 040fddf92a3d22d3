// Package ansi renders queries in standard SQL using the default behavior of
// every rendering junction.
package ansi

import (
	"github.com/irisql/irisql/internal/render"
	"github.com/irisql/irisql/internal/types"
)

// Renderer implements the ANSI SQL renderer.
type Renderer struct {
	dialect render.Base
}

// New creates a new ANSI renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts an AST to a QueryResult with standard SQL.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	return render.Translate(r.dialect, ast)
}

// RenderCompound converts a CompoundQuery to a QueryResult with standard SQL.
func (r *Renderer) RenderCompound(query *types.CompoundQuery) (*types.QueryResult, error) {
	return render.TranslateCompound(r.dialect, query)
}

// RenderCreateTable renders a CREATE TABLE statement.
func (r *Renderer) RenderCreateTable(def *types.TableDefinition) (*types.QueryResult, error) {
	return render.TranslateCreateTable(r.dialect, def)
}

// Capabilities returns the SQL features of the ANSI renderer.
func (r *Renderer) Capabilities() render.Capabilities {
	return r.dialect.Capabilities()
}

// Dialect exposes the default hooks.
func (r *Renderer) Dialect() render.Dialect {
	return r.dialect
}
