package irisql

import "github.com/irisql/irisql/internal/types"

// Renderer defines the interface for SQL dialect-specific rendering.
// Implementations convert an AST to dialect-specific SQL with named parameters.
type Renderer interface {
	// Render converts an AST to a QueryResult with dialect-specific SQL.
	Render(ast *types.AST) (*types.QueryResult, error)

	// RenderCompound converts a CompoundQuery (UNION, INTERSECT, EXCEPT) to SQL.
	RenderCompound(query *types.CompoundQuery) (*types.QueryResult, error)

	// Capabilities reports which SQL features the dialect supports.
	Capabilities() Capabilities
}

// DDLRenderer is a Renderer that can also render CREATE TABLE statements.
type DDLRenderer interface {
	Renderer
	RenderCreateTable(def *types.TableDefinition) (*types.QueryResult, error)
}
