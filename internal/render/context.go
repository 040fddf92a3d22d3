package render

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// Context is the per-query-specification state of a render pass.
// Every SELECT (root, compound member or subquery) gets its own Context,
// so flags set while rendering one query never leak into another.
type Context struct {
	groupBy     map[types.Field]bool
	queryPrefix string
	paramPrefix string
	depth       int
	root        bool
	distinct    bool
}

// NewContext creates the context for a top-level statement.
func NewContext() *Context {
	return &Context{root: true}
}

// newMemberContext creates the context for one SELECT of a compound query.
func newMemberContext(index int) *Context {
	return &Context{queryPrefix: fmt.Sprintf("q%d_", index)}
}

// withSubquery creates a child context for rendering a subquery.
func (ctx *Context) withSubquery() (*Context, error) {
	if ctx.depth >= types.MaxSubqueryDepth {
		return nil, fmt.Errorf("maximum subquery depth (%d) exceeded", types.MaxSubqueryDepth)
	}

	return &Context{
		depth:       ctx.depth + 1,
		queryPrefix: ctx.queryPrefix,
		paramPrefix: fmt.Sprintf("sq%d_", ctx.depth+1),
	}, nil
}

// Root reports whether the context belongs to the outermost query.
func (ctx *Context) Root() bool { return ctx.root }

// Depth is the subquery nesting level.
func (ctx *Context) Depth() int { return ctx.depth }

// Distinct is true only while the select list of a DISTINCT query is rendered.
func (ctx *Context) Distinct() bool { return ctx.distinct }

// InGroupBy reports whether f is one of the current query's GROUP BY columns.
func (ctx *Context) InGroupBy(f types.Field) bool {
	return ctx.groupBy[f]
}

// ParamName returns the namespaced name of a parameter in this context.
func (ctx *Context) ParamName(name string) string {
	return ctx.queryPrefix + ctx.paramPrefix + name
}
