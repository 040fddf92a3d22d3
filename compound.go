package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// CompoundBuilder combines SELECT builders with set operations.
type CompoundBuilder struct {
	query *types.CompoundQuery
	err   error
}

func newCompound(op types.SetOperation, first, second *Builder) *CompoundBuilder {
	cb := &CompoundBuilder{query: &types.CompoundQuery{}}
	base, err := first.Build()
	if err != nil {
		cb.err = fmt.Errorf("compound base query: %w", err)
		return cb
	}
	cb.query.Base = base
	return cb.add(op, second)
}

func (cb *CompoundBuilder) add(op types.SetOperation, next *Builder) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	ast, err := next.Build()
	if err != nil {
		cb.err = fmt.Errorf("%s operand: %w", op, err)
		return cb
	}
	cb.query.Operands = append(cb.query.Operands, types.SetOperand{Operation: op, AST: ast})
	return cb
}

// Union combines two queries with UNION.
func Union(first, second *Builder) *CompoundBuilder {
	return newCompound(types.SetUnion, first, second)
}

// UnionAll combines two queries with UNION ALL.
func UnionAll(first, second *Builder) *CompoundBuilder {
	return newCompound(types.SetUnionAll, first, second)
}

// Intersect combines two queries with INTERSECT.
func Intersect(first, second *Builder) *CompoundBuilder {
	return newCompound(types.SetIntersect, first, second)
}

// Except combines two queries with EXCEPT.
func Except(first, second *Builder) *CompoundBuilder {
	return newCompound(types.SetExcept, first, second)
}

// Union starts a compound query with this builder as its base.
func (b *Builder) Union(other *Builder) *CompoundBuilder {
	return Union(b, other)
}

// UnionAll starts a compound query with this builder as its base.
func (b *Builder) UnionAll(other *Builder) *CompoundBuilder {
	return UnionAll(b, other)
}

// Intersect starts a compound query with this builder as its base.
func (b *Builder) Intersect(other *Builder) *CompoundBuilder {
	return Intersect(b, other)
}

// Except starts a compound query with this builder as its base.
func (b *Builder) Except(other *Builder) *CompoundBuilder {
	return Except(b, other)
}

// Union appends another query with UNION.
func (cb *CompoundBuilder) Union(next *Builder) *CompoundBuilder {
	return cb.add(types.SetUnion, next)
}

// UnionAll appends another query with UNION ALL.
func (cb *CompoundBuilder) UnionAll(next *Builder) *CompoundBuilder {
	return cb.add(types.SetUnionAll, next)
}

// Intersect appends another query with INTERSECT.
func (cb *CompoundBuilder) Intersect(next *Builder) *CompoundBuilder {
	return cb.add(types.SetIntersect, next)
}

// IntersectAll appends another query with INTERSECT ALL.
func (cb *CompoundBuilder) IntersectAll(next *Builder) *CompoundBuilder {
	return cb.add(types.SetIntersectAll, next)
}

// Except appends another query with EXCEPT.
func (cb *CompoundBuilder) Except(next *Builder) *CompoundBuilder {
	return cb.add(types.SetExcept, next)
}

// ExceptAll appends another query with EXCEPT ALL.
func (cb *CompoundBuilder) ExceptAll(next *Builder) *CompoundBuilder {
	return cb.add(types.SetExceptAll, next)
}

// OrderBy orders the combined result.
func (cb *CompoundBuilder) OrderBy(f types.Field, direction types.Direction) *CompoundBuilder {
	if cb.err != nil {
		return cb
	}
	cb.query.Ordering = append(cb.query.Ordering, types.OrderBy{Field: f, Direction: direction})
	return cb
}

// Limit limits the combined result.
func (cb *CompoundBuilder) Limit(limit int) *CompoundBuilder {
	if cb.err == nil {
		cb.query.Limit = types.StaticValue(limit)
	}
	return cb
}

// Offset skips leading rows of the combined result.
func (cb *CompoundBuilder) Offset(offset int) *CompoundBuilder {
	if cb.err == nil {
		cb.query.Offset = types.StaticValue(offset)
	}
	return cb
}

// Build returns the compound query or the first error.
func (cb *CompoundBuilder) Build() (*types.CompoundQuery, error) {
	if cb.err != nil {
		return nil, cb.err
	}
	if err := cb.query.Validate(); err != nil {
		return nil, err
	}
	return cb.query, nil
}

// MustBuild returns the compound query or panics on error.
func (cb *CompoundBuilder) MustBuild() *types.CompoundQuery {
	query, err := cb.Build()
	if err != nil {
		panic(err)
	}
	return query
}

// Render builds the compound query and renders it with r.
func (cb *CompoundBuilder) Render(r Renderer) (*QueryResult, error) {
	query, err := cb.Build()
	if err != nil {
		return nil, err
	}
	return r.RenderCompound(query)
}

// MustRender builds and renders the compound query or panics on error.
func (cb *CompoundBuilder) MustRender(r Renderer) *QueryResult {
	result, err := cb.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
