package render

import (
	"fmt"
	"math"

	"github.com/irisql/irisql/internal/types"
)

// RenderTop writes a TOP clause for the query's row limit.
// With addOffset the offset is folded into the count through the dialect's
// RenderFetchPlusOffset hook, so the caller can skip the leading rows itself.
func (t *Translator) RenderTop(ctx *Context, ast *types.AST, addOffset, needsParens bool) error {
	if ast.Limit == nil {
		return nil
	}

	t.WriteString("TOP ")
	if needsParens {
		t.WriteString("(")
	}
	if addOffset && ast.Offset != nil {
		if err := t.dialect.RenderFetchPlusOffset(t, ctx, ast.Limit, ast.Offset); err != nil {
			return err
		}
	} else {
		t.RenderPaginationValue(ctx, ast.Limit)
	}
	if needsParens {
		t.WriteString(")")
	}
	t.WriteString(" ")

	switch ast.FetchType.Effective() {
	case types.FetchRowsWithTies:
		t.WriteString("WITH TIES ")
	case types.FetchPercentOnly:
		t.WriteString("PERCENT ")
	case types.FetchPercentWithTies:
		t.WriteString("PERCENT WITH TIES ")
	}
	return nil
}

// AssertRowsOnlyFetchType fails when a row limit uses anything but ROWS ONLY.
func (t *Translator) AssertRowsOnlyFetchType(ast *types.AST) error {
	if ast.Limit == nil {
		return nil
	}
	if ft := ast.FetchType.Effective(); ft != types.FetchRowsOnly {
		return NewUnsupportedFeatureError(t.dialect.Name(), "FETCH "+string(ft),
			"only ROWS ONLY row limits can be rendered")
	}
	return nil
}

// RenderFetchPlusOffsetAsSingleParameter writes fetch+offset as one value:
// the sum when both are constants, otherwise a single derived parameter
// named <fetch>_plus_<offset> that QueryResult.Bind computes. A constant fetch
// gets a top_ prefix so the placeholder name never starts with a digit.
func (t *Translator) RenderFetchPlusOffsetAsSingleParameter(ctx *Context, fetch, offset *types.PaginationValue) error {
	if fetch == nil || offset == nil {
		return fmt.Errorf("fetch and offset are both required")
	}
	if fetch.IsStatic() && offset.IsStatic() {
		sum := int64(*fetch.Static) + int64(*offset.Static)
		if *fetch.Static < 0 || *offset.Static < 0 || sum > math.MaxInt32 {
			return fmt.Errorf("row count out of range: %d + %d", *fetch.Static, *offset.Static)
		}
		t.WriteString(fmt.Sprintf("%d", sum))
		return nil
	}

	name := fetch.String() + "_plus_" + offset.String()
	if fetch.Param == nil {
		name = "top_" + name
	}
	derived := types.DerivedParam{Name: ctx.ParamName(name)}
	for _, pv := range []*types.PaginationValue{fetch, offset} {
		switch {
		case pv.Param != nil:
			derived.Params = append(derived.Params, ctx.ParamName(pv.Param.Name))
		case pv.Static != nil:
			derived.Constant += *pv.Static
		}
	}
	t.WriteString(t.AddDerivedParam(derived))
	return nil
}
