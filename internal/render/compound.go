package render

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// TranslateCompound renders SELECTs combined with set operations.
// Each member's parameters are namespaced q0_, q1_, ...; the trailing
// ORDER BY and pagination use un-prefixed names.
func TranslateCompound(d Dialect, query *types.CompoundQuery) (*types.QueryResult, error) {
	if query == nil {
		return nil, fmt.Errorf("nil compound query")
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compound query: %w", err)
	}
	for _, operand := range query.Operands {
		if operand.Operation.IsIntersect() && !d.SupportsIntersect() {
			return nil, NewUnsupportedFeatureError(d.Name(), string(operand.Operation),
				"rewrite as an EXISTS or IN condition")
		}
	}

	t := NewTranslator(d)

	t.WriteString("(")
	if err := t.renderSelect(newMemberContext(0), query.Base); err != nil {
		return nil, err
	}
	t.WriteString(")")

	for i, operand := range query.Operands {
		t.WriteString(" " + string(operand.Operation) + " (")
		if err := t.renderSelect(newMemberContext(i+1), operand.AST); err != nil {
			return nil, err
		}
		t.WriteString(")")
	}

	t.renderOrderBy(query.Ordering)

	if query.Limit != nil || query.Offset != nil {
		if !d.Capabilities().OffsetFetch {
			return nil, NewUnsupportedFeatureError(d.Name(), "LIMIT/OFFSET on a compound query",
				"paginate each member or wrap the compound query in a subquery")
		}
		page := &types.AST{Limit: query.Limit, Offset: query.Offset}
		if err := d.RenderOffsetFetch(t, NewContext(), page); err != nil {
			return nil, err
		}
	}

	return t.Result(), nil
}
