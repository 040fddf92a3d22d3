package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/irisql/irisql/internal/types"
)

const countStarSQL = "COUNT(*)"

// Translator walks one AST and accumulates SQL text and parameters.
// A Translator is single-use and not safe for concurrent use; renderers
// create a fresh one for every call.
type Translator struct {
	dialect        Dialect
	sql            strings.Builder
	params         []string
	usedParams     map[string]bool
	derived        []types.DerivedParam
	skip           *types.PaginationValue
	identitySelect string
}

// NewTranslator creates a translator that dispatches to d.
func NewTranslator(d Dialect) *Translator {
	return &Translator{
		dialect:    d,
		usedParams: make(map[string]bool),
	}
}

// Dialect returns the dialect hooks are dispatched to.
func (t *Translator) Dialect() Dialect { return t.dialect }

// WriteString appends raw SQL.
func (t *Translator) WriteString(s string) { t.sql.WriteString(s) }

// SQL returns the text written so far.
func (t *Translator) SQL() string { return t.sql.String() }

// Result packages the rendered statement.
func (t *Translator) Result() *types.QueryResult {
	return &types.QueryResult{
		SQL:            t.sql.String(),
		RequiredParams: t.params,
		Derived:        t.derived,
		Skip:           t.skip,
		IdentitySelect: t.identitySelect,
	}
}

// Translate renders a single statement.
func Translate(d Dialect, ast *types.AST) (*types.QueryResult, error) {
	if ast == nil {
		return nil, fmt.Errorf("nil AST")
	}
	if err := ast.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}

	t := NewTranslator(d)
	ctx := NewContext()

	var err error
	switch ast.Operation {
	case types.OpSelect:
		err = t.renderSelect(ctx, ast)
	case types.OpInsert:
		err = t.renderInsert(ctx, ast)
	case types.OpUpdate:
		err = t.renderUpdate(ctx, ast)
	case types.OpDelete:
		err = t.renderDelete(ctx, ast)
	case types.OpCount:
		err = t.renderCount(ctx, ast)
	default:
		err = fmt.Errorf("unsupported operation: %s", ast.Operation)
	}
	if err != nil {
		return nil, err
	}

	return t.Result(), nil
}

// requireParam records a caller-supplied parameter without writing it.
func (t *Translator) requireParam(name string) {
	if !t.usedParams[name] {
		t.params = append(t.params, name)
		t.usedParams[name] = true
	}
}

// AddParam records param (namespaced by ctx) and returns its placeholder.
func (t *Translator) AddParam(ctx *Context, param types.Param) string {
	name := ctx.ParamName(param.Name)
	t.requireParam(name)
	return ":" + name
}

// AddDerivedParam records a computed parameter and returns its placeholder.
func (t *Translator) AddDerivedParam(d types.DerivedParam) string {
	for _, p := range d.Params {
		t.requireParam(p)
	}
	exists := false
	for _, existing := range t.derived {
		if existing.Name == d.Name {
			exists = true
			break
		}
	}
	if !exists {
		t.derived = append(t.derived, d)
	}
	return ":" + d.Name
}

// QuoteIdentifier quotes name with the dialect's rules.
func (t *Translator) QuoteIdentifier(name string) string {
	return t.dialect.QuoteIdentifier(name)
}

func (t *Translator) renderTable(table types.Table) string {
	quoted := t.QuoteIdentifier(table.Name)
	if table.Aliased() {
		return quoted + " " + table.Alias
	}
	return quoted
}

// RenderField returns the quoted, optionally qualified, column reference.
func (t *Translator) RenderField(field types.Field) string {
	quoted := t.QuoteIdentifier(field.Name)
	if field.Qualified() {
		return field.Table + "." + quoted
	}
	return quoted
}

// RenderOperand writes a field reference or parameter placeholder.
func (t *Translator) RenderOperand(ctx *Context, op types.Operand) {
	switch o := op.(type) {
	case types.Field:
		t.WriteString(t.RenderField(o))
	case types.Param:
		t.WriteString(t.AddParam(ctx, o))
	}
}

// RenderPaginationValue writes a static row count or its parameter placeholder.
func (t *Translator) RenderPaginationValue(ctx *Context, pv *types.PaginationValue) {
	switch {
	case pv.Param != nil:
		t.WriteString(t.AddParam(ctx, *pv.Param))
	case pv.Static != nil:
		t.WriteString(fmt.Sprintf("%d", *pv.Static))
	default:
		t.WriteString("0")
	}
}

// RenderLiteral writes a constant as SQL text.
func (t *Translator) RenderLiteral(lit types.Literal) error {
	switch v := lit.Value.(type) {
	case string:
		t.WriteString("'" + strings.ReplaceAll(v, "'", "''") + "'")
	case bool:
		if v {
			t.WriteString("1")
		} else {
			t.WriteString("0")
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		t.WriteString(fmt.Sprintf("%d", v))
	case float32, float64:
		t.WriteString(fmt.Sprintf("%v", v))
	case nil:
		t.WriteString("NULL")
	default:
		return fmt.Errorf("unsupported literal type: %T", lit.Value)
	}
	return nil
}

func (t *Translator) renderSelect(ctx *Context, ast *types.AST) error {
	ctx.groupBy = fieldSet(ast.GroupBy)
	defer func() { ctx.groupBy = nil }()

	t.WriteString("SELECT ")
	if ast.Distinct {
		t.WriteString("DISTINCT ")
	}

	ctx.distinct = ast.Distinct
	err := t.renderSelections(ctx, ast)
	ctx.distinct = false
	if err != nil {
		return err
	}

	t.WriteString(" FROM ")
	t.WriteString(t.renderTable(ast.Target))

	if err := t.renderJoinsAndWhere(ctx, ast); err != nil {
		return err
	}

	if len(ast.GroupBy) > 0 {
		t.WriteString(" GROUP BY ")
		for i, field := range ast.GroupBy {
			if i > 0 {
				t.WriteString(", ")
			}
			t.WriteString(t.RenderField(field))
		}
	}

	if len(ast.Having) > 0 {
		t.WriteString(" HAVING ")
		for i, cond := range ast.Having {
			if i > 0 {
				t.WriteString(" AND ")
			}
			if err := t.RenderCondition(ctx, cond); err != nil {
				return err
			}
		}
	}

	t.renderOrderBy(ast.Ordering)

	if err := t.dialect.RenderOffsetFetch(t, ctx, ast); err != nil {
		return err
	}
	if ctx.Root() && ast.Offset != nil && t.dialect.NeedsRowsToSkip() {
		t.setSkip(ctx, ast.Offset)
	}

	if ast.Lock != nil {
		if t.dialect.LockStrategy(ctx, ast.Lock) == LockStrategyClause {
			if err := t.dialect.RenderForUpdate(t, ctx, ast.Lock); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderSelections renders the top clause hook followed by the select list.
func (t *Translator) renderSelections(ctx *Context, ast *types.AST) error {
	if err := t.dialect.RenderTopClause(t, ctx, ast); err != nil {
		return err
	}

	if len(ast.Fields) == 0 && len(ast.FieldExpressions) == 0 {
		t.WriteString("*")
		return nil
	}

	first := true
	sep := func() {
		if !first {
			t.WriteString(", ")
		}
		first = false
	}
	for _, field := range ast.Fields {
		sep()
		if err := t.dialect.RenderSelectExpression(t, ctx, types.FieldExpression{Field: field}); err != nil {
			return err
		}
	}
	for i := range ast.FieldExpressions {
		sep()
		if err := t.dialect.RenderSelectExpression(t, ctx, ast.FieldExpressions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) renderJoinsAndWhere(ctx *Context, ast *types.AST) error {
	for _, join := range ast.Joins {
		t.WriteString(" ")
		t.WriteString(string(join.Type))
		t.WriteString(" ")
		t.WriteString(t.renderTable(join.Table))
		if join.Type != types.CrossJoin {
			if join.On == nil {
				return fmt.Errorf("%s requires an ON condition", join.Type)
			}
			t.WriteString(" ON ")
			if err := t.RenderCondition(ctx, join.On); err != nil {
				return err
			}
		}
	}

	if ast.WhereClause != nil {
		t.WriteString(" WHERE ")
		if err := t.RenderCondition(ctx, ast.WhereClause); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) renderOrderBy(ordering []types.OrderBy) {
	if len(ordering) == 0 {
		return
	}
	t.WriteString(" ORDER BY ")
	for i, order := range ordering {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.RenderField(order.Field))
		dir := order.Direction
		if dir == "" {
			dir = types.ASC
		}
		t.WriteString(" ")
		t.WriteString(string(dir))
	}
}

func (t *Translator) setSkip(ctx *Context, offset *types.PaginationValue) {
	if offset.Param != nil {
		name := ctx.ParamName(offset.Param.Name)
		t.requireParam(name)
		t.skip = &types.PaginationValue{Param: &types.Param{Name: name}}
		return
	}
	n := *offset.Static
	t.skip = &types.PaginationValue{Static: &n}
}

func (t *Translator) renderInsert(ctx *Context, ast *types.AST) error {
	t.WriteString("INSERT INTO ")
	t.WriteString(t.renderTable(ast.Target))

	fields := make([]types.Field, 0, len(ast.Values[0]))
	for field := range ast.Values[0] {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	t.WriteString(" (")
	for i, field := range fields {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.QuoteIdentifier(field.Name))
	}
	t.WriteString(") VALUES ")

	for i, valueSet := range ast.Values {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString("(")
		for j, field := range fields {
			if j > 0 {
				t.WriteString(", ")
			}
			t.WriteString(t.AddParam(ctx, valueSet[field]))
		}
		t.WriteString(")")
	}

	if err := t.renderReturning(ast); err != nil {
		return err
	}

	if ast.IdentityColumn != nil {
		identity := t.dialect.Identity()
		if !identity.SupportsIdentityColumns() {
			return NewUnsupportedFeatureError(t.dialect.Name(), "identity columns",
				"select the generated key explicitly")
		}
		t.identitySelect = identity.IdentitySelectString(ast.Target.Name, ast.IdentityColumn.Name, "")
	}
	return nil
}

func (t *Translator) renderUpdate(ctx *Context, ast *types.AST) error {
	t.WriteString("UPDATE ")
	t.WriteString(t.renderTable(ast.Target))
	t.WriteString(" SET ")

	fields := make([]types.Field, 0, len(ast.Updates))
	for field := range ast.Updates {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	for i, field := range fields {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.QuoteIdentifier(field.Name))
		t.WriteString(" = ")
		t.WriteString(t.AddParam(ctx, ast.Updates[field]))
	}

	if ast.WhereClause != nil {
		t.WriteString(" WHERE ")
		if err := t.RenderCondition(ctx, ast.WhereClause); err != nil {
			return err
		}
	}

	return t.renderReturning(ast)
}

func (t *Translator) renderDelete(ctx *Context, ast *types.AST) error {
	t.WriteString("DELETE FROM ")
	t.WriteString(t.renderTable(ast.Target))

	if ast.WhereClause != nil {
		t.WriteString(" WHERE ")
		if err := t.RenderCondition(ctx, ast.WhereClause); err != nil {
			return err
		}
	}

	return t.renderReturning(ast)
}

func (t *Translator) renderCount(ctx *Context, ast *types.AST) error {
	t.WriteString("SELECT " + countStarSQL + " FROM ")
	t.WriteString(t.renderTable(ast.Target))
	return t.renderJoinsAndWhere(ctx, ast)
}

func (t *Translator) renderReturning(ast *types.AST) error {
	if len(ast.Returning) == 0 {
		return nil
	}
	if !t.dialect.Capabilities().Returning {
		return NewUnsupportedFeatureError(t.dialect.Name(), "RETURNING",
			"use identity retrieval or a separate SELECT")
	}
	t.WriteString(" RETURNING ")
	for i, field := range ast.Returning {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.QuoteIdentifier(field.Name))
	}
	return nil
}

// renderSubquery renders a nested SELECT in a fresh child context.
func (t *Translator) renderSubquery(ctx *Context, sub types.Subquery) error {
	if sub.AST == nil {
		return fmt.Errorf("subquery has no AST")
	}
	if err := sub.AST.Validate(); err != nil {
		return fmt.Errorf("invalid subquery: %w", err)
	}
	if sub.AST.Operation != types.OpSelect {
		return fmt.Errorf("subquery must be SELECT, got %s", sub.AST.Operation)
	}
	subCtx, err := ctx.withSubquery()
	if err != nil {
		return err
	}
	return t.renderSelect(subCtx, sub.AST)
}

func fieldSet(fields []types.Field) map[types.Field]bool {
	if len(fields) == 0 {
		return nil
	}
	set := make(map[types.Field]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
