package render

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/irisql/irisql/internal/types"
)

// bracketDialect overrides only quoting, to prove Base routes through the
// embedding dialect.
type bracketDialect struct{ Base }

func (bracketDialect) Name() string { return "bracket" }

func (bracketDialect) QuoteIdentifier(name string) string { return "[" + name + "]" }

// emulatingDialect reports no row value support so the fallbacks run.
type emulatingDialect struct{ Base }

func (emulatingDialect) Name() string                                                  { return "emulating" }
func (emulatingDialect) SupportsRowValueConstructorSyntax() bool                       { return false }
func (emulatingDialect) SupportsRowValueConstructorSyntaxInInList() bool               { return false }
func (emulatingDialect) SupportsRowValueConstructorSyntaxInQuantifiedPredicates() bool { return false }
func (emulatingDialect) SupportsDistinctFromPredicate() bool                           { return false }
func (emulatingDialect) SupportsIntersect() bool                                       { return false }

func selectUsers(fields ...string) *types.AST {
	ast := &types.AST{Operation: types.OpSelect, Target: types.Table{Name: "users"}}
	for _, f := range fields {
		ast.Fields = append(ast.Fields, types.Field{Name: f})
	}
	return ast
}

func mustTranslate(t *testing.T, d Dialect, ast *types.AST) *types.QueryResult {
	t.Helper()
	result, err := Translate(d, ast)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	return result
}

// =============================================================================
// Base defaults
// =============================================================================

func TestTranslate_SelectAll(t *testing.T) {
	result := mustTranslate(t, Base{}, selectUsers())

	if expected := `SELECT * FROM "users"`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_QuoteEscaping(t *testing.T) {
	result := mustTranslate(t, Base{}, selectUsers(`we"ird`))

	if expected := `SELECT "we""ird" FROM "users"`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_OffsetFetch(t *testing.T) {
	tests := []struct {
		name     string
		limit    *types.PaginationValue
		offset   *types.PaginationValue
		fetch    types.FetchType
		expected string
	}{
		{"limit", types.StaticValue(10), nil, "", ` FETCH FIRST 10 ROWS ONLY`},
		{"offset", nil, types.StaticValue(20), "", ` OFFSET 20 ROWS`},
		{"both", types.StaticValue(10), types.ParamValue("start"), "", ` OFFSET :start ROWS FETCH FIRST 10 ROWS ONLY`},
		{"percent", types.StaticValue(5), nil, types.FetchPercentOnly, ` FETCH FIRST 5 PERCENT ROWS ONLY`},
		{"ties", types.ParamValue("n"), nil, types.FetchRowsWithTies, ` FETCH FIRST :n ROWS WITH TIES`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := selectUsers("id")
			ast.Limit, ast.Offset, ast.FetchType = tt.limit, tt.offset, tt.fetch

			result := mustTranslate(t, Base{}, ast)

			expected := `SELECT "id" FROM "users"` + tt.expected
			if result.SQL != expected {
				t.Errorf("SQL = %q, want %q", result.SQL, expected)
			}
			if result.Skip != nil {
				t.Errorf("Skip = %+v, want nil", result.Skip)
			}
		})
	}
}

func TestTranslate_Lock(t *testing.T) {
	tests := []struct {
		lock     types.Lock
		expected string
	}{
		{types.Lock{Mode: types.LockForUpdate}, ` FOR UPDATE`},
		{types.Lock{Mode: types.LockForUpdate, Wait: types.LockNoWait}, ` FOR UPDATE NOWAIT`},
		{types.Lock{Mode: types.LockForShare, Wait: types.LockSkipLocked}, ` FOR SHARE SKIP LOCKED`},
	}

	for _, tt := range tests {
		ast := selectUsers("id")
		lock := tt.lock
		ast.Lock = &lock

		result := mustTranslate(t, Base{}, ast)

		if expected := `SELECT "id" FROM "users"` + tt.expected; result.SQL != expected {
			t.Errorf("SQL = %q, want %q", result.SQL, expected)
		}
	}
}

func TestTranslate_NativeDistinctFrom(t *testing.T) {
	ast := selectUsers("id")
	ast.WhereClause = types.Condition{Field: types.Field{Name: "a"}, Operator: types.DistinctFrom, Value: types.Param{Name: "b"}}

	result := mustTranslate(t, Base{}, ast)

	if expected := `SELECT "id" FROM "users" WHERE "a" IS DISTINCT FROM :b`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_DistinctFromUnsupported(t *testing.T) {
	ast := selectUsers("id")
	ast.WhereClause = types.Condition{Field: types.Field{Name: "a"}, Operator: types.NotDistinctFrom, Value: types.Param{Name: "b"}}

	_, err := Translate(emulatingDialect{}, ast)
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", err)
	}
}

func TestTranslate_NativeRowValues(t *testing.T) {
	left := []types.Field{{Name: "a"}, {Name: "b"}}

	t.Run("comparison", func(t *testing.T) {
		ast := selectUsers("id")
		ast.WhereClause = types.TupleCondition{Left: left, Operator: types.LT, Values: []types.Param{{Name: "x"}, {Name: "y"}}}

		result := mustTranslate(t, Base{}, ast)

		if expected := `SELECT "id" FROM "users" WHERE ("a", "b") < (:x, :y)`; result.SQL != expected {
			t.Errorf("SQL = %q, want %q", result.SQL, expected)
		}
	})

	t.Run("in list", func(t *testing.T) {
		ast := selectUsers("id")
		ast.WhereClause = types.TupleInCondition{Left: left, Rows: [][]types.Param{
			{{Name: "a1"}, {Name: "b1"}},
			{{Name: "a2"}, {Name: "b2"}},
		}}

		result := mustTranslate(t, Base{}, ast)

		if expected := `SELECT "id" FROM "users" WHERE ("a", "b") IN ((:a1, :b1), (:a2, :b2))`; result.SQL != expected {
			t.Errorf("SQL = %q, want %q", result.SQL, expected)
		}
	})

	t.Run("subquery", func(t *testing.T) {
		sub := &types.AST{Operation: types.OpSelect, Target: types.Table{Name: "s"}, Fields: []types.Field{{Name: "x"}, {Name: "y"}}}
		ast := selectUsers("id")
		ast.WhereClause = types.SubqueryTupleCondition{Left: left, Operator: types.NotIn, Subquery: types.Subquery{AST: sub}}

		result := mustTranslate(t, Base{}, ast)

		if expected := `SELECT "id" FROM "users" WHERE ("a", "b") NOT IN (SELECT "x", "y" FROM "s")`; result.SQL != expected {
			t.Errorf("SQL = %q, want %q", result.SQL, expected)
		}
	})
}

func TestTranslate_PredicateInSelectList(t *testing.T) {
	ast := selectUsers()
	ast.FieldExpressions = []types.FieldExpression{{
		Predicate: types.Condition{Field: types.Field{Name: "age"}, Operator: types.GT, Value: types.Param{Name: "min"}},
		Alias:     "adult",
	}}

	result := mustTranslate(t, Base{}, ast)

	if expected := `SELECT ("age" > :min) AS "adult" FROM "users"`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_DistinctIsPlain(t *testing.T) {
	ast := selectUsers("name")
	ast.Distinct = true

	result := mustTranslate(t, Base{}, ast)

	if expected := `SELECT DISTINCT "name" FROM "users"`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_WindowPartitions(t *testing.T) {
	tests := []struct {
		name     string
		item     types.PartitionItem
		expected string
	}{
		{"field", types.Field{Name: "dept", Table: "e"}, `e."dept"`},
		{"int literal", types.Literal{Value: 1}, `1`},
		{"string literal", types.Literal{Value: "it's"}, `'it''s'`},
		{"rollup", types.Summarization{Kind: types.Rollup, Fields: []types.Field{{Name: "a"}, {Name: "b"}}}, `ROLLUP("a", "b")`},
		{"cube", types.Summarization{Kind: types.Cube, Fields: []types.Field{{Name: "a"}}}, `CUBE("a")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast := selectUsers()
			ast.FieldExpressions = []types.FieldExpression{{
				Window: &types.WindowExpression{
					Aggregate: types.AggSum,
					Field:     &types.Field{Name: "salary"},
					Window:    types.WindowSpec{PartitionBy: []types.PartitionItem{tt.item}},
				},
				Alias: "s",
			}}

			result := mustTranslate(t, Base{}, ast)

			expected := `SELECT SUM("salary") OVER (PARTITION BY ` + tt.expected + `) AS "s" FROM "users"`
			if result.SQL != expected {
				t.Errorf("SQL = %q, want %q", result.SQL, expected)
			}
		})
	}
}

func TestTranslate_Aggregates(t *testing.T) {
	ast := selectUsers()
	ast.FieldExpressions = []types.FieldExpression{
		{Aggregate: types.AggCountField},
		{Field: types.Field{Name: "email"}, Aggregate: types.AggCountDistinct, Alias: "emails"},
		{Field: types.Field{Name: "age"}, Aggregate: types.AggAvg},
	}

	result := mustTranslate(t, Base{}, ast)

	expected := `SELECT COUNT(*), COUNT(DISTINCT "email") AS "emails", AVG("age") FROM "users"`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_JoinsGroupHavingOrder(t *testing.T) {
	ast := &types.AST{
		Operation: types.OpSelect,
		Target:    types.Table{Name: "users", Alias: "u"},
		Fields:    []types.Field{{Name: "name", Table: "u"}},
		FieldExpressions: []types.FieldExpression{
			{Field: types.Field{Name: "id", Table: "p"}, Aggregate: types.AggCountField, Alias: "posts"},
		},
		Joins: []types.Join{{
			Type:  types.LeftJoin,
			Table: types.Table{Name: "posts", Alias: "p"},
			On: types.FieldComparison{
				LeftField:  types.Field{Name: "id", Table: "u"},
				Operator:   types.EQ,
				RightField: types.Field{Name: "user_id", Table: "p"},
			},
		}},
		GroupBy:  []types.Field{{Name: "name", Table: "u"}},
		Having:   []types.ConditionItem{types.Condition{Field: types.Field{Name: "age", Table: "u"}, Operator: types.GT, Value: types.Param{Name: "min"}}},
		Ordering: []types.OrderBy{{Field: types.Field{Name: "name", Table: "u"}}},
	}

	result := mustTranslate(t, Base{}, ast)

	expected := `SELECT u."name", COUNT(p."id") AS "posts" FROM "users" u LEFT JOIN "posts" p ON u."id" = p."user_id" GROUP BY u."name" HAVING u."age" > :min ORDER BY u."name" ASC`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_ConditionGroups(t *testing.T) {
	ast := selectUsers("id")
	ast.WhereClause = types.ConditionGroup{
		Logic: types.OR,
		Conditions: []types.ConditionItem{
			types.Condition{Field: types.Field{Name: "deleted_at"}, Operator: types.IsNull},
			types.ConditionGroup{Logic: types.AND, Conditions: []types.ConditionItem{
				types.Condition{Field: types.Field{Name: "role"}, Operator: types.IN, Value: types.Param{Name: "roles"}},
				types.Condition{Field: types.Field{Name: "name"}, Operator: types.LIKE, Value: types.Param{Name: "pattern"}},
			}},
		},
	}

	result := mustTranslate(t, Base{}, ast)

	expected := `SELECT "id" FROM "users" WHERE ("deleted_at" IS NULL OR ("role" IN (:roles) AND "name" LIKE :pattern))`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
	if !reflect.DeepEqual(result.RequiredParams, []string{"roles", "pattern"}) {
		t.Errorf("RequiredParams = %v", result.RequiredParams)
	}
}

func TestTranslate_EmptyConditionGroup(t *testing.T) {
	ast := selectUsers("id")
	ast.WhereClause = types.ConditionGroup{Logic: types.AND}

	if _, err := Translate(Base{}, ast); err == nil {
		t.Error("expected error for empty condition group")
	}
}

func TestTranslate_Returning(t *testing.T) {
	ast := &types.AST{
		Operation: types.OpInsert,
		Target:    types.Table{Name: "users"},
		Values:    []map[types.Field]types.Param{{{Name: "name"}: {Name: "name"}}},
		Returning: []types.Field{{Name: "id"}},
	}

	result := mustTranslate(t, Base{}, ast)

	if expected := `INSERT INTO "users" ("name") VALUES (:name) RETURNING "id"`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_MultiRowInsert(t *testing.T) {
	ast := &types.AST{
		Operation: types.OpInsert,
		Target:    types.Table{Name: "users"},
		Values: []map[types.Field]types.Param{
			{{Name: "name"}: {Name: "n1"}},
			{{Name: "name"}: {Name: "n2"}},
		},
	}

	result := mustTranslate(t, Base{}, ast)

	if expected := `INSERT INTO "users" ("name") VALUES (:n1), (:n2)`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_IdentityWithoutSupport(t *testing.T) {
	ast := &types.AST{
		Operation:      types.OpInsert,
		Target:         types.Table{Name: "users"},
		Values:         []map[types.Field]types.Param{{{Name: "name"}: {Name: "name"}}},
		IdentityColumn: &types.Field{Name: "id"},
	}

	_, err := Translate(Base{}, ast)
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", err)
	}
}

func TestTranslate_InvalidAST(t *testing.T) {
	_, err := Translate(Base{}, &types.AST{Operation: types.OpSelect})
	if err == nil || !strings.HasPrefix(err.Error(), "invalid AST:") {
		t.Errorf("expected invalid AST error, got %v", err)
	}
	if _, err := Translate(Base{}, nil); err == nil {
		t.Error("expected error for nil AST")
	}
}

func TestTranslate_SubqueryDepthLimit(t *testing.T) {
	inner := selectUsers("id")
	for i := 0; i < types.MaxSubqueryDepth+1; i++ {
		outer := selectUsers("id")
		outer.WhereClause = types.SubqueryCondition{
			Field:    &types.Field{Name: "id"},
			Operator: types.IN,
			Subquery: types.Subquery{AST: inner},
		}
		inner = outer
	}

	_, err := Translate(Base{}, inner)
	if err == nil || !strings.Contains(err.Error(), "maximum subquery depth") {
		t.Errorf("expected depth error, got %v", err)
	}
}

// =============================================================================
// Dispatch through embedding dialects
// =============================================================================

func TestTranslate_BaseUsesEmbeddingQuote(t *testing.T) {
	ast := selectUsers("id")
	ast.WhereClause = types.TupleCondition{
		Left:     []types.Field{{Name: "a"}, {Name: "b"}},
		Operator: types.EQ,
		Values:   []types.Param{{Name: "x"}, {Name: "y"}},
	}

	result := mustTranslate(t, bracketDialect{}, ast)

	if expected := `SELECT [id] FROM [users] WHERE ([a], [b]) = (:x, :y)`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_LexicographicSubqueryEmulation(t *testing.T) {
	sub := &types.AST{Operation: types.OpSelect, Target: types.Table{Name: "s"}, Fields: []types.Field{{Name: "x"}, {Name: "y"}}}
	ast := &types.AST{
		Operation: types.OpSelect,
		Target:    types.Table{Name: "t"},
		Fields:    []types.Field{{Name: "id"}},
		WhereClause: types.SubqueryTupleCondition{
			Left:     []types.Field{{Name: "a", Table: "t"}, {Name: "b", Table: "t"}},
			Operator: types.GE,
			Subquery: types.Subquery{AST: sub},
		},
	}

	result := mustTranslate(t, emulatingDialect{}, ast)

	expected := `SELECT "id" FROM "t" WHERE EXISTS (SELECT 1 FROM "s" WHERE (s."x" < t."a" OR (s."x" = t."a" AND s."y" <= t."b")))`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}

func TestTranslate_GroupedSubqueryCannotBeEmulated(t *testing.T) {
	sub := &types.AST{
		Operation: types.OpSelect,
		Target:    types.Table{Name: "s"},
		Fields:    []types.Field{{Name: "x"}, {Name: "y"}},
		GroupBy:   []types.Field{{Name: "x"}, {Name: "y"}},
	}
	ast := selectUsers("id")
	ast.WhereClause = types.SubqueryTupleCondition{
		Left:     []types.Field{{Name: "a"}, {Name: "b"}},
		Operator: types.IN,
		Subquery: types.Subquery{AST: sub},
	}

	_, err := Translate(emulatingDialect{}, ast)
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Errorf("expected UnsupportedFeatureError, got %v", err)
	}
}

func TestEmulateTupleComparison_SingleColumn(t *testing.T) {
	tr := NewTranslator(Base{})
	err := tr.EmulateTupleComparison(NewContext(), []types.Field{{Name: "a"}}, []types.Operand{types.Param{Name: "x"}}, types.LT, true)
	if err != nil {
		t.Fatalf("EmulateTupleComparison() error = %v", err)
	}
	if expected := `"a" < :x`; tr.SQL() != expected {
		t.Errorf("SQL = %q, want %q", tr.SQL(), expected)
	}
}

func TestEmulateTupleComparison_ArityMismatch(t *testing.T) {
	tr := NewTranslator(Base{})
	err := tr.EmulateTupleComparison(NewContext(), []types.Field{{Name: "a"}, {Name: "b"}}, []types.Operand{types.Param{Name: "x"}}, types.EQ, false)
	if err == nil {
		t.Error("expected arity error")
	}
}

// =============================================================================
// Pagination helpers
// =============================================================================

func TestRenderTop(t *testing.T) {
	tests := []struct {
		name     string
		ast      *types.AST
		offset   bool
		parens   bool
		expected string
	}{
		{"no limit", &types.AST{}, true, true, ``},
		{"limit", &types.AST{Limit: types.StaticValue(3)}, false, false, `TOP 3 `},
		{"parens", &types.AST{Limit: types.StaticValue(3)}, false, true, `TOP (3) `},
		{"offset ignored", &types.AST{Limit: types.StaticValue(3), Offset: types.StaticValue(4)}, false, true, `TOP (3) `},
		{"offset folded", &types.AST{Limit: types.StaticValue(3), Offset: types.StaticValue(4)}, true, true, `TOP (7) `},
		{"offset param", &types.AST{Limit: types.StaticValue(3), Offset: types.ParamValue("o")}, true, true, `TOP ((3 + :o)) `},
		{"percent", &types.AST{Limit: types.StaticValue(3), FetchType: types.FetchPercentWithTies}, false, true, `TOP (3) PERCENT WITH TIES `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(Base{})
			if err := tr.RenderTop(NewContext(), tt.ast, tt.offset, tt.parens); err != nil {
				t.Fatalf("RenderTop() error = %v", err)
			}
			if tr.SQL() != tt.expected {
				t.Errorf("SQL = %q, want %q", tr.SQL(), tt.expected)
			}
		})
	}
}

func TestRenderFetchPlusOffsetAsSingleParameter(t *testing.T) {
	tr := NewTranslator(Base{})
	ctx := NewContext()

	if err := tr.RenderFetchPlusOffsetAsSingleParameter(ctx, types.StaticValue(2), types.StaticValue(3)); err != nil {
		t.Fatal(err)
	}
	if err := tr.RenderFetchPlusOffsetAsSingleParameter(ctx, types.ParamValue("f"), types.ParamValue("o")); err != nil {
		t.Fatal(err)
	}
	if err := tr.RenderFetchPlusOffsetAsSingleParameter(ctx, types.ParamValue("f"), types.ParamValue("o")); err != nil {
		t.Fatal(err)
	}

	result := tr.Result()
	if expected := `5:f_plus_o:f_plus_o`; result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
	if len(result.Derived) != 1 {
		t.Errorf("Derived = %+v, want a single entry", result.Derived)
	}
	if !reflect.DeepEqual(result.RequiredParams, []string{"f", "o"}) {
		t.Errorf("RequiredParams = %v", result.RequiredParams)
	}
}

func TestRenderFetchPlusOffsetAsSingleParameter_StaticFetch(t *testing.T) {
	tr := NewTranslator(Base{})
	if err := tr.RenderFetchPlusOffsetAsSingleParameter(NewContext(), types.StaticValue(10), types.ParamValue("off")); err != nil {
		t.Fatal(err)
	}
	if expected := `:top_10_plus_off`; tr.SQL() != expected {
		t.Errorf("SQL = %q, want %q", tr.SQL(), expected)
	}
}

func TestRenderFetchPlusOffsetAsSingleParameter_OutOfRange(t *testing.T) {
	tests := []struct {
		name          string
		fetch, offset *types.PaginationValue
	}{
		{"negative fetch", types.StaticValue(-1), types.StaticValue(3)},
		{"negative offset", types.StaticValue(1), types.StaticValue(-3)},
		{"overflow", types.StaticValue(math.MaxInt32), types.StaticValue(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTranslator(Base{}).RenderFetchPlusOffsetAsSingleParameter(NewContext(), tt.fetch, tt.offset)
			if err == nil || !strings.Contains(err.Error(), "row count out of range") {
				t.Errorf("error = %v, want row count out of range", err)
			}
		})
	}
}

func TestAssertRowsOnlyFetchType(t *testing.T) {
	tr := NewTranslator(Base{})
	if err := tr.AssertRowsOnlyFetchType(&types.AST{Limit: types.StaticValue(1)}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := tr.AssertRowsOnlyFetchType(&types.AST{FetchType: types.FetchPercentOnly}); err != nil {
		t.Errorf("fetch type without a limit should pass: %v", err)
	}
	if err := tr.AssertRowsOnlyFetchType(&types.AST{Limit: types.StaticValue(1), FetchType: types.FetchPercentOnly}); err == nil {
		t.Error("expected error for PERCENT fetch")
	}
}

// =============================================================================
// Context
// =============================================================================

func TestContext_Subquery(t *testing.T) {
	root := NewContext()
	if !root.Root() || root.Depth() != 0 {
		t.Fatal("NewContext should be the root")
	}

	sub, err := root.withSubquery()
	if err != nil {
		t.Fatal(err)
	}
	if sub.Root() || sub.Depth() != 1 {
		t.Errorf("subquery context: root=%v depth=%d", sub.Root(), sub.Depth())
	}
	if got := sub.ParamName("id"); got != "sq1_id" {
		t.Errorf("ParamName() = %q, want sq1_id", got)
	}

	member := newMemberContext(2)
	nested, _ := member.withSubquery()
	if got := nested.ParamName("id"); got != "q2_sq1_id" {
		t.Errorf("ParamName() = %q, want q2_sq1_id", got)
	}
}

func TestContext_FlagsStartClean(t *testing.T) {
	root := NewContext()
	root.distinct = true
	root.groupBy = fieldSet([]types.Field{{Name: "a"}})

	sub, _ := root.withSubquery()
	if sub.Distinct() || sub.InGroupBy(types.Field{Name: "a"}) {
		t.Error("subquery inherited select-list state")
	}
}

// =============================================================================
// Compound and DDL
// =============================================================================

func TestTranslateCompound(t *testing.T) {
	a := &types.AST{Operation: types.OpSelect, Target: types.Table{Name: "a"}, Fields: []types.Field{{Name: "id"}}}
	b := &types.AST{Operation: types.OpSelect, Target: types.Table{Name: "b"}, Fields: []types.Field{{Name: "id"}}}

	query := &types.CompoundQuery{
		Base:     a,
		Operands: []types.SetOperand{{Operation: types.SetIntersect, AST: b}, {Operation: types.SetExceptAll, AST: a}},
		Limit:    types.ParamValue("limit"),
		Offset:   types.StaticValue(5),
	}

	result, err := TranslateCompound(Base{}, query)
	if err != nil {
		t.Fatalf("TranslateCompound() error = %v", err)
	}

	expected := `(SELECT "id" FROM "a") INTERSECT (SELECT "id" FROM "b") EXCEPT ALL (SELECT "id" FROM "a") OFFSET 5 ROWS FETCH FIRST :limit ROWS ONLY`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}

	if _, err := TranslateCompound(emulatingDialect{}, query); err == nil {
		t.Error("expected INTERSECT to be rejected")
	}
}

func TestTranslateCreateTable_NoIdentity(t *testing.T) {
	def := &types.TableDefinition{
		Name:    "users",
		Columns: []types.ColumnDefinition{{Name: "id", Type: "BIGINT", Identity: true}},
	}

	_, err := TranslateCreateTable(Base{}, def)
	var ufErr UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Fatalf("expected UnsupportedFeatureError, got %v", err)
	}
}

func TestTranslateCreateTable(t *testing.T) {
	def := &types.TableDefinition{
		Name: "events",
		Columns: []types.ColumnDefinition{
			{Name: "id", Type: "INTEGER", NotNull: true},
			{Name: "payload", Type: "VARCHAR(4000)"},
		},
		PrimaryKey: []string{"id"},
	}

	result, err := TranslateCreateTable(Base{}, def)
	if err != nil {
		t.Fatalf("TranslateCreateTable() error = %v", err)
	}

	expected := `CREATE TABLE "events" ("id" INTEGER NOT NULL, "payload" VARCHAR(4000), PRIMARY KEY ("id"))`
	if result.SQL != expected {
		t.Errorf("SQL = %q, want %q", result.SQL, expected)
	}
}
