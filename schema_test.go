package irisql_test

import (
	"testing"

	"github.com/irisql/irisql"
	"github.com/irisql/irisql/ansi"
	"github.com/irisql/irisql/iris"
	irisqltest "github.com/irisql/irisql/testing"
)

func renderSchema(t *testing.T, doc string, r irisql.Renderer) *irisql.QueryResult {
	t.Helper()
	schema, err := irisql.ParseQuerySchema([]byte(doc))
	if err != nil {
		t.Fatalf("ParseQuerySchema() error = %v", err)
	}
	result, err := schema.Render(r)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return result
}

func TestSchema_Select(t *testing.T) {
	doc := `
operation: select
table: users
alias: u
fields: [u.id, u.username]
joins:
  - type: left
    table: orders
    alias: o
    on: {field: o.user_id, operator: "=", right_field: u.id}
where:
  logic: and
  conditions:
    - {field: u.active, operator: "=", param: active}
    - {field: o.status, operator: "is distinct from", param: status}
order_by:
  - {field: u.username}
  - {field: u.id, direction: desc}
limit: 20
offset: 40
`
	result := renderSchema(t, doc, iris.New())

	irisqltest.AssertSQL(t,
		`SELECT TOP (60) u."id", u."username" FROM "users" u LEFT JOIN "orders" o ON o."user_id" = u."id" WHERE (u."active" = :active AND ((o."status" <> :status OR o."status" IS NULL OR :status IS NULL) AND NOT (o."status" IS NULL AND :status IS NULL))) ORDER BY u."username" ASC, u."id" DESC`,
		result.SQL)
	irisqltest.AssertParams(t, []string{"active", "status"}, result.RequiredParams)
	irisqltest.AssertSkip(t, result, nil, 40)

	ansiResult := renderSchema(t, doc, ansi.New())
	irisqltest.AssertSQL(t,
		`SELECT u."id", u."username" FROM "users" u LEFT JOIN "orders" o ON o."user_id" = u."id" WHERE (u."active" = :active AND o."status" IS DISTINCT FROM :status) ORDER BY u."username" ASC, u."id" DESC OFFSET 40 ROWS FETCH FIRST 20 ROWS ONLY`,
		ansiResult.SQL)
}

func TestSchema_JSON(t *testing.T) {
	doc := `{"operation": "select", "table": "events", "fields": ["id"], ` +
		`"where": {"fields": ["tenant", "seq"], "operator": ">", "params": ["tenant", "seq"]}, ` +
		`"limit_param": "size", "offset": 5}`
	result := renderSchema(t, doc, iris.New())

	irisqltest.AssertSQL(t,
		`SELECT TOP (:size_plus_5) "id" FROM "events" WHERE ("tenant" >= :tenant AND NOT ("tenant" = :tenant AND "seq" <= :seq))`,
		result.SQL)
	irisqltest.AssertSkip(t, result, map[string]any{"size": 10, "tenant": 1, "seq": 2}, 5)
}

func TestSchema_Aggregates(t *testing.T) {
	doc := `
operation: select
table: orders
fields: [status]
select:
  - {aggregate: count, alias: n}
  - {aggregate: sum, field: total, alias: revenue}
  - {predicate: {field: total, operator: ">", param: big}, alias: has_big}
group_by: [status]
having:
  - {field: status, operator: "<>", param: skipped}
`
	result := renderSchema(t, doc, iris.New())

	irisqltest.AssertSQL(t,
		`SELECT %EXACT "status" AS "status", COUNT(*) AS "n", SUM("total") AS "revenue", CASE WHEN "total" > :big THEN 1 ELSE 0 END AS "has_big" FROM "orders" GROUP BY "status" HAVING "status" <> :skipped`,
		result.SQL)
}

func TestSchema_Mutations(t *testing.T) {
	insert := renderSchema(t, `
operation: insert
table: events
values:
  - {tenant: t1, kind: k1}
  - {tenant: t2, kind: k2}
identity: id
`, iris.New())
	irisqltest.AssertSQL(t, `INSERT INTO "events" ("kind", "tenant") VALUES (:k1, :t1), (:k2, :t2)`, insert.SQL)
	if insert.IdentitySelect != "SELECT LAST_IDENTITY()" {
		t.Errorf("IdentitySelect = %q", insert.IdentitySelect)
	}

	update := renderSchema(t, `
operation: update
table: users
updates: {username: name, email: email}
where: {field: id, operator: eq, param: id}
`, iris.New())
	irisqltest.AssertSQL(t, `UPDATE "users" SET "email" = :email, "username" = :name WHERE "id" = :id`, update.SQL)

	del := renderSchema(t, `
operation: delete
table: users
where: {field: email, operator: is null}
`, iris.New())
	irisqltest.AssertSQL(t, `DELETE FROM "users" WHERE "email" IS NULL`, del.SQL)
}

func TestSchema_Compound(t *testing.T) {
	doc := `
operation: select
table: events
fields: [id]
where: {field: tenant, operator: "=", param: tenant}
compound:
  - operation: union all
    query:
      operation: select
      table: archive
      fields: [id]
      where: {field: tenant, operator: "=", param: tenant}
order_by:
  - {field: id, direction: desc}
`
	result := renderSchema(t, doc, iris.New())

	irisqltest.AssertSQL(t,
		`(SELECT "id" FROM "events" WHERE "tenant" = :q0_tenant) UNION ALL (SELECT "id" FROM "archive" WHERE "tenant" = :q1_tenant) ORDER BY "id" DESC`,
		result.SQL)
}

func TestSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		errMsg string
	}{
		{"empty document", ``, "empty document"},
		{"unknown key", "operation: select\ntable: users\ntop: 5\n", "field top not found"},
		{"missing operation", "table: users\n", "operation is required"},
		{"missing table", "operation: select\n", "table is required"},
		{"bad operation", "operation: merge\ntable: users\n", "unsupported operation"},
		{"bad operator", "operation: select\ntable: users\nwhere: {field: id, operator: '~', param: id}\n", "unknown operator"},
		{"bad lock", "operation: select\ntable: users\nlock: exclusive\n", "unknown lock mode"},
		{"limit twice", "operation: select\ntable: users\nlimit: 5\nlimit_param: size\n", "mutually exclusive"},
		{"bad join", "operation: select\ntable: users\njoins: [{type: outer, table: orders, on: {field: id, operator: '=', right_field: id}}]\n", "unknown join type"},
		{"bad direction", "operation: select\ntable: users\norder_by: [{field: id, direction: up}]\n", "unknown direction"},
		{"bad aggregate", "operation: select\ntable: users\nselect: [{aggregate: median, field: age}]\n", "unknown aggregate"},
		{"missing param", "operation: select\ntable: users\nwhere: {field: id, operator: '='}\n", "param is required"},
		{"bad set operation", "operation: select\ntable: users\ncompound: [{operation: merge, query: {operation: select, table: users}}]\n", "unknown set operation"},
		{"dynamic compound pagination", "operation: select\ntable: users\nlimit_param: size\ncompound: [{operation: union, query: {operation: select, table: users}}]\n", "compound pagination must be static"},
		{"bad compound member", "operation: select\ntable: users\ncompound: [{operation: union, query: {operation: select}}]\n", "compound member 1"},
		{"builder error", "operation: select\ntable: users\nhaving: [{field: id, operator: '=', param: id}]\n", "HAVING requires GROUP BY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := irisql.ParseQuerySchema([]byte(tt.doc))
			if err == nil {
				_, err = schema.Render(iris.New())
			}
			irisqltest.AssertErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSchema_Table(t *testing.T) {
	schema, err := irisql.ParseTableSchema([]byte(`
name: events
columns:
  - {name: id, type: BIGINT, identity: true}
  - {name: tenant, type: INTEGER, not_null: true}
  - {name: payload, type: VARCHAR(4000)}
primary_key: [id]
`))
	if err != nil {
		t.Fatalf("ParseTableSchema() error = %v", err)
	}
	def, err := irisql.BuildTableFromSchema(schema)
	if err != nil {
		t.Fatalf("BuildTableFromSchema() error = %v", err)
	}

	result, err := iris.New().RenderCreateTable(def)
	if err != nil {
		t.Fatalf("RenderCreateTable() error = %v", err)
	}
	irisqltest.AssertSQL(t,
		`CREATE TABLE "events" ("id" BIGINT identity, "tenant" INTEGER NOT NULL, "payload" VARCHAR(4000), PRIMARY KEY ("id"))`,
		result.SQL)

	_, err = irisql.ParseTableSchema([]byte("name: events\ncolumns: []\nindexes: [id]\n"))
	irisqltest.AssertErrorContains(t, err, "parse table schema")

	schema, err = irisql.ParseTableSchema([]byte("name: t\ncolumns:\n  - {name: a, type: \"INT); DROP TABLE users; --\"}\n"))
	if err != nil {
		t.Fatalf("ParseTableSchema() error = %v", err)
	}
	_, err = irisql.BuildTableFromSchema(schema)
	irisqltest.AssertErrorContains(t, err, "has invalid type")
}
