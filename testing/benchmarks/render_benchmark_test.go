// Package benchmarks provides performance benchmarks for irisql rendering.
package benchmarks

import (
	"testing"

	"github.com/irisql/irisql"
	"github.com/irisql/irisql/ansi"
	"github.com/irisql/irisql/iris"
	"github.com/zoobzio/dbml"
)

func createBenchmarkInstance(b *testing.B) *irisql.Instance {
	b.Helper()

	project := dbml.NewProject("bench")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "BIGINT"))
	users.AddColumn(dbml.NewColumn("username", "VARCHAR(64)"))
	users.AddColumn(dbml.NewColumn("email", "VARCHAR(255)"))
	users.AddColumn(dbml.NewColumn("active", "BIT"))
	project.AddTable(users)

	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "BIGINT"))
	events.AddColumn(dbml.NewColumn("tenant", "INTEGER"))
	events.AddColumn(dbml.NewColumn("seq", "BIGINT"))
	events.AddColumn(dbml.NewColumn("kind", "VARCHAR(32)"))
	project.AddTable(events)

	instance, err := irisql.NewFromDBML(project)
	if err != nil {
		b.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

func benchmarkRender(b *testing.B, r irisql.Renderer, build func() *irisql.Builder) {
	b.Helper()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := build().Render(r); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSimpleSelect measures a plain SELECT.
func BenchmarkSimpleSelect(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")

	benchmarkRender(b, iris.New(), func() *irisql.Builder {
		return irisql.Select(table)
	})
}

// BenchmarkTopEmulation measures LIMIT/OFFSET rewritten as TOP.
func BenchmarkTopEmulation(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	id := instance.F("id")
	size, start := instance.P("size"), instance.P("start")

	benchmarkRender(b, iris.New(), func() *irisql.Builder {
		return irisql.Select(table).Fields(id).OrderBy(id, irisql.ASC).LimitParam(size).OffsetParam(start)
	})
}

// BenchmarkKeysetTuple compares tuple emulation with native row values.
func BenchmarkKeysetTuple(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")
	fields := []irisql.Field{instance.F("tenant"), instance.F("seq")}
	params := []irisql.Param{instance.P("tenant"), instance.P("seq")}
	build := func() *irisql.Builder {
		return irisql.Select(table).Where(irisql.Tuple(fields, irisql.GT, params...)).Limit(100)
	}

	b.Run("iris", func(b *testing.B) { benchmarkRender(b, iris.New(), build) })
	b.Run("ansi", func(b *testing.B) { benchmarkRender(b, ansi.New(), build) })
}

// BenchmarkDistinctFrom measures the null-safe comparison expansion.
func BenchmarkDistinctFrom(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("users")
	email := instance.F("email")
	p := instance.P("email")

	benchmarkRender(b, iris.New(), func() *irisql.Builder {
		return irisql.Select(table).Where(irisql.DistinctFrom(email, p))
	})
}

// BenchmarkTupleSubquery measures EXISTS rewriting of a tuple IN subquery.
func BenchmarkTupleSubquery(b *testing.B) {
	instance := createBenchmarkInstance(b)
	fields := []irisql.Field{instance.F("tenant"), instance.F("seq")}
	outer := []irisql.Field{irisql.WithTable(fields[0], "e"), irisql.WithTable(fields[1], "e")}

	benchmarkRender(b, iris.New(), func() *irisql.Builder {
		sub := irisql.Select(instance.T("events")).
			Fields(fields...).
			Where(instance.C(instance.F("kind"), irisql.EQ, instance.P("kind")))
		return irisql.Select(instance.T("events", "e")).
			Where(irisql.TupleSub(outer, irisql.IN, irisql.Sub(sub)))
	})
}

// BenchmarkWindowFunction measures a partitioned window expression.
func BenchmarkWindowFunction(b *testing.B) {
	instance := createBenchmarkInstance(b)
	table := instance.T("events")
	tenant, seq := instance.F("tenant"), instance.F("seq")

	benchmarkRender(b, iris.New(), func() *irisql.Builder {
		return irisql.Select(table).
			SelectExpr(irisql.RowNumber().PartitionBy(tenant).OrderBy(seq, irisql.DESC).As("rn"))
	})
}

// BenchmarkCompound measures a UNION ALL of two parameterized members.
func BenchmarkCompound(b *testing.B) {
	instance := createBenchmarkInstance(b)
	id := instance.F("id")
	active := instance.C(instance.F("active"), irisql.EQ, instance.P("active"))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := irisql.UnionAll(
			irisql.Select(instance.T("users")).Fields(id).Where(active),
			irisql.Select(instance.T("events")).Fields(id),
		).OrderBy(id, irisql.ASC).Render(iris.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCreateTable measures identity column DDL.
func BenchmarkCreateTable(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := irisql.CreateTable("events").
			Identity("id", "BIGINT").
			NotNullColumn("tenant", "INTEGER").
			PrimaryKey("id").
			Render(iris.New())
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFieldCreation measures schema-validated field lookup.
func BenchmarkFieldCreation(b *testing.B) {
	instance := createBenchmarkInstance(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = instance.F("username")
	}
}
