package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	_ "github.com/caretdev/go-irisnative"
	"github.com/irisql/irisql"
	"github.com/irisql/irisql/executor"
	"github.com/irisql/irisql/iris"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	sharedIRIS *sharedDB
	irisOnce   sync.Once
)

// getIRIS returns the shared IRIS database, starting and seeding it if needed.
func getIRIS(t *testing.T) *sql.DB {
	t.Helper()
	skipShort(t)

	irisOnce.Do(func() {
		ctx := context.Background()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "docker.io/intersystemsdc/iris-community:latest",
				ExposedPorts: []string{"1972/tcp"},
				WaitingFor:   wait.ForListeningPort("1972/tcp").WithStartupTimeout(3 * time.Minute),
			},
			Started: true,
		})
		if err != nil {
			log.Fatalf("Failed to start iris container: %v", err)
		}

		host, err := container.Host(ctx)
		if err != nil {
			log.Fatalf("Failed to get iris host: %v", err)
		}
		port, err := container.MappedPort(ctx, "1972/tcp")
		if err != nil {
			log.Fatalf("Failed to get iris port: %v", err)
		}

		db, err := sql.Open("intersystems", fmt.Sprintf("iris://_SYSTEM:SYS@%s:%s/USER", host, port.Port()))
		if err != nil {
			log.Fatalf("Failed to connect to iris: %v", err)
		}
		sharedIRIS = track(&sharedDB{container: container, db: db})

		waitForPing(db, 120)
		if err := seed(db, iris.New()); err != nil {
			log.Fatalf("Failed to seed iris: %v", err)
		}
	})

	return sharedIRIS.db
}

func TestIRIS_NullSafeAndRowValues(t *testing.T) {
	db := getIRIS(t)

	checkNullSafe(t, db, "", "")
	checkTuples(t, db, false)
}

func TestIRIS_TopSkipWithDerivedParams(t *testing.T) {
	db := getIRIS(t)
	ctx := context.Background()

	result := irisql.Select(irisql.T("quads")).
		Fields(irisql.F("id")).
		Where(irisql.C(irisql.F("a"), irisql.EQ, irisql.P("a"))).
		OrderBy(irisql.F("id"), irisql.ASC).
		LimitParam(irisql.P("size")).
		OffsetParam(irisql.P("start")).
		MustRender(iris.New())

	rows, err := executor.New(db).Query(ctx, result, map[string]any{"a": 2, "size": 3, "start": 2})
	if err != nil {
		t.Fatalf("Query() error = %v\nSQL: %s", err, result.SQL)
	}
	defer rows.Close()

	// Rows with a = 2 are ids 9..16.
	assertIDs(t, "page", []int{11, 12, 13}, scanIDs(t, rows))
}

func TestIRIS_DistinctExact(t *testing.T) {
	db := getIRIS(t)

	result := irisql.Select(irisql.T("quads")).
		Fields(irisql.F("a")).
		Distinct().
		OrderBy(irisql.F("a"), irisql.ASC).
		MustRender(iris.New())

	assertIDs(t, "distinct", []int{1, 2}, queryIDs(t, db, result.SQL))
}

func TestIRIS_InsertIdentity(t *testing.T) {
	db := getIRIS(t)
	ctx := context.Background()

	if _, err := db.Exec(`DROP TABLE IF EXISTS "accounts"`); err != nil {
		t.Fatalf("drop: %v", err)
	}
	ddl := irisql.CreateTable("accounts").
		Identity("id", "BIGINT").
		NotNullColumn("name", "VARCHAR(64)").
		PrimaryKey("id").
		MustRender(iris.New())
	if _, err := db.Exec(ddl.SQL); err != nil {
		t.Fatalf("create: %v\nSQL: %s", err, ddl.SQL)
	}

	insert := irisql.Insert(irisql.T("accounts")).
		Value(irisql.F("name"), irisql.P("name")).
		ReturningIdentity(irisql.F("id")).
		MustRender(iris.New())

	ex := executor.New(db)
	first, err := ex.InsertIdentity(ctx, insert, map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("InsertIdentity() error = %v", err)
	}
	second, err := ex.InsertIdentity(ctx, insert, map[string]any{"name": "grace"})
	if err != nil {
		t.Fatalf("InsertIdentity() error = %v", err)
	}
	if second <= first {
		t.Errorf("identities = %d, %d; want increasing", first, second)
	}

	var name string
	if err := db.QueryRow(`SELECT "name" FROM "accounts" WHERE "id" = ?`, second).Scan(&name); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if name != "grace" {
		t.Errorf("name = %q, want grace", name)
	}
}
