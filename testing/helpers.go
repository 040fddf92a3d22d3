// Package testing provides test utilities for irisql.
package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/irisql/irisql"
	"github.com/zoobzio/dbml"
)

// TestInstance creates a schema-validated instance for testing.
// Includes users, orders, events and products tables.
func TestInstance(t *testing.T) *irisql.Instance {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "BIGINT"))
	users.AddColumn(dbml.NewColumn("username", "VARCHAR(64)"))
	users.AddColumn(dbml.NewColumn("email", "VARCHAR(255)"))
	users.AddColumn(dbml.NewColumn("age", "INTEGER"))
	users.AddColumn(dbml.NewColumn("active", "BIT"))
	users.AddColumn(dbml.NewColumn("created_at", "TIMESTAMP"))
	project.AddTable(users)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "BIGINT"))
	orders.AddColumn(dbml.NewColumn("user_id", "BIGINT"))
	orders.AddColumn(dbml.NewColumn("total", "NUMERIC(12,2)"))
	orders.AddColumn(dbml.NewColumn("status", "VARCHAR(16)"))
	orders.AddColumn(dbml.NewColumn("created_at", "TIMESTAMP"))
	project.AddTable(orders)

	// Events are paged by (tenant, seq) keyset tuples.
	events := dbml.NewTable("events")
	events.AddColumn(dbml.NewColumn("id", "BIGINT"))
	events.AddColumn(dbml.NewColumn("tenant", "INTEGER"))
	events.AddColumn(dbml.NewColumn("seq", "BIGINT"))
	events.AddColumn(dbml.NewColumn("kind", "VARCHAR(32)"))
	events.AddColumn(dbml.NewColumn("payload", "VARCHAR(4000)"))
	project.AddTable(events)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "BIGINT"))
	products.AddColumn(dbml.NewColumn("name", "VARCHAR(128)"))
	products.AddColumn(dbml.NewColumn("price", "NUMERIC(12,2)"))
	products.AddColumn(dbml.NewColumn("category", "VARCHAR(64)"))
	project.AddTable(products)

	instance, err := irisql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create test instance: %v", err)
	}
	return instance
}

// AssertSQL compares expected and actual SQL.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks that the required params match, ignoring order.
func AssertParams(t *testing.T, expected, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Errorf("Param count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(actual), expected, actual)
		return
	}

	expectedMap := make(map[string]bool, len(expected))
	for _, p := range expected {
		expectedMap[p] = true
	}
	for _, p := range actual {
		if !expectedMap[p] {
			t.Errorf("Unexpected param: %s\nExpected: %v\nActual: %v", p, expected, actual)
		}
	}
}

// AssertSkip checks the number of leading rows the caller must discard.
func AssertSkip(t *testing.T, result *irisql.QueryResult, args map[string]any, expected int) {
	t.Helper()
	skip, err := result.RowsToSkip(args)
	if err != nil {
		t.Fatalf("RowsToSkip() error = %v", err)
	}
	if skip != expected {
		t.Errorf("RowsToSkip() = %d, want %d", skip, expected)
	}
}

// AssertUnsupported checks that err is an UnsupportedFeatureError for feature.
func AssertUnsupported(t *testing.T, err error, feature string) {
	t.Helper()
	var ufErr irisql.UnsupportedFeatureError
	if !errors.As(err, &ufErr) {
		t.Fatalf("Expected UnsupportedFeatureError for %q, got: %v", feature, err)
	}
	if ufErr.Feature != feature {
		t.Errorf("Feature = %q, want %q", ufErr.Feature, feature)
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
