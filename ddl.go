package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// TableBuilder provides a fluent API for CREATE TABLE definitions.
type TableBuilder struct {
	def *types.TableDefinition
	err error
}

// CreateTable starts a table definition.
func CreateTable(name string) *TableBuilder {
	tb := &TableBuilder{def: &types.TableDefinition{Name: name}}
	if !isValidSQLIdentifier(name) {
		tb.err = fmt.Errorf("invalid table: %q is not a valid identifier", name)
	}
	return tb
}

// Column adds a nullable column of the given SQL type.
func (tb *TableBuilder) Column(name, sqlType string) *TableBuilder {
	return tb.addColumn(types.ColumnDefinition{Name: name, Type: sqlType})
}

// NotNullColumn adds a NOT NULL column.
func (tb *TableBuilder) NotNullColumn(name, sqlType string) *TableBuilder {
	return tb.addColumn(types.ColumnDefinition{Name: name, Type: sqlType, NotNull: true})
}

// Identity adds a column whose value the database generates.
func (tb *TableBuilder) Identity(name, sqlType string) *TableBuilder {
	return tb.addColumn(types.ColumnDefinition{Name: name, Type: sqlType, Identity: true})
}

func (tb *TableBuilder) addColumn(col types.ColumnDefinition) *TableBuilder {
	if tb.err != nil {
		return tb
	}
	if !isValidSQLIdentifier(col.Name) {
		tb.err = fmt.Errorf("invalid column: %q is not a valid identifier", col.Name)
		return tb
	}
	tb.def.Columns = append(tb.def.Columns, col)
	return tb
}

// PrimaryKey sets the primary key columns.
func (tb *TableBuilder) PrimaryKey(columns ...string) *TableBuilder {
	if tb.err == nil {
		tb.def.PrimaryKey = columns
	}
	return tb
}

// Build returns the table definition or the first error.
func (tb *TableBuilder) Build() (*types.TableDefinition, error) {
	if tb.err != nil {
		return nil, tb.err
	}
	if err := tb.def.Validate(); err != nil {
		return nil, err
	}
	return tb.def, nil
}

// Render builds the definition and renders it with r.
func (tb *TableBuilder) Render(r DDLRenderer) (*QueryResult, error) {
	def, err := tb.Build()
	if err != nil {
		return nil, err
	}
	return r.RenderCreateTable(def)
}

// MustRender renders the definition and panics on error.
func (tb *TableBuilder) MustRender(r DDLRenderer) *QueryResult {
	result, err := tb.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
