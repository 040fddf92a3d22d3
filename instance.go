package irisql

import (
	"fmt"
	"sort"

	"github.com/irisql/irisql/internal/types"
	"github.com/zoobzio/dbml"
)

// Instance builds table, field and parameter references validated against a
// DBML schema.
type Instance struct {
	project *dbml.Project
	// Internal indexes for fast validation
	tables map[string]*dbml.Table
	fields map[string]map[string]*dbml.Column // table -> field -> column
}

// NewFromDBML creates a new Instance from a DBML project.
func NewFromDBML(project *dbml.Project) (*Instance, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	a := &Instance{
		project: project,
		tables:  make(map[string]*dbml.Table),
		fields:  make(map[string]map[string]*dbml.Column),
	}

	for _, table := range project.Tables {
		if !isValidSQLIdentifier(table.Name) {
			return nil, fmt.Errorf("schema table %q is not a valid identifier", table.Name)
		}
		a.tables[table.Name] = table
		a.fields[table.Name] = make(map[string]*dbml.Column)
		for _, col := range table.Columns {
			if !isValidSQLIdentifier(col.Name) {
				return nil, fmt.Errorf("schema column %s.%q is not a valid identifier", table.Name, col.Name)
			}
			a.fields[table.Name][col.Name] = col
		}
	}

	return a, nil
}

// Tables returns the schema's table names in sorted order.
func (a *Instance) Tables() []string {
	names := make([]string, 0, len(a.tables))
	for name := range a.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateTable checks if a table exists in the schema.
func (a *Instance) validateTable(name string) error {
	if _, ok := a.tables[name]; !ok {
		return fmt.Errorf("table '%s' not found in schema", name)
	}
	return nil
}

// validateField checks if a field exists in any table in the schema.
func (a *Instance) validateField(field string) error {
	for _, tableFields := range a.fields {
		if _, ok := tableFields[field]; ok {
			return nil
		}
	}
	return fmt.Errorf("field '%s' not found in schema", field)
}

// validateTableOrAlias validates both table names and aliases.
func (a *Instance) validateTableOrAlias(tableOrAlias string) error {
	if isValidTableAlias(tableOrAlias) {
		return nil
	}
	if err := a.validateTable(tableOrAlias); err == nil {
		return nil
	}
	return fmt.Errorf("WithTable requires single-letter alias (a-z) or valid table name, got: %s", tableOrAlias)
}

// TryF creates a validated field reference, returning an error if invalid.
func (a *Instance) TryF(name string) (types.Field, error) {
	if err := a.validateField(name); err != nil {
		return types.Field{}, fmt.Errorf("invalid field: %w", err)
	}
	return types.Field{Name: name}, nil
}

// F creates a validated field reference.
func (a *Instance) F(name string) types.Field {
	f, err := a.TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryTF creates a field qualified by its table, checking that the column
// belongs to that table.
func (a *Instance) TryTF(table, name string) (types.Field, error) {
	if err := a.validateTable(table); err != nil {
		return types.Field{}, fmt.Errorf("invalid field: %w", err)
	}
	if _, ok := a.fields[table][name]; !ok {
		return types.Field{}, fmt.Errorf("invalid field: '%s' is not a column of '%s'", name, table)
	}
	return types.Field{Name: name, Table: table}, nil
}

// TF creates a field qualified by its table.
func (a *Instance) TF(table, name string) types.Field {
	f, err := a.TryTF(table, name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryT creates a validated table reference, returning an error if invalid.
func (a *Instance) TryT(name string, alias ...string) (types.Table, error) {
	if err := a.validateTable(name); err != nil {
		return types.Table{}, fmt.Errorf("invalid table: %w", err)
	}

	var tableAlias string
	if len(alias) > 0 {
		if len(alias) > 1 {
			return types.Table{}, fmt.Errorf("only one alias allowed")
		}
		tableAlias = alias[0]
		if !isValidTableAlias(tableAlias) {
			return types.Table{}, fmt.Errorf("alias must be single lowercase letter (a-z), got: %s", tableAlias)
		}
	}

	return types.Table{Name: name, Alias: tableAlias}, nil
}

// T creates a validated table reference.
func (a *Instance) T(name string, alias ...string) types.Table {
	t, err := a.TryT(name, alias...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryP creates a validated parameter reference, returning an error if invalid.
func (*Instance) TryP(name string) (types.Param, error) {
	return TryP(name)
}

// P creates a validated parameter reference.
func (a *Instance) P(name string) types.Param {
	p, err := a.TryP(name)
	if err != nil {
		panic(err)
	}
	return p
}

// TryC creates a validated condition, returning an error if invalid.
func (a *Instance) TryC(field types.Field, op types.Operator, param types.Param) (types.Condition, error) {
	if err := a.validateField(field.Name); err != nil {
		return types.Condition{}, err
	}
	return TryC(field, op, param)
}

// C creates a validated condition.
func (a *Instance) C(field types.Field, op types.Operator, param types.Param) types.Condition {
	c, err := a.TryC(field, op, param)
	if err != nil {
		panic(err)
	}
	return c
}

// TryNull creates a NULL condition, returning an error if invalid.
func (a *Instance) TryNull(field types.Field) (types.Condition, error) {
	if err := a.validateField(field.Name); err != nil {
		return types.Condition{}, err
	}
	return Null(field), nil
}

// Null creates a NULL condition.
func (a *Instance) Null(field types.Field) types.Condition {
	c, err := a.TryNull(field)
	if err != nil {
		panic(err)
	}
	return c
}

// TryNotNull creates a NOT NULL condition, returning an error if invalid.
func (a *Instance) TryNotNull(field types.Field) (types.Condition, error) {
	if err := a.validateField(field.Name); err != nil {
		return types.Condition{}, err
	}
	return NotNull(field), nil
}

// NotNull creates a NOT NULL condition.
func (a *Instance) NotNull(field types.Field) types.Condition {
	c, err := a.TryNotNull(field)
	if err != nil {
		panic(err)
	}
	return c
}

// TryWithTable creates a new Field with a table/alias prefix, returning an error if invalid.
func (a *Instance) TryWithTable(field types.Field, tableOrAlias string) (types.Field, error) {
	if err := a.validateTableOrAlias(tableOrAlias); err != nil {
		return types.Field{}, err
	}
	return field.WithTable(tableOrAlias), nil
}

// WithTable creates a new Field with a table/alias prefix, validated against the schema.
func (a *Instance) WithTable(field types.Field, tableOrAlias string) types.Field {
	f, err := a.TryWithTable(field, tableOrAlias)
	if err != nil {
		panic(err)
	}
	return f
}
