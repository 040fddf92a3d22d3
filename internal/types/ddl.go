package types

import "fmt"

// ColumnDefinition describes one column of a CREATE TABLE statement.
// Type is the dialect's SQL type name, written verbatim once it passes
// isValidColumnType.
type ColumnDefinition struct {
	Name     string
	Type     string
	NotNull  bool
	Identity bool
}

// TableDefinition describes a CREATE TABLE statement.
type TableDefinition struct {
	Name       string
	Columns    []ColumnDefinition
	PrimaryKey []string
}

// Validate checks names, duplicate columns and primary key references.
func (d *TableDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("table name is required")
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", d.Name)
	}
	seen := make(map[string]bool, len(d.Columns))
	identities := 0
	for _, col := range d.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %s has a column without a name", d.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column %s in table %s", col.Name, d.Name)
		}
		seen[col.Name] = true
		if col.Type == "" {
			return fmt.Errorf("column %s.%s has no type", d.Name, col.Name)
		}
		if !isValidColumnType(col.Type) {
			return fmt.Errorf("column %s.%s has invalid type %q", d.Name, col.Name, col.Type)
		}
		if col.Identity {
			identities++
		}
	}
	if identities > 1 {
		return fmt.Errorf("table %s has %d identity columns, at most one is allowed", d.Name, identities)
	}
	for _, pk := range d.PrimaryKey {
		if !seen[pk] {
			return fmt.Errorf("primary key column %s not defined in table %s", pk, d.Name)
		}
	}
	return nil
}

// isValidColumnType accepts type names such as BIGINT, VARCHAR(255),
// NUMERIC(10, 2), DOUBLE PRECISION or the class form %Library.String: a
// letter or % first, then letters, digits, underscores, dots, spaces, and
// commas inside one level of balanced parentheses.
func isValidColumnType(s string) bool {
	first := s[0]
	if !(first >= 'a' && first <= 'z' || first >= 'A' && first <= 'Z' || first == '%') {
		return false
	}
	open := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == ' ':
		case c == '(':
			if open {
				return false
			}
			open = true
		case c == ')':
			if !open {
				return false
			}
			open = false
		case c == '.':
			if open {
				return false
			}
		case c == ',':
			if !open {
				return false
			}
		default:
			return false
		}
	}
	return !open
}
