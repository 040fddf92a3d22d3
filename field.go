package irisql

import (
	"fmt"
	"strings"

	"github.com/irisql/irisql/internal/types"
)

// TryF creates a field reference, returning an error if the name is not a
// plain SQL identifier. Use an instance created with NewFromDBML to also
// check the name against a schema.
func TryF(name string) (types.Field, error) {
	if !isValidSQLIdentifier(name) {
		return types.Field{}, fmt.Errorf("invalid field: %q is not a valid identifier", name)
	}
	return types.Field{Name: name}, nil
}

// F creates a field reference.
func F(name string) types.Field {
	f, err := TryF(name)
	if err != nil {
		panic(err)
	}
	return f
}

// TryWithTable qualifies field with a table name or a single-letter alias.
func TryWithTable(field types.Field, tableOrAlias string) (types.Field, error) {
	if !isValidTableAlias(tableOrAlias) && !isValidSQLIdentifier(tableOrAlias) {
		return types.Field{}, fmt.Errorf("WithTable requires single-letter alias (a-z) or valid table name, got: %s", tableOrAlias)
	}
	return field.WithTable(tableOrAlias), nil
}

// WithTable qualifies field with a table name or a single-letter alias.
func WithTable(field types.Field, tableOrAlias string) types.Field {
	f, err := TryWithTable(field, tableOrAlias)
	if err != nil {
		panic(err)
	}
	return f
}

// isValidTableAlias checks if a string is a valid single-letter table alias.
func isValidTableAlias(alias string) bool {
	return len(alias) == 1 && alias[0] >= 'a' && alias[0] <= 'z'
}

// isValidSQLIdentifier checks if a string is a valid SQL identifier.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return !isReservedWord(s)
}

// SQL keywords rejected as table, field and parameter names.
var reservedWords = map[string]bool{
	"select": true, "insert": true, "update": true, "delete": true, "drop": true,
	"create": true, "alter": true, "from": true, "where": true, "and": true,
	"or": true, "not": true, "null": true, "union": true, "join": true,
	"having": true, "group": true, "order": true, "top": true, "distinct": true,
}

func isReservedWord(s string) bool {
	return reservedWords[strings.ToLower(s)]
}
