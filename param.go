package irisql

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// TryP creates a parameter reference, returning an error if invalid.
// Parameter names become :name placeholders and keys of the argument map.
func TryP(name string) (types.Param, error) {
	if !isValidParamName(name) {
		return types.Param{}, fmt.Errorf("invalid parameter name '%s': must be alphanumeric with underscores, starting with letter", name)
	}
	return types.Param{Name: name}, nil
}

// P creates a parameter reference.
func P(name string) types.Param {
	p, err := TryP(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Only allows alphanumeric characters and underscores, must start with letter.
func isValidParamName(name string) bool {
	if name == "" {
		return false
	}

	// Must start with letter (not underscore for params)
	first := name[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z')) {
		return false
	}

	return isValidSQLIdentifier(name)
}
