package types

// Table is a FROM or JOIN target. Alias, when set, is what columns of the
// table are qualified with elsewhere in the statement.
type Table struct {
	Name  string
	Alias string
}

// Aliased reports whether the table carries a correlation name.
func (t Table) Aliased() bool {
	return t.Alias != ""
}
