package types

// Field is a column reference, optionally qualified by a table name or alias.
type Field struct {
	Name  string
	Table string
}

// Qualified reports whether the column carries a table prefix.
func (f Field) Qualified() bool {
	return f.Table != ""
}

// WithTable returns a copy of the field qualified by tableOrAlias.
func (f Field) WithTable(tableOrAlias string) Field {
	f.Table = tableOrAlias
	return f
}
