package render

import (
	"fmt"

	"github.com/irisql/irisql/internal/types"
)

// TranslateCreateTable renders a CREATE TABLE statement. Identity columns are
// written with the dialect's identity policy.
func TranslateCreateTable(d Dialect, def *types.TableDefinition) (*types.QueryResult, error) {
	if def == nil {
		return nil, fmt.Errorf("nil table definition")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table definition: %w", err)
	}

	t := NewTranslator(d)
	identity := d.Identity()

	t.WriteString("CREATE TABLE ")
	t.WriteString(t.QuoteIdentifier(def.Name))
	t.WriteString(" (")

	for i, col := range def.Columns {
		if i > 0 {
			t.WriteString(", ")
		}
		t.WriteString(t.QuoteIdentifier(col.Name))

		if col.Identity {
			if !identity.SupportsIdentityColumns() {
				return nil, NewUnsupportedFeatureError(d.Name(), "identity columns",
					"use a sequence or application-assigned keys")
			}
			if identity.HasDataTypeInIdentityColumn() {
				t.WriteString(" " + col.Type)
			}
			t.WriteString(" " + identity.IdentityColumnString(col.Type))
			continue
		}

		t.WriteString(" " + col.Type)
		if col.NotNull {
			t.WriteString(" NOT NULL")
		}
	}

	if len(def.PrimaryKey) > 0 {
		t.WriteString(", PRIMARY KEY (")
		for i, name := range def.PrimaryKey {
			if i > 0 {
				t.WriteString(", ")
			}
			t.WriteString(t.QuoteIdentifier(name))
		}
		t.WriteString(")")
	}

	t.WriteString(")")
	return t.Result(), nil
}
