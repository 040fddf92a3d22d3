package iris

// IdentityColumnSupport is the IRIS identity-column policy. IRIS declares
// generated keys with the IDENTITY keyword after the column type and returns
// the last key generated on the connection from LAST_IDENTITY().
type IdentityColumnSupport struct{}

// Identity is the shared, immutable IRIS identity policy.
var Identity = IdentityColumnSupport{}

// SupportsIdentityColumns is always true.
func (IdentityColumnSupport) SupportsIdentityColumns() bool { return true }

// HasDataTypeInIdentityColumn is always true: the column keeps its declared type.
func (IdentityColumnSupport) HasDataTypeInIdentityColumn() bool { return true }

// IdentityColumnString returns the identity keyword for any column type.
func (IdentityColumnSupport) IdentityColumnString(string) string { return "identity" }

// IdentitySelectString returns the statement that fetches the last generated
// key. LAST_IDENTITY() is scoped to the connection, not to a table or column,
// so the arguments are ignored and the statement must run on the connection
// that performed the insert.
func (IdentityColumnSupport) IdentitySelectString(_, _, _ string) string {
	return "SELECT LAST_IDENTITY()"
}
