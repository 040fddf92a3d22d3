package render

// RowLockingLevel indicates the level of row-level locking support.
type RowLockingLevel int

const (
	RowLockingNone  RowLockingLevel = iota // No row locking
	RowLockingBasic                        // FOR UPDATE, FOR SHARE
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	RowValueConstructor  bool            // (a, b) < (:x, :y)
	RowValueInList       bool            // (a, b) IN ((:x, :y), ...)
	RowValueQuantified   bool            // (a, b) IN (SELECT ...)
	DistinctFromOperator bool            // IS [NOT] DISTINCT FROM
	Intersect            bool            // INTERSECT set operation
	OffsetFetch          bool            // OFFSET n ROWS FETCH FIRST m ROWS ONLY
	TopClause            bool            // SELECT TOP (n)
	Returning            bool            // RETURNING clause
	IdentityColumns      bool            // generated keys via identity columns
	RowLocking           RowLockingLevel // FOR UPDATE/SHARE support
}
