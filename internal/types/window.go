package types

// WindowFunc represents ranking window functions.
type WindowFunc string

const (
	WinRowNumber WindowFunc = "ROW_NUMBER"
	WinRank      WindowFunc = "RANK"
	WinDenseRank WindowFunc = "DENSE_RANK"
)

// WindowExpression is a window function call: either a ranking function or an
// aggregate over Field, followed by an OVER clause.
type WindowExpression struct {
	Function  WindowFunc
	Aggregate AggregateFunc
	Field     *Field
	Window    WindowSpec
}

// WindowSpec is the OVER clause of a window expression.
type WindowSpec struct {
	PartitionBy []PartitionItem
	OrderBy     []OrderBy
}

// PartitionItem is one element of a PARTITION BY list.
type PartitionItem interface {
	IsPartitionItem()
}

// Literal is a constant value appearing directly in SQL text.
// Supported value types are string, bool, integers and floats.
type Literal struct {
	Value any
}

// SummarizationKind selects a grouping summarization.
type SummarizationKind string

const (
	Rollup SummarizationKind = "ROLLUP"
	Cube   SummarizationKind = "CUBE"
)

// Summarization is a ROLLUP or CUBE over a set of fields.
type Summarization struct {
	Kind   SummarizationKind
	Fields []Field
}

func (Field) IsPartitionItem()         {}
func (Literal) IsPartitionItem()       {}
func (Summarization) IsPartitionItem() {}
