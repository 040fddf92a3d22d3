package types

// Param is a named placeholder. Rendered as :Name in statement text.
type Param struct {
	Name string
}

// Operand is a value appearing on either side of a comparison.
type Operand interface {
	IsOperand()
}

func (Field) IsOperand() {}
func (Param) IsOperand() {}
