package types

import "fmt"

// PaginationValue is a row count given either as a constant or as a named parameter.
type PaginationValue struct {
	Static *int
	Param  *Param
}

// StaticValue returns a constant pagination value.
func StaticValue(n int) *PaginationValue {
	return &PaginationValue{Static: &n}
}

// ParamValue returns a parameterized pagination value.
func ParamValue(name string) *PaginationValue {
	return &PaginationValue{Param: &Param{Name: name}}
}

// IsStatic reports whether the value is known at render time.
func (pv *PaginationValue) IsStatic() bool {
	return pv != nil && pv.Static != nil
}

// String renders the value for naming purposes: the number or the parameter name.
func (pv *PaginationValue) String() string {
	switch {
	case pv == nil:
		return ""
	case pv.Static != nil:
		return fmt.Sprintf("%d", *pv.Static)
	case pv.Param != nil:
		return pv.Param.Name
	}
	return ""
}

func (pv *PaginationValue) validate(clause string) error {
	if pv == nil {
		return nil
	}
	if (pv.Static == nil) == (pv.Param == nil) {
		return fmt.Errorf("%s requires exactly one of a static value or a parameter", clause)
	}
	if pv.Static != nil && *pv.Static < 0 {
		return fmt.Errorf("%s cannot be negative: %d", clause, *pv.Static)
	}
	return nil
}

// FetchType is the kind of row limit: plain rows, percentage, and whether ties are kept.
type FetchType string

const (
	FetchRowsOnly        FetchType = "ROWS ONLY"
	FetchRowsWithTies    FetchType = "ROWS WITH TIES"
	FetchPercentOnly     FetchType = "PERCENT ROWS ONLY"
	FetchPercentWithTies FetchType = "PERCENT ROWS WITH TIES"
)

// Effective returns the fetch type with the empty value normalized to FetchRowsOnly.
func (f FetchType) Effective() FetchType {
	if f == "" {
		return FetchRowsOnly
	}
	return f
}

func (f FetchType) valid() bool {
	switch f {
	case FetchRowsOnly, FetchRowsWithTies, FetchPercentOnly, FetchPercentWithTies:
		return true
	}
	return false
}
