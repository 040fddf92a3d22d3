package types

import (
	"fmt"
	"math"
)

// QueryResult contains the rendered SQL and what the caller needs to execute it.
type QueryResult struct {
	SQL            string
	RequiredParams []string
	// Derived lists parameters that appear in SQL but are computed from
	// caller-supplied values by Bind.
	Derived []DerivedParam
	// Skip is the number of leading rows the caller must discard.
	Skip *PaginationValue
	// IdentitySelect fetches the key generated by an INSERT.
	IdentitySelect string
}

// DerivedParam is a synthetic parameter whose value is Constant plus the sum of Params.
type DerivedParam struct {
	Name     string
	Params   []string
	Constant int
}

// Bind returns a copy of args with every derived parameter filled in.
func (r *QueryResult) Bind(args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args)+len(r.Derived))
	for k, v := range args {
		out[k] = v
	}
	for _, name := range r.RequiredParams {
		if _, ok := args[name]; !ok {
			return nil, fmt.Errorf("missing parameter: %s", name)
		}
	}
	for _, d := range r.Derived {
		total := int64(d.Constant)
		for _, p := range d.Params {
			n, err := toInt64(args[p])
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", p, err)
			}
			if n < 0 || n > math.MaxInt32 {
				return nil, fmt.Errorf("parameter %s: row count out of range: %d", p, n)
			}
			total += n
		}
		if total < 0 || total > math.MaxInt32 {
			return nil, fmt.Errorf("derived parameter %s: row count out of range: %d", d.Name, total)
		}
		out[d.Name] = total
	}
	return out, nil
}

// RowsToSkip resolves Skip against args.
func (r *QueryResult) RowsToSkip(args map[string]any) (int, error) {
	switch {
	case r.Skip == nil:
		return 0, nil
	case r.Skip.Static != nil:
		return *r.Skip.Static, nil
	case r.Skip.Param != nil:
		n, err := toInt64(args[r.Skip.Param.Name])
		if err != nil {
			return 0, fmt.Errorf("parameter %s: %w", r.Skip.Param.Name, err)
		}
		if n < 0 || n > math.MaxInt32 {
			return 0, fmt.Errorf("parameter %s: row count out of range: %d", r.Skip.Param.Name, n)
		}
		return int(n), nil
	}
	return 0, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value overflows int64: %d", n)
		}
		return int64(n), nil
	case nil:
		return 0, fmt.Errorf("value is missing")
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", v)
	}
}
