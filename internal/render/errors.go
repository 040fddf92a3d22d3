package render

import (
	"errors"
	"fmt"
)

// UnsupportedFeatureError reports a construct the dialect cannot express or
// emulate. Rendering stops at the first one; no partial SQL is returned.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates an UnsupportedFeatureError with an
// optional hint pointing at a workaround.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// IsUnsupported reports whether err, or an error it wraps, is an
// UnsupportedFeatureError.
func IsUnsupported(err error) bool {
	var ufErr UnsupportedFeatureError
	return errors.As(err, &ufErr)
}
