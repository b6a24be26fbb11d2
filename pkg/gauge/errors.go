package gauge

import (
	"errors"
	"fmt"
)

var (
	ErrDegenerateScale  = errors.New("scale start equals scale end")
	ErrNotNumeric       = errors.New("not a number")
	ErrNotFinite        = errors.New("not a finite number")
	ErrOffsetRange      = errors.New("scale offset outside 0-180 degrees")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrReentrant        = errors.New("gauge mutated while drawing")
	ErrMalformedPath    = errors.New("malformed arc path")
)

// ConfigurationError reports input the gauge cannot turn into a drawable state.
type ConfigurationError struct {
	Field string
	Input string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
