package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotInteger is wrapped by ValidationError when a numeric option does
// not parse.
var ErrNotInteger = errors.New("not a valid integer")

// ValidationError reports a malformed command-line option.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseInt parses an optional integer option. Empty text means the option
// was not given and yields nil.
func ParseInt(text, field string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, &ValidationError{Field: field, Value: text, Err: ErrNotInteger}
	}
	return &n, nil
}
