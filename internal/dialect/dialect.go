// Package dialect describes the structure of delimited text files and
// provides detectors that infer it from file content.
package dialect

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNoDialect is returned by a Detector when no dialect fits the content.
var ErrNoDialect = errors.New("no dialect detected")

// Dialect is the (delimiter, quote character, escape character) triple of a
// delimited text file. An empty QuoteChar or EscapeChar means the file has none.
type Dialect struct {
	Delimiter  string `json:"delimiter" yaml:"delimiter"`
	QuoteChar  string `json:"quotechar" yaml:"quotechar"`
	EscapeChar string `json:"escapechar" yaml:"escapechar"`
}

// HasEscape reports whether the dialect defines an escape character.
func (d Dialect) HasEscape() bool {
	return d.EscapeChar != ""
}

// String renders the dialect as SimpleDialect(',', '"', '').
func (d Dialect) String() string {
	return fmt.Sprintf("SimpleDialect(%s, %s, %s)", quoteChar(d.Delimiter), quoteChar(d.QuoteChar), quoteChar(d.EscapeChar))
}

// Validate checks that every field is empty or a single character.
func (d Dialect) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"delimiter", d.Delimiter},
		{"quotechar", d.QuoteChar},
		{"escapechar", d.EscapeChar},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > 1 {
			return fmt.Errorf("%s must be a single character, got %q", f.name, f.value)
		}
	}
	return nil
}

func quoteChar(s string) string {
	switch s {
	case "\t":
		return `'\t'`
	case "'":
		return `"'"`
	case `\`:
		return `'\\'`
	}
	return "'" + s + "'"
}

// DetectOptions controls how much of a file a Detector reads and how.
type DetectOptions struct {
	// NumChars limits the number of characters read; zero or less reads everything.
	NumChars int
	// Encoding names the file encoding; empty means UTF-8.
	Encoding string
	// Verbose logs every scored candidate.
	Verbose bool
}

// Detector infers the dialect of a file.
type Detector interface {
	Detect(ctx context.Context, path string, opts DetectOptions) (Dialect, error)
}
