// Package literal renders dialect characters and option values as Python
// source literals that can be embedded in generated code.
//
// All literals use double quotes. The encoders never fail: their input is
// re-serialized, not parsed.
package literal

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/csvcode/internal/dialect"
)

// None is the Python literal for an absent value.
const None = "None"

// Set holds the three encoded dialect literals of one snippet.
type Set struct {
	Delimiter  string
	QuoteChar  string
	EscapeChar string
}

// Encode renders every field of d.
func Encode(d dialect.Dialect) Set {
	return Set{
		Delimiter:  Delimiter(d.Delimiter),
		QuoteChar:  QuoteChar(d.QuoteChar),
		EscapeChar: EscapeChar(d.EscapeChar),
	}
}

// Delimiter wraps ch in double quotes. A tab becomes the escape sequence \t;
// no other character is escaped, so a double quote delimiter is emitted as is.
func Delimiter(ch string) string {
	if ch == "\t" {
		return `"\t"`
	}
	return `"` + ch + `"`
}

// QuoteChar wraps ch in double quotes, escaping any double quote inside it.
func QuoteChar(ch string) string {
	return `"` + strings.ReplaceAll(ch, `"`, `\"`) + `"`
}

// EscapeChar renders ch as a fully escaped double quoted string literal.
// An empty ch means the dialect has no escape character and yields None.
func EscapeChar(ch string) string {
	if ch == "" {
		return None
	}
	return strconv.Quote(ch)
}

// OptionalString wraps value in double quotes, or yields None when it is empty.
func OptionalString(value string) string {
	if value == "" {
		return None
	}
	return `"` + value + `"`
}
