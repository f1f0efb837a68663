// Package snippet composes ready-to-run Python import code for a CSV file.
package snippet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/csvcode/internal/literal"
)

// Library is the Python package the generated code imports.
const Library = "clevercsv"

// Mode selects the template used by Compose.
type Mode int

const (
	// ModeRowReader reads the file into a list of rows.
	ModeRowReader Mode = iota
	// ModeDataFrame loads the file into a pandas DataFrame.
	ModeDataFrame
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRowReader:
		return "rows"
	case ModeDataFrame:
		return "dataframe"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Variable returns the name the generated code binds the data to.
func (m Mode) Variable() string {
	if m == ModeDataFrame {
		return "df"
	}
	return "rows"
}

// Header identifies the tool in the generated comment line.
type Header struct {
	Generator string
	Version   string
}

// Comment returns the comment line naming the generator and its version.
func (h Header) Comment() string {
	return fmt.Sprintf("# Code generated with %s version %s", h.Generator, h.Version)
}

// Options configures one composition.
type Options struct {
	// Path is the CSV file location, embedded verbatim.
	Path string
	// Encoding is passed to open() in row reader mode; empty renders None.
	Encoding string
	Mode     Mode
}

// Snippet is an ordered, immutable sequence of source lines.
type Snippet struct {
	lines []string
}

// Lines returns a copy of the source lines in emission order.
func (s Snippet) Lines() []string {
	return slices.Clone(s.lines)
}

// Len returns the number of lines.
func (s Snippet) Len() int {
	return len(s.lines)
}

// String joins the lines with newlines.
func (s Snippet) String() string {
	return strings.Join(s.lines, "\n")
}

// Compose builds the snippet for opts from the encoded dialect literals.
func Compose(h Header, opts Options, lits literal.Set) Snippet {
	lines := []string{
		"",
		h.Comment(),
		"",
		"import " + Library,
		"",
	}

	dialectArgs := fmt.Sprintf("delimiter=%s, quotechar=%s, escapechar=%s", lits.Delimiter, lits.QuoteChar, lits.EscapeChar)

	switch opts.Mode {
	case ModeDataFrame:
		lines = append(lines,
			fmt.Sprintf(`df = %s.csv2df("%s", %s)`, Library, opts.Path, dialectArgs),
			"",
		)
	default:
		lines = append(lines,
			fmt.Sprintf(`with open("%s", "r", newline="", encoding=%s) as fp:`, opts.Path, literal.OptionalString(opts.Encoding)),
			fmt.Sprintf("    reader = %s.reader(fp, %s)", Library, dialectArgs),
			"    rows = list(reader)",
			"",
		)
	}

	return Snippet{lines: lines}
}
