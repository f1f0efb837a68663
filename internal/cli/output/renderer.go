// Package output renders command results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/csvcode/internal/snippet"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how structured results are written.
type Mode string

// Output modes
const (
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeMarkdown Mode = "md"
)

// ParseMode validates a mode name. "markdown" is accepted for ModeMarkdown.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "table", "text":
		return ModeTable, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	case "md", "markdown":
		return ModeMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, yaml or md)", s)
}

// Color settings
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Highlighting parameters for generated code.
const (
	codeLexer     = "python"
	codeFormatter = "terminal256"
	codeStyle     = "monokai"
)

// Renderer writes styled output to a writer.
type Renderer struct {
	out    io.Writer
	mode   Mode
	color  bool
	styles *Styles
}

// NewRenderer creates a renderer. color is one of auto, always or never;
// auto enables styling only when out is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer, mode Mode, color string) *Renderer {
	enabled := colorEnabled(out, color)

	lr := lipgloss.NewRenderer(out)
	if enabled {
		if lr.ColorProfile() == termenv.Ascii {
			lr.SetColorProfile(termenv.ANSI256)
		}
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:    out,
		mode:   mode,
		color:  enabled,
		styles: NewStyles(lr),
	}
}

func colorEnabled(w io.Writer, setting string) bool {
	switch setting {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Mode returns the structured output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Style renders s with st when styling is enabled and returns s unchanged
// otherwise.
func (r *Renderer) Style(st lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return st.Render(s)
}

// Notice formats an informational message.
func (r *Renderer) Notice(s string) string {
	return r.Style(r.styles.Notice, s)
}

// Muted formats secondary text.
func (r *Renderer) Muted(s string) string {
	return r.Style(r.styles.Muted, s)
}

// Snippet writes generated code followed by a newline, highlighted when
// styling is enabled.
func (r *Renderer) Snippet(s snippet.Snippet) error {
	if !r.color {
		_, err := fmt.Fprintln(r.out, s.String())
		return err
	}
	return quick.Highlight(r.out, s.String()+"\n", codeLexer, codeFormatter, codeStyle)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table writes rows under header as a box table, or as a markdown table
// in ModeMarkdown.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	if r.color {
		t.Style().Color.Header = text.Colors{text.Bold}
	}
	t.AppendHeader(header)
	t.AppendRows(rows)

	if r.mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
