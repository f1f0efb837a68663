package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/csvcode/internal/dialect"
	"github.com/leapstack-labs/csvcode/internal/literal"
	"github.com/leapstack-labs/csvcode/internal/snippet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeTable},
		{in: "table", want: ModeTable},
		{in: "JSON", want: ModeJSON},
		{in: "yml", want: ModeYAML},
		{in: "markdown", want: ModeMarkdown},
		{in: "md", want: ModeMarkdown},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_StyledNotice(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, ModeTable, ColorAlways)

	got := r.Notice("Dropping you into an interactive shell.")
	assert.Contains(t, got, "Dropping you into an interactive shell.")
	assert.NotEqual(t, "Dropping you into an interactive shell.", got)
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, colorEnabled(&buf, ColorAlways))
	assert.False(t, colorEnabled(&buf, ColorNever))
	assert.False(t, colorEnabled(&buf, ColorAuto), "buffers are never terminals")
}

func testSnippet() snippet.Snippet {
	return snippet.Compose(
		snippet.Header{Generator: "csvcode", Version: "1.0"},
		snippet.Options{Path: "data.csv", Encoding: "utf-8", Mode: snippet.ModeRowReader},
		literal.Encode(dialect.Dialect{Delimiter: ",", QuoteChar: `"`}),
	)
}

func TestRenderer_SnippetPlain(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, ModeTable, ColorNever)

	snip := testSnippet()
	require.NoError(t, r.Snippet(snip))
	assert.Equal(t, snip.String()+"\n", out.String())
}

func TestRenderer_SnippetHighlighted(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, ModeTable, ColorAlways)

	require.NoError(t, r.Snippet(testSnippet()))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "clevercsv")
}

func TestRenderer_PlainStyles(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, ModeTable, ColorNever)

	assert.Equal(t, "Dialect detection failed.", r.Notice("Dialect detection failed."))
	assert.Equal(t, "muted", r.Muted("muted"))
	assert.Empty(t, out.String())
}

func TestRenderer_Table(t *testing.T) {
	header := table.Row{"Delimiter", "Quotechar"}
	rows := []table.Row{{",", `"`}}

	var out bytes.Buffer
	NewRenderer(&out, ModeTable, ColorNever).Table(header, rows)
	assert.Contains(t, out.String(), "Delimiter")
	assert.Contains(t, out.String(), "┌")

	out.Reset()
	NewRenderer(&out, ModeMarkdown, ColorNever).Table(header, rows)
	assert.Contains(t, out.String(), "| Delimiter | Quotechar |")
	assert.Contains(t, out.String(), "| --- | --- |")
}

func TestRenderer_Encoders(t *testing.T) {
	v := map[string]string{"encoding": "utf-8"}

	var out bytes.Buffer
	r := NewRenderer(&out, ModeJSON, ColorNever)
	require.NoError(t, r.JSON(v))
	assert.Equal(t, "{\n  \"encoding\": \"utf-8\"\n}\n", out.String())

	out.Reset()
	require.NoError(t, r.YAML(v))
	assert.Equal(t, "encoding: utf-8\n", out.String())
}
