// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/leapstack-labs/csvcode/internal/cli/output"
)

// TestRenderer wraps a Renderer for testing with captured output.
type TestRenderer struct {
	*output.Renderer
	Out *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and
// color setting. Output is captured in a buffer for inspection.
func NewTestRenderer(mode output.Mode, color string) *TestRenderer {
	out := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, mode, color),
		Out:      out,
	}
}

// NewTestRendererPlain creates a table-mode renderer without styling.
func NewTestRendererPlain() *TestRenderer {
	return NewTestRenderer(output.ModeTable, output.ColorNever)
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
