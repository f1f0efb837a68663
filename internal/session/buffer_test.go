package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type push struct {
	line string
	more bool
	src  string
}

func TestStatementBuffer_Push(t *testing.T) {
	tests := []struct {
		name   string
		pushes []push
	}{
		{
			name: "blank and comment lines",
			pushes: []push{
				{line: "", more: false, src: ""},
				{line: "# Code generated with csvcode version 1.0.0", more: false, src: ""},
				{line: "   ", more: false, src: ""},
			},
		},
		{
			name: "simple statement",
			pushes: []push{
				{line: "import clevercsv", more: false, src: "import clevercsv"},
			},
		},
		{
			name: "with block ends at blank line",
			pushes: []push{
				{line: `with open("a.csv", "r", newline="", encoding=None) as fp:`, more: true},
				{line: `    reader = clevercsv.reader(fp, delimiter=",", quotechar="\"", escapechar=None)`, more: true},
				{line: "    rows = list(reader)", more: true},
				{
					line: "",
					more: false,
					src: "with open(\"a.csv\", \"r\", newline=\"\", encoding=None) as fp:\n" +
						"    reader = clevercsv.reader(fp, delimiter=\",\", quotechar=\"\\\"\", escapechar=None)\n" +
						"    rows = list(reader)\n",
				},
			},
		},
		{
			name: "open bracket",
			pushes: []push{
				{line: "x = (1,", more: true},
				{line: "     2)", more: false, src: "x = (1,\n     2)"},
			},
		},
		{
			name: "bracket inside string is ignored",
			pushes: []push{
				{line: `s = "(["`, more: false, src: `s = "(["`},
			},
		},
		{
			name: "bracket inside comment is ignored",
			pushes: []push{
				{line: "x = 1  # (", more: false, src: "x = 1  # ("},
			},
		},
		{
			name: "triple quoted string",
			pushes: []push{
				{line: `doc = """first`, more: true},
				{line: `second"""`, more: false, src: "doc = \"\"\"first\nsecond\"\"\""},
			},
		},
		{
			name: "backslash continuation",
			pushes: []push{
				{line: `total = 1 + \`, more: true},
				{line: "    2", more: false, src: "total = 1 + \\\n    2"},
			},
		},
		{
			name: "single line compound statement",
			pushes: []push{
				{line: "if True: print(1)", more: true},
				{line: "", more: false, src: "if True: print(1)\n"},
			},
		},
		{
			name: "decorator",
			pushes: []push{
				{line: "@staticmethod", more: true},
				{line: "def f(): pass", more: true},
				{line: "", more: false, src: "@staticmethod\ndef f(): pass\n"},
			},
		},
		{
			name: "dataframe statement",
			pushes: []push{
				{
					line: `df = clevercsv.csv2df("x.csv", delimiter="\t", quotechar="'", escapechar="\\")`,
					more: false,
					src:  `df = clevercsv.csv2df("x.csv", delimiter="\t", quotechar="'", escapechar="\\")`,
				},
			},
		},
		{
			name: "keyword prefix is not a compound statement",
			pushes: []push{
				{line: "iffy = 1", more: false, src: "iffy = 1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b StatementBuffer
			for i, p := range tt.pushes {
				more, src, err := b.Push(p.line)
				require.NoError(t, err, "push %d", i)
				assert.Equal(t, p.more, more, "push %d more", i)
				assert.Equal(t, p.src, src, "push %d src", i)
			}
			assert.False(t, b.Pending())
		})
	}
}

func TestStatementBuffer_SyntaxErrors(t *testing.T) {
	for _, line := range []string{"print(1))", "x = ]", `s = "unterminated`} {
		var b StatementBuffer
		more, src, err := b.Push(line)
		assert.ErrorIs(t, err, ErrSyntax, "line %q", line)
		assert.False(t, more)
		assert.Equal(t, line, src)
		assert.False(t, b.Pending(), "buffer resets after a syntax error")
	}
}

func TestStatementBuffer_Reset(t *testing.T) {
	var b StatementBuffer
	more, _, err := b.Push("for i in range(3):")
	require.NoError(t, err)
	require.True(t, more)
	require.True(t, b.Pending())

	b.Reset()
	assert.False(t, b.Pending())

	more, src, err := b.Push("x = 1")
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, "x = 1", src)
}
