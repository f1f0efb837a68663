package session

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/csvcode/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPython(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no python interpreter in PATH")
	return ""
}

func TestPythonConsole_Push(t *testing.T) {
	py := lookPython(t)

	var stdout, stderr bytes.Buffer
	c, err := StartPython(context.Background(), PythonConfig{
		Interpreter: py,
		Stdout:      &stdout,
		Stderr:      &stderr,
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	lines := []string{
		"",
		"# a comment",
		"x = 20",
		"if x:",
		"    y = x + 1",
		"",
		"print(y * 2)",
		"print(1))",
	}
	var more bool
	for _, line := range lines {
		more, err = c.Push(line)
		require.NoError(t, err)
	}
	assert.False(t, more)

	require.NoError(t, c.Close())
	assert.Contains(t, stdout.String(), "42")
	assert.Contains(t, stderr.String(), "SyntaxError")
	assert.NotContains(t, stdout.String(), ">>>")

	_, err = c.Push("print(2)")
	assert.ErrorIs(t, err, ErrExited)
}

func TestPythonConsole_PushIncomplete(t *testing.T) {
	py := lookPython(t)

	c, err := StartPython(context.Background(), PythonConfig{
		Interpreter: py,
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
	}, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	more, err := c.Push("values = [1,")
	require.NoError(t, err)
	assert.True(t, more)
}

// lockedBuffer is written by the interpreter's output copier and the line
// editor at the same time.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// afterExit blocks until the interpreter has exited and then yields r.
type afterExit struct {
	done <-chan struct{}
	r    io.Reader
}

func (a *afterExit) Read(p []byte) (int, error) {
	<-a.done
	return a.r.Read(p)
}

func TestPythonConsole_Interact(t *testing.T) {
	py := lookPython(t)

	tests := []struct {
		name    string
		stdin   func(c *PythonConsole) io.Reader
		want    []string
		notWant []string
	}{
		{
			name: "statements until end of input",
			stdin: func(*PythonConsole) io.Reader {
				return strings.NewReader("x = [1,\n 2]\nprint(sum(x))\n")
			},
			want: []string{"banner\n", "3\n"},
		},
		{
			name: "interpreter exits first",
			stdin: func(c *PythonConsole) io.Reader {
				return io.MultiReader(
					strings.NewReader("exit()\n"),
					&afterExit{done: c.done, r: strings.NewReader("print('after')\n")},
				)
			},
			want:    []string{"banner\n"},
			notWant: []string{"after"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr lockedBuffer
			c, err := StartPython(context.Background(), PythonConfig{
				Interpreter: py,
				Stdout:      &stdout,
				Stderr:      &stderr,
			}, testutil.NewTestLogger(t))
			require.NoError(t, err)
			c.cfg.Stdin = io.NopCloser(tt.stdin(c))

			require.NoError(t, c.Interact(context.Background(), "banner"))
			require.NoError(t, c.Close())

			got := stdout.String()
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, got, notWant)
			}

			_, err = c.Push("print(2)")
			assert.ErrorIs(t, err, ErrExited)
		})
	}
}

func TestStartPython_MissingInterpreter(t *testing.T) {
	_, err := StartPython(context.Background(), PythonConfig{Interpreter: "csvcode-no-such-python"}, nil)
	assert.Error(t, err)
}
