package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"
)

// ErrExited is returned by PythonConsole.Push once the interpreter has exited.
var ErrExited = errors.New("interpreter has exited")

const (
	primaryPrompt      = ">>> "
	continuationPrompt = "... "

	// The console draws its own prompts, so the interpreter's are blanked.
	suppressPrompts = "import sys; sys.ps1 = sys.ps2 = ''"
)

// PythonConfig configures a PythonConsole.
type PythonConfig struct {
	// Interpreter is the python executable, looked up in PATH.
	Interpreter string
	// HistoryFile keeps operator input across sessions; empty disables it.
	HistoryFile string
	// Stdin is read by the interactive loop; nil uses the terminal.
	Stdin io.ReadCloser
	// Stdout and Stderr receive interpreter output; nil uses the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// PythonConsole is a Console backed by a persistent python process in
// interactive mode. Statements are assembled by a StatementBuffer and sent
// to the interpreter whole.
type PythonConsole struct {
	cfg    PythonConfig
	logger *slog.Logger

	buf   StatementBuffer
	stdin io.WriteCloser

	done      chan struct{}
	waitErr   error
	closeOnce sync.Once
}

// StartPython launches the interpreter and returns a console attached to it.
func StartPython(ctx context.Context, cfg PythonConfig, logger *slog.Logger) (*PythonConsole, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Interpreter == "" {
		cfg.Interpreter = "python3"
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, cfg.Interpreter, "-q", "-u", "-i", "-c", suppressPrompts)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open interpreter stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open interpreter stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open interpreter stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Interpreter, err)
	}
	logger.Debug("interpreter started", slog.String("interpreter", cfg.Interpreter), slog.Int("pid", cmd.Process.Pid))

	c := &PythonConsole{
		cfg:    cfg,
		logger: logger,
		stdin:  stdin,
		done:   make(chan struct{}),
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(cfg.Stdout, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(cfg.Stderr, stderr)
		return err
	})
	go func() {
		// Pipes must be drained before Wait.
		pumpErr := g.Wait()
		c.waitErr = errors.Join(pumpErr, cmd.Wait())
		close(c.done)
	}()

	return c, nil
}

// Push implements Console.
func (c *PythonConsole) Push(line string) (bool, error) {
	more, src, err := c.buf.Push(line)
	if errors.Is(err, ErrSyntax) {
		// The interpreter reports the error itself.
		c.logger.Debug("forwarding invalid statement", slog.String("source", src))
	}
	if more {
		return true, nil
	}
	if strings.TrimSpace(src) == "" {
		return false, nil
	}
	if c.exited() {
		return false, ErrExited
	}

	if _, err := io.WriteString(c.stdin, src+"\n"); err != nil {
		if c.exited() {
			return false, ErrExited
		}
		return false, fmt.Errorf("failed to write to interpreter: %w", err)
	}
	return false, nil
}

// Interact implements Console. It returns when the operator sends EOF, the
// interpreter exits or ctx is canceled.
func (c *PythonConsole) Interact(ctx context.Context, banner string) error {
	if _, err := fmt.Fprintln(c.cfg.Stdout, banner); err != nil {
		return err
	}

	if c.cfg.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.cfg.HistoryFile), 0o750); err != nil {
			c.logger.Warn("history disabled", slog.String("error", err.Error()))
			c.cfg.HistoryFile = ""
		}
	}

	rlCfg := &readline.Config{
		Prompt:          primaryPrompt,
		HistoryFile:     c.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit()",
		Stdout:          c.cfg.Stdout,
		Stderr:          c.cfg.Stderr,
	}
	if c.cfg.Stdin != nil {
		rlCfg.Stdin = c.cfg.Stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	defer func() { _ = rl.Close() }()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-c.done:
		case <-ctx.Done():
		case <-stop:
			return
		}
		_ = rl.Close()
	}()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			c.buf.Reset()
			rl.SetPrompt(c.prompt())
			continue
		}
		if err != nil {
			break
		}

		_, err = c.Push(line)
		if errors.Is(err, ErrExited) {
			break
		}
		if err != nil {
			return err
		}
		rl.SetPrompt(c.prompt())
	}

	return ctx.Err()
}

// prompt is the continuation prompt while a statement is open.
func (c *PythonConsole) prompt() string {
	if c.buf.Pending() {
		return continuationPrompt
	}
	return primaryPrompt
}

// Close ends the interpreter by closing its input and waits for it to exit.
// A non-zero exit status is not reported as an error.
func (c *PythonConsole) Close() error {
	c.closeOnce.Do(func() {
		_ = c.stdin.Close()
	})
	<-c.done

	var exitErr *exec.ExitError
	if errors.As(c.waitErr, &exitErr) {
		c.logger.Debug("interpreter exited", slog.Int("code", exitErr.ExitCode()))
		return nil
	}
	return c.waitErr
}

func (c *PythonConsole) exited() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
