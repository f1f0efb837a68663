// Package session feeds generated code into an interactive interpreter and
// hands control to the operator once the data is loaded.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/csvcode/internal/snippet"
)

// Messages written by Driver.Run.
const (
	FailureNotice = "An error occurred starting the interactive console. Printing commands instead:\n"
	DropNotice    = "Dropping you into an interactive shell.\n"
	BannerPrefix  = "CleverCSV has loaded the data into the variable: "
)

// ErrIncomplete is returned by Bootstrap when the last pushed line leaves
// the console waiting for more input.
var ErrIncomplete = errors.New("snippet left an incomplete statement")

// Console is an interactive evaluation session fed one line at a time.
type Console interface {
	// Push evaluates line, or buffers it when it does not complete a
	// statement. more reports whether the console expects continuation lines.
	Push(line string) (more bool, err error)
	// Interact prints banner and runs the read-evaluate loop until the
	// operator leaves it.
	Interact(ctx context.Context, banner string) error
	// Close ends the session.
	Close() error
}

// Bootstrap pushes lines into c in order.
func Bootstrap(c Console, lines []string) error {
	var more bool
	for i, line := range lines {
		var err error
		more, err = c.Push(line)
		if err != nil {
			return fmt.Errorf("failed to push line %d: %w", i+1, err)
		}
	}
	if more {
		return ErrIncomplete
	}
	return nil
}

// StartFunc creates a fresh console.
type StartFunc func(ctx context.Context) (Console, error)

// Driver runs a snippet in a new console, falling back to printing it.
type Driver struct {
	Start StartFunc
	Out   io.Writer
	// Show prints the snippet; nil writes it as plain text to Out.
	Show func(snippet.Snippet) error
	// Style decorates notices and the banner; nil leaves them plain.
	Style  func(string) string
	Logger *slog.Logger
}

// Run bootstraps a console with snip and enters it with a banner naming
// variable. If the console cannot be started or bootstrapped, the failure
// notice and the snippet are printed instead and Run returns nil.
func (d *Driver) Run(ctx context.Context, snip snippet.Snippet, variable string) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	console, err := d.Start(ctx)
	if err != nil {
		logger.Warn("failed to start console", slog.String("error", err.Error()))
		return d.fallback(snip)
	}
	defer func() {
		if cerr := console.Close(); cerr != nil {
			logger.Debug("console closed with error", slog.String("error", cerr.Error()))
		}
	}()

	if err := Bootstrap(console, snip.Lines()); err != nil {
		logger.Warn("failed to bootstrap console", slog.String("error", err.Error()))
		return d.fallback(snip)
	}

	if err := d.notice(DropNotice); err != nil {
		return err
	}
	return console.Interact(ctx, d.style(BannerPrefix+variable))
}

func (d *Driver) fallback(snip snippet.Snippet) error {
	if err := d.notice(FailureNotice); err != nil {
		return err
	}
	if d.Show != nil {
		return d.Show(snip)
	}
	_, err := fmt.Fprintln(d.Out, snip.String())
	return err
}

// notice writes msg followed by a line break. Messages carry their own
// trailing newline, so a blank line follows them.
func (d *Driver) notice(msg string) error {
	text := strings.TrimSuffix(msg, "\n")
	_, err := fmt.Fprintf(d.Out, "%s\n\n", d.style(text))
	return err
}

func (d *Driver) style(s string) string {
	if d.Style == nil {
		return s
	}
	return d.Style(s)
}
