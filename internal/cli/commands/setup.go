package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/csvcode/internal/cache"
	"github.com/leapstack-labs/csvcode/internal/charset"
	"github.com/leapstack-labs/csvcode/internal/cli/config"
	"github.com/leapstack-labs/csvcode/internal/cli/output"
	"github.com/leapstack-labs/csvcode/internal/dialect"
	"github.com/leapstack-labs/csvcode/internal/session"
	"github.com/spf13/cobra"
)

// DetectionFailed is printed when no dialect could be inferred.
const DetectionFailed = "Dialect detection failed."

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Detector dialect.Detector
	// Start launches the interpreter for interactive sessions.
	Start session.StartFunc
}

// NewCommandContext creates a CommandContext with a detector and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), mode, cfg.Color)

	var detector dialect.Detector = dialect.NewConsistencyDetector(logger)
	cleanup := func() {}

	if !cfg.NoCache {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			// Detection still works without the cache.
			logger.Warn("dialect cache unavailable",
				slog.String("path", cfg.CachePath),
				slog.String("error", err.Error()))
		} else {
			detector = cache.NewDetector(store, detector, logger)
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Debug("failed to close dialect cache", slog.String("error", err.Error()))
				}
			}
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Detector: detector,
		Start:    pythonStarter(cmd, cfg, logger),
	}, cleanup, nil
}

func pythonStarter(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) session.StartFunc {
	return func(ctx context.Context) (session.Console, error) {
		c, err := session.StartPython(ctx, session.PythonConfig{
			Interpreter: cfg.Python,
			HistoryFile: cfg.HistoryFile,
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// DetectRequest carries the inputs shared by commands that detect a dialect.
type DetectRequest struct {
	Path     string
	Encoding string
	NumChars string
}

// resolveDialect determines the encoding, when not given, and the dialect
// of a file. Detection failure is reported as dialect.ErrNoDialect.
func (c *CommandContext) resolveDialect(ctx context.Context, req DetectRequest) (dialect.Dialect, string, error) {
	numChars, err := ParseInt(req.NumChars, "num-chars")
	if err != nil {
		return dialect.Dialect{}, "", err
	}
	n := c.Cfg.NumChars
	if numChars != nil {
		if *numChars < 0 {
			return dialect.Dialect{}, "", &ValidationError{
				Field: "num-chars",
				Value: req.NumChars,
				Err:   errors.New("must not be negative"),
			}
		}
		n = *numChars
	}

	encoding := req.Encoding
	if encoding == "" {
		encoding, err = charset.Detect(req.Path)
		if err != nil {
			return dialect.Dialect{}, "", fmt.Errorf("failed to detect encoding: %w", err)
		}
		c.Logger.Debug("detected encoding", slog.String("path", req.Path), slog.String("encoding", encoding))
	}

	d, err := c.Detector.Detect(ctx, req.Path, dialect.DetectOptions{
		NumChars: n,
		Encoding: encoding,
		Verbose:  c.Cfg.Verbose,
	})
	if err != nil {
		return dialect.Dialect{}, encoding, err
	}
	c.Logger.Debug("detected dialect", slog.String("dialect", d.String()))
	return d, encoding, nil
}
