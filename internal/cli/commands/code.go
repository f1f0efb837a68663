package commands

import (
	"context"
	"errors"

	"github.com/leapstack-labs/csvcode/internal/dialect"
	"github.com/leapstack-labs/csvcode/internal/literal"
	"github.com/leapstack-labs/csvcode/internal/session"
	"github.com/leapstack-labs/csvcode/internal/snippet"
	"github.com/spf13/cobra"
)

// CodeOptions holds options for the code command.
type CodeOptions struct {
	Encoding string
	NumChars string
	Interact bool
	Pandas   bool
}

// NewCodeCommand creates the code command.
func NewCodeCommand(version string) *cobra.Command {
	opts := &CodeOptions{}

	cmd := &cobra.Command{
		Use:   "code <path>",
		Short: "Generate Python code to import a CSV file",
		Long: `Detect the dialect of a CSV file and print Python code that imports it
with CleverCSV.

With --interact the code is run in a Python interpreter and you are dropped
into an interactive shell with the data loaded. With --pandas the file is
loaded into a DataFrame instead of a list of rows.`,
		Example: `  # Print code that reads the rows of a file
  csvcode code data.csv

  # Load the file into a DataFrame and start Python
  csvcode code --pandas --interact data.csv

  # Only look at the first 10000 characters
  csvcode code -n 10000 -e utf-8 data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runCode(cmd.Context(), cc, version, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Encoding, "encoding", "e", "", "Set the encoding of the file (detected when omitted)")
	cmd.Flags().StringVarP(&opts.NumChars, "num-chars", "n", "", "Number of characters to use for dialect detection")
	cmd.Flags().BoolVarP(&opts.Interact, "interact", "i", false, "Drop into a Python interactive shell")
	cmd.Flags().BoolVarP(&opts.Pandas, "pandas", "p", false, "Write code that imports to a Pandas DataFrame")
	cmd.Flags().String("python", "", "Python interpreter used with --interact")

	return cmd
}

func runCode(ctx context.Context, cc *CommandContext, version, path string, opts *CodeOptions) error {
	r := cc.Renderer

	d, encoding, err := cc.resolveDialect(ctx, DetectRequest{
		Path:     path,
		Encoding: opts.Encoding,
		NumChars: opts.NumChars,
	})
	if errors.Is(err, dialect.ErrNoDialect) {
		r.Println(r.Notice(DetectionFailed))
		return nil
	}
	if err != nil {
		return err
	}

	mode := snippet.ModeRowReader
	if opts.Pandas {
		mode = snippet.ModeDataFrame
	}

	snip := snippet.Compose(
		snippet.Header{Generator: cc.Cfg.Generator, Version: version},
		snippet.Options{Path: path, Encoding: encoding, Mode: mode},
		literal.Encode(d),
	)

	if !opts.Interact {
		return r.Snippet(snip)
	}

	driver := &session.Driver{
		Start:  cc.Start,
		Out:    r.Writer(),
		Show:   r.Snippet,
		Style:  r.Notice,
		Logger: cc.Logger,
	}
	return driver.Run(ctx, snip, mode.Variable())
}
