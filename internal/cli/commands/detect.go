package commands

import (
	"context"
	"errors"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/csvcode/internal/cli/output"
	"github.com/leapstack-labs/csvcode/internal/dialect"
	"github.com/leapstack-labs/csvcode/internal/literal"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DetectOptions holds options for the detect command.
type DetectOptions struct {
	Encoding string
	NumChars string
	Plain    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <path>",
		Short: "Detect the dialect of a CSV file",
		Long: `Detect the delimiter, quote character and escape character of a CSV file.

The result is printed as a table by default. Use --format for json, yaml or
markdown output, or --plain for a single line.`,
		Example: `  csvcode detect data.csv
  csvcode detect --format json data.csv
  csvcode detect --plain -n 5000 data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return runDetect(cmd.Context(), cc, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Encoding, "encoding", "e", "", "Set the encoding of the file (detected when omitted)")
	cmd.Flags().StringVarP(&opts.NumChars, "num-chars", "n", "", "Number of characters to use for dialect detection")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Print the dialect on a single line")
	cmd.Flags().StringP("format", "f", "", "Output format: table, json, yaml, md")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml", "md"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// DetectResult is the structured output of the detect command.
type DetectResult struct {
	Path       string `json:"path" yaml:"path"`
	Encoding   string `json:"encoding" yaml:"encoding"`
	Delimiter  string `json:"delimiter" yaml:"delimiter"`
	QuoteChar  string `json:"quotechar" yaml:"quotechar"`
	EscapeChar string `json:"escapechar" yaml:"escapechar"`
}

func runDetect(ctx context.Context, cc *CommandContext, path string, opts *DetectOptions) error {
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

	if opts.Plain {
		r.Println(d.String())
		return nil
	}

	res := DetectResult{
		Path:       path,
		Encoding:   encoding,
		Delimiter:  d.Delimiter,
		QuoteChar:  d.QuoteChar,
		EscapeChar: d.EscapeChar,
	}

	switch r.Mode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeYAML:
		return r.YAML(res)
	default:
		renderDetectTable(r, res)
		return nil
	}
}

// renderDetectTable shows dialect characters as the Python literals that
// the code command would write.
func renderDetectTable(r *output.Renderer, res DetectResult) {
	title := cases.Title(language.English)
	header := table.Row{
		title.String("encoding"),
		title.String("delimiter"),
		title.String("quotechar"),
		title.String("escapechar"),
	}
	row := table.Row{
		literal.OptionalString(res.Encoding),
		literal.Delimiter(res.Delimiter),
		literal.QuoteChar(res.QuoteChar),
		literal.EscapeChar(res.EscapeChar),
	}
	r.Table(header, []table.Row{row})
}
