package dialect

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/leapstack-labs/csvcode/internal/charset"
)

// preferredDelimiters orders candidates so that ties resolve to the common choice.
const preferredDelimiters = ",;\t|: "

// singleColumnScore is the row-pattern weight of a one-cell row.
const singleColumnScore = 0.001

// ConsistencyDetector scores every candidate dialect by how regular the
// resulting table is and how many of its cells look like known values.
type ConsistencyDetector struct {
	logger *slog.Logger
}

// NewConsistencyDetector creates a detector. A nil logger discards output.
func NewConsistencyDetector(logger *slog.Logger) *ConsistencyDetector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ConsistencyDetector{logger: logger}
}

// Detect reads the file at path and infers its dialect.
func (d *ConsistencyDetector) Detect(ctx context.Context, path string, opts DetectOptions) (Dialect, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dialect{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := charset.NewReader(f, opts.Encoding)
	if err != nil {
		return Dialect{}, err
	}

	sample, err := readSample(r, opts.NumChars)
	if err != nil {
		return Dialect{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return d.DetectString(ctx, sample, opts)
}

// DetectString infers the dialect of in-memory content.
func (d *ConsistencyDetector) DetectString(ctx context.Context, data string, opts DetectOptions) (Dialect, error) {
	if strings.TrimSpace(data) == "" {
		return Dialect{}, ErrNoDialect
	}

	var (
		best      Dialect
		bestScore float64
	)
	for _, cand := range candidates(data) {
		if err := ctx.Err(); err != nil {
			return Dialect{}, err
		}

		score := scoreDialect(data, cand)
		if opts.Verbose {
			d.logger.Debug("scored dialect", slog.String("dialect", cand.String()), slog.Float64("score", score))
		}
		switch {
		case score > bestScore+1e-12:
			best, bestScore = cand, score
		case cand.HasEscape() && score > 0 && score >= bestScore-1e-12 &&
			cand.Delimiter == best.Delimiter && cand.QuoteChar == best.QuoteChar:
			// A backslash seen before the delimiter or quote wins a tie.
			best = cand
		}
	}

	if bestScore == 0 {
		return Dialect{}, ErrNoDialect
	}
	d.logger.Debug("dialect detected", slog.String("dialect", best.String()), slog.Float64("score", bestScore))
	return best, nil
}

// readSample reads at most n runes from r, or everything when n <= 0.
func readSample(r io.Reader, n int) (string, error) {
	if n <= 0 {
		b, err := io.ReadAll(r)
		return string(b), err
	}

	br := bufio.NewReader(r)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		sb.WriteRune(ch)
	}
	return sb.String(), nil
}

// scoreDialect multiplies the row-pattern score by the cell type score.
func scoreDialect(data string, d Dialect) float64 {
	rows := parseRows(data, d)
	if len(rows) == 0 {
		return 0
	}
	return patternScore(rows) * typeScore(rows)
}

// patternScore rewards tables whose row lengths repeat. Each distinct row
// length k seen N_k times contributes N_k*(k-1)/k; the sum is divided by the
// number of distinct lengths.
func patternScore(rows [][]string) float64 {
	counts := make(map[int]int)
	for _, row := range rows {
		counts[len(row)]++
	}

	var total float64
	for length, n := range counts {
		weight := float64(length-1) / float64(length)
		if length <= 1 {
			weight = singleColumnScore
		}
		total += float64(n) * weight
	}
	return total / float64(len(counts))
}

// typeScore is the fraction of cells that match a known type.
func typeScore(rows [][]string) float64 {
	var known, total int
	for _, row := range rows {
		for _, cell := range row {
			total++
			if isKnownType(cell) {
				known++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(known) / float64(total)
}

// candidates lists the dialects worth scoring for data, in tie-break order.
func candidates(data string) []Dialect {
	present := make(map[rune]bool)
	for _, r := range data {
		present[r] = true
	}

	var delims []string
	for _, r := range preferredDelimiters {
		if present[r] {
			delims = append(delims, string(r))
		}
	}
	var others []rune
	for r := range present {
		if isDelimiterCandidate(r) && !strings.ContainsRune(preferredDelimiters, r) {
			others = append(others, r)
		}
	}
	slices.Sort(others)
	for _, r := range others {
		delims = append(delims, string(r))
	}
	delims = append(delims, "")

	var quotes []string
	for _, q := range []string{`"`, "'"} {
		if strings.Contains(data, q) {
			quotes = append(quotes, q)
		}
	}
	quotes = append(quotes, "")

	var out []Dialect
	for _, delim := range delims {
		for _, quote := range quotes {
			escapes := []string{""}
			if escapeUsed(data, delim, quote) {
				escapes = append(escapes, `\`)
			}
			for _, esc := range escapes {
				out = append(out, Dialect{Delimiter: delim, QuoteChar: quote, EscapeChar: esc})
			}
		}
	}
	return out
}

// isDelimiterCandidate excludes characters that are part of ordinary values.
func isDelimiterCandidate(r rune) bool {
	switch r {
	case '"', '\'', '\\', '.', '\n', '\r':
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}

// escapeUsed reports whether a backslash directly precedes the delimiter or quote.
func escapeUsed(data, delim, quote string) bool {
	for _, s := range []string{delim, quote} {
		if s != "" && strings.Contains(data, `\`+s) {
			return true
		}
	}
	return false
}
