package session

import (
	"errors"
	"strings"
)

// ErrSyntax is returned by StatementBuffer.Push when the buffered source can
// never become a valid statement.
var ErrSyntax = errors.New("invalid syntax")

// compoundKeywords open a statement that continues until a blank line.
var compoundKeywords = map[string]bool{
	"if":    true,
	"for":   true,
	"while": true,
	"with":  true,
	"def":   true,
	"class": true,
	"try":   true,
	"async": true,
}

// StatementBuffer accumulates source lines until they form a complete
// Python statement, the way an interactive interpreter decides whether to
// prompt for more input.
type StatementBuffer struct {
	lines []string
}

// Pending reports whether lines are buffered.
func (b *StatementBuffer) Pending() bool {
	return len(b.lines) > 0
}

// Reset discards buffered lines.
func (b *StatementBuffer) Reset() {
	b.lines = nil
}

// Push appends line. When more is false the buffer has been flushed and src
// holds the statement source to execute, which is empty for blank or
// comment-only input. On ErrSyntax src holds the rejected source.
func (b *StatementBuffer) Push(line string) (more bool, src string, err error) {
	b.lines = append(b.lines, line)
	joined := strings.Join(b.lines, "\n")

	st := scan(joined)
	if st.err != nil {
		b.Reset()
		return false, joined, st.err
	}
	if st.open() {
		return true, "", nil
	}

	first, ok := firstCode(b.lines)
	if !ok {
		b.Reset()
		return false, "", nil
	}

	if isCompound(first) && strings.TrimSpace(line) != "" {
		return true, "", nil
	}

	b.Reset()
	return false, joined, nil
}

// scanState describes the end of a scanned source fragment.
type scanState struct {
	depth        int
	inTriple     bool
	continuation bool
	err          error
}

func (s scanState) open() bool {
	return s.depth > 0 || s.inTriple || s.continuation
}

// scan tracks brackets, string literals, comments and trailing backslashes.
func scan(src string) scanState {
	var st scanState
	n := len(src)

	for i := 0; i < n; i++ {
		c := src[i]
		switch c {
		case '#':
			for i < n && src[i] != '\n' {
				i++
			}
		case '\'', '"':
			end, triple, ok := skipString(src, i)
			if !ok {
				if triple {
					st.inTriple = true
					return st
				}
				if strings.HasSuffix(src, `\`) {
					st.continuation = true
					return st
				}
				st.err = ErrSyntax
				return st
			}
			i = end
		case '(', '[', '{':
			st.depth++
		case ')', ']', '}':
			st.depth--
			if st.depth < 0 {
				st.err = ErrSyntax
				return st
			}
		case '\\':
			if i == n-1 {
				st.continuation = true
			} else if src[i+1] == '\n' {
				i++
			}
		}
	}
	return st
}

// skipString returns the index of the closing quote of the literal starting
// at i. ok is false when the literal is unterminated.
func skipString(src string, i int) (end int, triple, ok bool) {
	q := src[i]
	delim := string(q)
	if strings.HasPrefix(src[i:], strings.Repeat(delim, 3)) {
		triple = true
		delim = strings.Repeat(delim, 3)
	}

	for j := i + len(delim); j < len(src); j++ {
		switch {
		case src[j] == '\\':
			j++
		case !triple && src[j] == '\n':
			return j, false, false
		case strings.HasPrefix(src[j:], delim):
			return j + len(delim) - 1, triple, true
		}
	}
	return len(src), triple, false
}

// firstCode returns the first line that is neither blank nor a comment.
func firstCode(lines []string) (string, bool) {
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return trimmed, true
		}
	}
	return "", false
}

func isCompound(line string) bool {
	if strings.HasPrefix(line, "@") {
		return true
	}
	word := line
	if i := strings.IndexFunc(line, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}); i >= 0 {
		word = line[:i]
	}
	return compoundKeywords[word]
}
