// Package charset detects and decodes the text encoding of input files.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is the number of leading bytes inspected before the rest of the
// file is checked against the guess.
const sniffLen = 64 * 1024

// UTF8SIG names UTF-8 with a leading byte order mark, which decoding strips.
const UTF8SIG = "utf-8-sig"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect guesses the encoding of the file at path from its byte order mark
// or content. An ASCII or UTF-8 guess made from the head of the file is only
// kept if the whole file decodes under it; otherwise windows-1252 is
// returned. An empty file yields an empty name.
func Detect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	head = head[:n]

	name := DetectBytes(head)
	if n < sniffLen {
		return name, nil
	}
	switch name {
	case "ascii", "utf-8", UTF8SIG:
	default:
		return name, nil
	}

	cut := incompleteTail(head)
	ascii, valid, err := scanRest(f, head[cut:])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch {
	case name == "ascii" && ascii:
		return name, nil
	case name == "ascii" && valid:
		return "utf-8", nil
	case valid:
		return name, nil
	}
	return "windows-1252", nil
}

// DetectBytes guesses the encoding of content.
func DetectBytes(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	if bytes.HasPrefix(content, utf8BOM) {
		return UTF8SIG
	}

	_, name, certain := htmlcharset.DetermineEncoding(content, "text/plain")
	switch {
	case certain:
		return name
	case isASCII(content):
		return "ascii"
	case validPrefix(content):
		return "utf-8"
	case name == "utf-8":
		// DetermineEncoding only looks at the first kilobyte.
		return "windows-1252"
	}
	return name
}

// scanRest reads r to the end and reports whether it is all ASCII and
// whether carry followed by r is valid UTF-8.
func scanRest(r io.Reader, carry []byte) (ascii, valid bool, err error) {
	ascii, valid = true, true
	pending := append([]byte(nil), carry...)
	buf := make([]byte, sniffLen)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if ascii && !isASCII(chunk) {
				ascii = false
			}
			if valid {
				pending = append(pending, chunk...)
				cut := incompleteTail(pending)
				if !utf8.Valid(pending[:cut]) {
					valid = false
				}
				pending = append(pending[:0], pending[cut:]...)
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return false, false, rerr
		}
	}
	return ascii, valid && len(pending) == 0, nil
}

// incompleteTail returns the offset of a rune cut off at the end of b, or
// len(b) when b ends on a rune boundary.
func incompleteTail(b []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		tail := b[len(b)-i:]
		if utf8.RuneStart(tail[0]) {
			if utf8.FullRune(tail) {
				return len(b)
			}
			return len(b) - i
		}
	}
	return len(b)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// validPrefix reports whether b is valid UTF-8, allowing a rune cut off at the end.
func validPrefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}
	cut := incompleteTail(b)
	return cut < len(b) && utf8.Valid(b[:cut])
}

// NewReader wraps r so that it yields UTF-8 decoded from the named encoding.
// An empty name returns r unchanged.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if name == "" {
		return r, nil
	}
	if name == UTF8SIG {
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
