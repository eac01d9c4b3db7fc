// Package docstring rewrites a single docstring literal: it normalizes the
// quote markers toward triple-double quotes and rewraps overlong prose
// lines. The caller supplies the literal's source lines, including indents
// and quotes; line ranges come from a span provider, never from this
// package.
package docstring

import (
	"fmt"
	"strings"
)

// canonicalDelim is the quote style every docstring is normalized toward.
const canonicalDelim = `"""`

// Style describes the opening marker of a string literal: an optional raw
// prefix and one of the four delimiter classes.
type Style struct {
	Raw   bool
	Delim string // `"""`, `'''`, `"`, or `'`
}

// Marker returns the literal opening-marker text.
func (s Style) Marker() string {
	if s.Raw {
		return "r" + s.Delim
	}
	return s.Delim
}

// Canonical reports whether the style already uses triple-double quotes.
// The raw prefix is preserved by normalization, so it does not matter here.
func (s Style) Canonical() bool {
	return s.Delim == canonicalDelim
}

// FormatError reports a docstring whose quoting does not match what the
// normalizer expects. It is never patched around: the offending text is
// named and the file is reported as failed.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "invalid docstring format: " + e.Detail
}

func formatErrorf(format string, args ...any) error {
	return &FormatError{Detail: fmt.Sprintf(format, args...)}
}

// parseOpen splits the first line of a docstring into its indent, opening
// quote style, and the content following the marker.
func parseOpen(line string) (indent string, style Style, rest string, err error) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	indent = line[:i]
	s := line[i:]
	if strings.HasPrefix(s, "r") {
		style.Raw = true
		s = s[1:]
	}
	switch {
	case strings.HasPrefix(s, `"""`):
		style.Delim = `"""`
	case strings.HasPrefix(s, "'''"):
		style.Delim = "'''"
	case strings.HasPrefix(s, `"`):
		style.Delim = `"`
	case strings.HasPrefix(s, "'"):
		style.Delim = "'"
	default:
		return "", Style{}, "", formatErrorf("%q", line)
	}
	return indent, style, s[len(style.Delim):], nil
}

// EnsureTripleQuotes rewrites the opening and closing markers of the
// docstring to triple-double quotes, preserving a raw prefix. The last line
// must end with the original closing delimiter; anything else (such as a
// trailing comment after the closing quote) is a format error rather than
// something to guess at. Returns the rewritten lines and whether anything
// changed.
func EnsureTripleQuotes(lines []string) ([]string, bool, error) {
	indent, style, rest, err := parseOpen(lines[0])
	if err != nil {
		return lines, false, err
	}
	if style.Canonical() {
		return lines, false, nil
	}

	out := make([]string, len(lines))
	copy(out, lines)

	endQuote := style.Delim
	if !strings.HasSuffix(strings.TrimRight(out[len(out)-1], " \t"), endQuote) {
		return lines, false, formatErrorf("%s doesn't match %q", style.Marker(), out[len(out)-1])
	}

	raw := ""
	if style.Raw {
		raw = "r"
	}
	out[0] = indent + raw + canonicalDelim + rest
	// For a one-line literal the closing rewrite reads the line written
	// just above, which is what keeps the inner content intact.
	last := strings.TrimRight(out[len(out)-1], " \t")
	out[len(out)-1] = last[:len(last)-len(endQuote)] + canonicalDelim
	return out, true, nil
}
