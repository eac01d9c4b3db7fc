package docstring

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"docwrap/internal/reflow"
)

// Process normalizes quotes and rewraps one docstring. lines must cover the
// whole literal, opening and closing markers included. Quote normalization
// runs when forced or when the first line is overlong; a single-line literal
// that still does not fit afterwards is split into marker, content, and
// closing marker on three physical lines before the reflow pass, so the
// wrapper never sees quote characters mixed into prose. Returns the
// processed lines and whether anything changed.
func Process(lines []string, maxLength int, force bool) ([]string, bool, error) {
	out := lines
	modified := false

	if force || runewidth.StringWidth(out[0]) > maxLength {
		normalized, changed, err := EnsureTripleQuotes(out)
		if err != nil {
			return lines, false, err
		}
		out = normalized
		modified = modified || changed
	}

	indent, style, rest, err := parseOpen(out[0])
	if err != nil {
		return lines, false, err
	}

	// Multi-line literals keep their marker placement; only single-line
	// literals that still overflow get their quotes split out.
	if len(out) == 1 && runewidth.StringWidth(out[0]) > maxLength {
		// The overflow branch above has already run, so the delimiter is
		// triple-double here unless the literal is malformed.
		if style.Delim != canonicalDelim {
			return lines, false, formatErrorf("unexpected delimiter %s in %q", style.Marker(), out[0])
		}
		content := strings.TrimRight(rest, " \t")
		if !strings.HasSuffix(content, canonicalDelim) {
			return lines, false, formatErrorf("%s doesn't match %q", style.Marker(), out[0])
		}
		content = content[:len(content)-len(canonicalDelim)]
		out = []string{
			indent + style.Marker(),
			indent + content,
			indent + canonicalDelim,
		}
		modified = true
	}

	wrapped, changed := reflow.Rewrap(out, maxLength, reflow.Docstring)
	return wrapped, modified || changed, nil
}
