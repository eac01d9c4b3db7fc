// Package rewrap applies docstring and comment rewrapping to a whole source
// buffer. It owns the ordering concerns (docstring spans are processed back
// to front so earlier indexes stay valid while line counts change) and the
// grouping of comment lines into blocks; the per-paragraph work is done by
// the reflow and docstring packages.
package rewrap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"docwrap/internal/docstring"
	"docwrap/internal/reflow"
)

// Span is a half-open [Start, End) line range covering one docstring
// literal, quote markers included.
type Span struct {
	Start int
	End   int
}

// SpanProvider locates docstring literals in source lines. Implementations
// must only report plain (non-interpolated) string literals that are the
// first statement of a module, class, or function body.
type SpanProvider interface {
	DocstringSpans(lines []string) ([]Span, error)
}

// SpanProviderFunc adapts a function to the SpanProvider interface.
type SpanProviderFunc func(lines []string) ([]Span, error)

func (f SpanProviderFunc) DocstringSpans(lines []string) ([]Span, error) {
	return f(lines)
}

// Options controls which transformations run on a buffer.
type Options struct {
	MaxLength         int
	ForceTripleQuotes bool
	WrapComments      bool
	WrapDocstrings    bool
}

// ProcessContent runs the full pipeline over source text and returns the
// processed text. When anything changed, the result joins lines with a
// single newline and carries exactly one trailing newline.
func ProcessContent(content string, provider SpanProvider, opts Options) (string, bool, error) {
	lines := splitLines(content)
	processed, modified, err := ProcessLines(lines, provider, opts)
	if err != nil {
		return content, false, err
	}
	if !modified {
		return content, false, nil
	}
	return strings.Join(processed, "\n") + "\n", true, nil
}

// ProcessLines rewraps docstrings and comment blocks in lines and returns
// the resulting lines. The input slice is not modified.
func ProcessLines(lines []string, provider SpanProvider, opts Options) ([]string, bool, error) {
	out := make([]string, len(lines))
	copy(out, lines)
	modified := false

	if opts.WrapDocstrings {
		spans, err := provider.DocstringSpans(out)
		if err != nil {
			return lines, false, err
		}
		// Back to front, so splices never invalidate the spans still to
		// be processed.
		sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })
		for _, sp := range spans {
			if sp.Start < 0 || sp.End <= sp.Start || sp.End > len(out) {
				return lines, false, &docstring.FormatError{
					Detail: fmt.Sprintf("span [%d,%d) outside buffer of %d lines", sp.Start, sp.End, len(out)),
				}
			}
			processed, changed, err := docstring.Process(out[sp.Start:sp.End], opts.MaxLength, opts.ForceTripleQuotes)
			if err != nil {
				return lines, false, err
			}
			if changed {
				out = splice(out, sp.Start, sp.End, processed)
				modified = true
			}
		}
	}

	if opts.WrapComments {
		out, modified = wrapCommentBlocks(out, opts.MaxLength, modified)
	}

	return out, modified, nil
}

// wrapCommentBlocks groups maximal runs of comment lines and rewraps each
// block independently. A leading interpreter directive is never part of a
// block.
func wrapCommentBlocks(out []string, maxLength int, modified bool) ([]string, bool) {
	i := 0
	for i < len(out) {
		if i == 0 && strings.HasPrefix(out[0], "#!") {
			i++
			continue
		}
		if !isCommentLine(out[i]) {
			i++
			continue
		}
		start := i
		for i < len(out) && isCommentLine(out[i]) {
			i++
		}
		block := out[start:i]
		if !anyOverlong(block, maxLength) {
			continue
		}
		wrapped, changed := reflow.Rewrap(block, maxLength, reflow.Comment)
		if changed {
			out = splice(out, start, i, wrapped)
			i = start + len(wrapped)
			modified = true
		}
	}
	return out, modified
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

func anyOverlong(lines []string, maxLength int) bool {
	for _, line := range lines {
		if runewidth.StringWidth(line) > maxLength {
			return true
		}
	}
	return false
}

func splice(lines []string, start, end int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(replacement))
	out = append(out, lines[:start]...)
	out = append(out, replacement...)
	out = append(out, lines[end:]...)
	return out
}

// splitLines mirrors how the processed buffer is written back: lines are
// separated by a single newline and a trailing newline belongs to the file,
// not to the last line. A trailing carriage return is stripped so CRLF
// input does not leak \r into width checks.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
