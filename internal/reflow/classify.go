// Package reflow rewraps paragraphs of prose embedded in source lines so
// they fit a maximum display width. It understands the indentation and
// list-item structure of docstring and comment text and leaves everything
// else alone.
package reflow

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects how the structural indent of a line is recognized.
type Mode uint8

const (
	// Docstring treats leading whitespace as the structural indent.
	Docstring Mode = iota
	// Comment extends the indent over the '#' marker and one following
	// space, so wrapped lines keep the comment prefix.
	Comment
)

// MarkerKind tags the list-marker variant found at the start of a line.
type MarkerKind uint8

const (
	MarkerNone MarkerKind = iota
	// MarkerBullet is "*" or "-".
	MarkerBullet
	// MarkerNumbered is one or two digits, or a single letter, followed
	// by "." or ")".
	MarkerNumbered
)

// Line is the structural classification of a single source line.
type Line struct {
	Indent string // leading whitespace, plus the comment prefix in Comment mode
	Marker string // list marker text including its trailing whitespace, empty if none
	Kind   MarkerKind
	Rest   string // content after indent and marker
}

var reNoQA = regexp.MustCompile(`(?i)#\s*noqa`)

// Excluded reports whether a line carries the suppression comment and must
// never be rewrapped, regardless of its length.
func Excluded(line string) bool {
	return reNoQA.MatchString(line)
}

// Classify splits a line into its structural indent, optional list marker,
// and remaining content. In Comment mode the line must contain a '#'; the
// comment block scanner guarantees this, so a miss is a caller bug.
func Classify(line string, mode Mode) Line {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if mode == Comment {
		if i >= len(line) || line[i] != '#' {
			panic(fmt.Sprintf("reflow: comment line without '#': %q", line))
		}
		i++
		if i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}
	indent := line[:i]
	marker, kind := parseMarker(line[i:])
	return Line{
		Indent: indent,
		Marker: marker,
		Kind:   kind,
		Rest:   line[i+len(marker):],
	}
}

// parseMarker matches a list marker at the start of s. The marker includes
// its trailing whitespace, of which at least one character is required, so
// "42 is the answer" is prose while "42. the answer" is a list item.
func parseMarker(s string) (string, MarkerKind) {
	var head int
	var kind MarkerKind
	switch {
	case len(s) > 0 && (s[0] == '*' || s[0] == '-'):
		head, kind = 1, MarkerBullet
	case len(s) > 0 && s[0] >= '1' && s[0] <= '9':
		head = 1
		if len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
			head = 2
		}
		if len(s) <= head || (s[head] != '.' && s[head] != ')') {
			return "", MarkerNone
		}
		head++
		kind = MarkerNumbered
	case len(s) > 0 && isASCIILetter(s[0]):
		if len(s) < 2 || (s[1] != '.' && s[1] != ')') {
			return "", MarkerNone
		}
		head, kind = 2, MarkerNumbered
	default:
		return "", MarkerNone
	}
	ws := 0
	for head+ws < len(s) && (s[head+ws] == ' ' || s[head+ws] == '\t') {
		ws++
	}
	if ws == 0 {
		return "", MarkerNone
	}
	return s[:head+ws], kind
}

// Terminates reports whether rest, the text of a line with the shared
// paragraph prefix removed, ends the paragraph in progress. Blank lines,
// closing triple quotes (docstring mode), deeper indentation, doctest
// prompts, new list items, and suppressed lines all terminate.
func Terminates(rest string, mode Mode) bool {
	rest = strings.TrimRight(rest, " \t")
	if rest == "" {
		return true
	}
	if mode == Docstring {
		switch strings.TrimSpace(rest) {
		case `"""`, "'''":
			return true
		}
	}
	if rest[0] == ' ' || rest[0] == '\t' {
		return true
	}
	if strings.HasPrefix(rest, ">>>") {
		return true
	}
	if marker, _ := parseMarker(rest); marker != "" {
		return true
	}
	return Excluded(rest)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
