// Package pyspan locates docstrings in Python source without CGO and
// without a full parser. A line-oriented scanner tracks string literals,
// bracket depth, and def/class headers, and yields the line ranges of every
// string literal that is the first statement of the module or of a def or
// class body. That is the docstring definition used by CPython's ast
// module; formatted (f-prefixed) and bytes literals are not docstrings and
// are excluded.
package pyspan

import "strings"

// Span is a half-open [Start, End) range of line indexes covering one
// docstring literal, quote markers included.
type Span struct {
	Start int
	End   int
}

// Find scans Python source lines and returns docstring spans in source
// order. The scanner is deliberately tolerant: syntactically broken input
// yields fewer spans, never a panic.
func Find(lines []string) []Span {
	s := &scanner{lines: lines, expectDoc: true}
	for i := range lines {
		s.scanLine(i)
	}
	return s.spans
}

type scanner struct {
	lines []string
	spans []Span

	depth     int  // open bracket nesting carried across lines
	cont      bool // previous line ended with a backslash continuation
	header    bool // inside a def/class header, waiting for the body colon
	expectDoc bool // the next statement sits in a docstring position

	inStr    bool
	strDelim string
	strDoc   bool
	strStart int
}

func (s *scanner) scanLine(i int) {
	text := s.lines[i]
	j := 0

	if s.inStr {
		pos, ok := findClose(text, 0, s.strDelim)
		if !ok {
			return
		}
		j = pos + len(s.strDelim)
		if s.strDoc && restIsTrivial(text[j:]) {
			s.spans = append(s.spans, Span{Start: s.strStart, End: i + 1})
		}
		s.inStr = false
		s.scanCode(i, text, j, -1, false)
		return
	}

	stmtStart := s.depth == 0 && !s.cont && !s.header
	candidatePos := -1
	candidateDoc := false

	if stmtStart {
		t := strings.TrimLeft(text, " \t")
		if t == "" || t[0] == '#' {
			// Blank lines and comments do not consume the docstring slot.
			return
		}
		offset := len(text) - len(t)
		if plen, formatted, isBytes, ok := stringPrefix(t); ok {
			candidatePos = offset + plen
			candidateDoc = s.expectDoc && !formatted && !isBytes
		} else if hasKeyword(t, "def") || hasKeyword(t, "class") ||
			(hasKeyword(t, "async") && hasKeyword(strings.TrimLeft(t[5:], " \t"), "def")) {
			s.header = true
		}
		s.expectDoc = false
	}

	s.scanCode(i, text, j, candidatePos, candidateDoc)
}

// scanCode walks the code portion of a line starting at offset j, updating
// bracket depth and string state. candidatePos, when >= 0, is the offset of
// a quote opening a statement-leading literal; candidateDoc says whether
// that literal occupies a docstring slot.
func (s *scanner) scanCode(i int, text string, j, candidatePos int, candidateDoc bool) {
	var lastEff byte
	s.cont = false

	for k := j; k < len(text); {
		c := text[k]
		switch {
		case c == ' ' || c == '\t':
			k++
			continue
		case c == '#':
			// Comment runs to end of line.
			k = len(text)
			continue
		case c == '"' || c == '\'':
			delim := string(c)
			if strings.HasPrefix(text[k:], strings.Repeat(delim, 3)) {
				delim = strings.Repeat(delim, 3)
			}
			doc := candidateDoc && k == candidatePos
			pos, ok := findClose(text, k+len(delim), delim)
			if !ok {
				s.inStr = true
				s.strDelim = delim
				s.strDoc = doc
				s.strStart = i
				return
			}
			if doc && restIsTrivial(text[pos+len(delim):]) {
				s.spans = append(s.spans, Span{Start: i, End: i + 1})
			}
			k = pos + len(delim)
			lastEff = c
			continue
		case c == '(' || c == '[' || c == '{':
			s.depth++
		case c == ')' || c == ']' || c == '}':
			if s.depth > 0 {
				s.depth--
			}
		case c == '\\' && k == len(text)-1:
			s.cont = true
		}
		lastEff = c
		k++
	}

	if s.cont || s.depth > 0 {
		return
	}
	if s.header && lastEff != 0 {
		s.header = false
		if lastEff == ':' {
			s.expectDoc = true
		}
	}
}

// findClose returns the offset of the closing delimiter at or after from,
// skipping delimiters preceded by an odd number of backslashes.
func findClose(text string, from int, delim string) (int, bool) {
	for k := from; k+len(delim) <= len(text); k++ {
		if text[k:k+len(delim)] != delim {
			continue
		}
		backslashes := 0
		for p := k - 1; p >= 0 && text[p] == '\\'; p-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return k, true
		}
	}
	return 0, false
}

// stringPrefix matches an optional one- or two-letter literal prefix
// followed by a quote at the start of t.
func stringPrefix(t string) (plen int, formatted, isBytes, ok bool) {
	n := 0
	for n < 2 && n < len(t) {
		switch t[n] {
		case 'r', 'R', 'u', 'U':
		case 'f', 'F':
			formatted = true
		case 'b', 'B':
			isBytes = true
		default:
			goto done
		}
		n++
	}
done:
	if n >= len(t) || (t[n] != '"' && t[n] != '\'') {
		return 0, false, false, false
	}
	return n, formatted, isBytes, true
}

// hasKeyword reports whether t starts with the given keyword followed by a
// non-identifier character.
func hasKeyword(t, kw string) bool {
	if !strings.HasPrefix(t, kw) {
		return false
	}
	if len(t) == len(kw) {
		return true
	}
	c := t[len(kw)]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// restIsTrivial reports whether the text after a closing quote holds only
// whitespace or a trailing comment. Anything else means the literal is part
// of a larger expression and therefore not a docstring.
func restIsTrivial(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest == "" || rest[0] == '#'
}
