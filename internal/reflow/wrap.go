package reflow

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Rewrap reflows every paragraph that contains a line wider than maxLength
// and returns the resulting lines. Lines already within the limit and lines
// matching the suppression comment are left untouched. The input slice is
// not modified; the second result reports whether any line actually
// changed.
//
// A paragraph starts at the first overlong line and extends over following
// lines that share the same prefix (indent padded to the list-marker width)
// until a terminator. A line whose content ends with ':' is included and
// closes the paragraph, since it introduces an indented block. The collected
// words are refilled greedily: tokens are never split and hyphens are never
// used as break points, so a single token wider than the limit stays on a
// line of its own.
func Rewrap(lines []string, maxLength int, mode Mode) ([]string, bool) {
	out := make([]string, len(lines))
	copy(out, lines)
	modified := false

	for i := 0; i < len(out); {
		line := out[i]
		if runewidth.StringWidth(line) <= maxLength || Excluded(line) {
			i++
			continue
		}

		cls := Classify(line, mode)
		prefix := cls.Indent + strings.Repeat(" ", len(cls.Marker))

		start, end := i, i+1
		if !endsWithColon(line) {
			for end < len(out) {
				if !strings.HasPrefix(out[end], prefix) {
					break
				}
				rest := out[end][len(prefix):]
				if Terminates(rest, mode) {
					break
				}
				if endsWithColon(rest) {
					end++
					break
				}
				end++
			}
		}

		var words []string
		for _, pl := range out[start:end] {
			words = append(words, strings.Fields(pl[len(prefix):])...)
		}

		wrapped := fill(words, maxLength, cls.Indent+cls.Marker, prefix)

		// A paragraph that refills to its original lines (a lone token
		// wider than the limit) is not a modification.
		if equalLines(wrapped, out[start:end]) {
			i = end
			continue
		}

		next := make([]string, 0, len(out)-(end-start)+len(wrapped))
		next = append(next, out[:start]...)
		next = append(next, wrapped...)
		next = append(next, out[end:]...)
		out = next
		modified = true
		i = start + len(wrapped)
	}

	return out, modified
}

// fill distributes words over lines of at most maxLength columns. The first
// line starts with first (indent plus list marker), continuation lines with
// cont (indent padded to the marker width). A word is always placed, even
// when it alone exceeds the limit.
func fill(words []string, maxLength int, first, cont string) []string {
	if len(words) == 0 {
		return nil
	}
	var out []string
	cur := first
	curWidth := runewidth.StringWidth(first)
	count := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		if count > 0 && curWidth+1+ww > maxLength {
			out = append(out, cur)
			cur = cont
			curWidth = runewidth.StringWidth(cont)
			count = 0
		}
		if count > 0 {
			cur += " "
			curWidth++
		}
		cur += w
		curWidth += ww
		count++
	}
	return append(out, cur)
}

func endsWithColon(s string) bool {
	return strings.HasSuffix(strings.TrimRight(s, " \t"), ":")
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
