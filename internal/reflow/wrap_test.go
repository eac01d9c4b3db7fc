package reflow

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestRewrapExact80CharComment(t *testing.T) {
	input := "# This comment line is exactly 80 characters, so it certainly must be rewrapped."
	if len(input) != 80 {
		t.Fatalf("test input is %d characters, want 80", len(input))
	}

	out, modified := Rewrap([]string{input}, 79, Comment)
	if !modified {
		t.Fatalf("expected the line to be rewrapped")
	}
	want := []string{
		"# This comment line is exactly 80 characters, so it certainly must be",
		"# rewrapped.",
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected wrap result:\n got %q\nwant %q", out, want)
	}
	for _, line := range out {
		if len(line) > 79 {
			t.Fatalf("output line exceeds limit: %q", line)
		}
	}
	if gotText := commentText(out); gotText != commentText([]string{input}) {
		t.Fatalf("combined text changed: %q", gotText)
	}
}

func TestRewrapConformantInputIsNoop(t *testing.T) {
	lines := []string{"    short line", "", "    another one"}
	out, modified := Rewrap(lines, 79, Docstring)
	if modified {
		t.Fatalf("did not expect modification")
	}
	if !reflect.DeepEqual(out, lines) {
		t.Fatalf("lines changed: %q", out)
	}
}

func TestRewrapIsIdempotent(t *testing.T) {
	lines := []string{
		"    The quick brown fox jumps over the lazy dog and keeps on running far away.",
	}
	once, _ := Rewrap(lines, 40, Docstring)
	twice, modified := Rewrap(once, 40, Docstring)
	if modified {
		t.Fatalf("second pass reported modification")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed output:\n once %q\ntwice %q", once, twice)
	}
}

func TestRewrapPreservesTokens(t *testing.T) {
	lines := []string{
		"    one two three four five six seven eight nine ten eleven twelve thirteen go",
		"    fourteen fifteen",
	}
	out, modified := Rewrap(lines, 30, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	if got, want := sortedTokens(out), sortedTokens(lines); !reflect.DeepEqual(got, want) {
		t.Fatalf("token multiset changed:\n got %q\nwant %q", got, want)
	}
	for _, line := range out {
		if len(line) > 30 {
			t.Fatalf("output line exceeds limit: %q", line)
		}
	}
}

func TestRewrapListContinuationIndent(t *testing.T) {
	out, modified := Rewrap([]string{"  * aaa bbb ccc ddd"}, 10, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	want := []string{"  * aaa", "    bbb", "    ccc", "    ddd"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected list wrap:\n got %q\nwant %q", out, want)
	}
}

func TestRewrapNumberedListAlignment(t *testing.T) {
	out, modified := Rewrap([]string{"10. first words of a numbered item that runs long"}, 20, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	if out[0] != "10. first words of a" {
		t.Fatalf("unexpected first line %q", out[0])
	}
	for _, line := range out[1:] {
		if !strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "     ") {
			t.Fatalf("continuation not aligned to marker width: %q", line)
		}
	}
}

func TestRewrapColonMakesOneLineParagraph(t *testing.T) {
	in := []string{"    alpha beta gamma delta:", "    epsilon zeta"}
	out, modified := Rewrap(in, 20, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	want := []string{"    alpha beta gamma", "    delta:", "    epsilon zeta"}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected wrap:\n got %q\nwant %q", out, want)
	}
}

func TestRewrapColonStopsParagraphExtension(t *testing.T) {
	in := []string{
		"    one two three four five",
		"    six seven eight:",
		"    nine ten",
	}
	out, modified := Rewrap(in, 20, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	if got := out[len(out)-1]; got != "    nine ten" {
		t.Fatalf("line after colon terminator was disturbed: %q", got)
	}
	if got, want := sortedTokens(out), sortedTokens(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("token multiset changed:\n got %q\nwant %q", got, want)
	}
}

func TestRewrapNeverSplitsLongTokens(t *testing.T) {
	url := "https://example.com/a/very/long/path/that/keeps/going/and/going"
	in := []string{"see " + url + " for details"}
	out, modified := Rewrap(in, 20, Docstring)
	if !modified {
		t.Fatalf("expected modification")
	}
	found := false
	for _, line := range out {
		if line == url {
			found = true
		}
	}
	if !found {
		t.Fatalf("URL was split or altered: %q", out)
	}
}

func TestRewrapDoesNotBreakAtHyphens(t *testing.T) {
	token := "very-long-hyphenated-token-with-many-parts"
	out, _ := Rewrap([]string{"prefix " + token}, 20, Docstring)
	found := false
	for _, line := range out {
		if strings.Contains(line, token) {
			found = true
		}
	}
	if !found {
		t.Fatalf("hyphenated token was broken: %q", out)
	}
}

func TestRewrapSkipsNoQALines(t *testing.T) {
	in := []string{"# this is a very very very long comment line that is excluded  # noqa: W505"}
	out, modified := Rewrap(in, 20, Comment)
	if modified {
		t.Fatalf("noqa line must never be rewrapped")
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("noqa line changed: %q", out)
	}
}

func TestRewrapLoneOverlongTokenIsNoop(t *testing.T) {
	in := []string{"  https://example.com/one/token/wider/than/any/reasonable/limit"}
	out, modified := Rewrap(in, 20, Docstring)
	if modified {
		t.Fatalf("a paragraph that refills to itself must not count as modified")
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("lines changed: %q", out)
	}
}

func TestRewrapStopsAtClosingTripleQuote(t *testing.T) {
	in := []string{
		"    words that overflow the limit badly",
		`    """`,
	}
	out, _ := Rewrap(in, 20, Docstring)
	if got := out[len(out)-1]; got != `    """` {
		t.Fatalf("closing quote line was merged into the paragraph: %q", got)
	}
}

func commentText(lines []string) string {
	var words []string
	for _, line := range lines {
		for _, w := range strings.Fields(line) {
			if w != "#" {
				words = append(words, w)
			}
		}
	}
	return strings.Join(words, " ")
}

func sortedTokens(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		tokens = append(tokens, strings.Fields(line)...)
	}
	sort.Strings(tokens)
	return tokens
}
