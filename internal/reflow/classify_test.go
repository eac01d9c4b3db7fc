package reflow

import "testing"

func TestClassifyDocstringIndent(t *testing.T) {
	got := Classify("    some words here", Docstring)
	if got.Indent != "    " {
		t.Fatalf("expected four-space indent, got %q", got.Indent)
	}
	if got.Kind != MarkerNone || got.Marker != "" {
		t.Fatalf("expected no marker, got kind=%d marker=%q", got.Kind, got.Marker)
	}
	if got.Rest != "some words here" {
		t.Fatalf("unexpected rest %q", got.Rest)
	}
}

func TestClassifyCommentIndent(t *testing.T) {
	got := Classify("  # some words", Comment)
	if got.Indent != "  # " {
		t.Fatalf("expected indent to cover comment prefix, got %q", got.Indent)
	}
	if got.Rest != "some words" {
		t.Fatalf("unexpected rest %q", got.Rest)
	}
}

func TestClassifyCommentWithoutHashPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for comment line without '#'")
		}
	}()
	Classify("    plain text", Comment)
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		line   string
		marker string
		kind   MarkerKind
	}{
		{"* bullet item", "* ", MarkerBullet},
		{"- bullet item", "- ", MarkerBullet},
		{"-no space", "", MarkerNone},
		{"1. numbered", "1. ", MarkerNumbered},
		{"42) numbered", "42) ", MarkerNumbered},
		{"42 is just a number, not a numbered list.", "", MarkerNone},
		{"a. lettered", "a. ", MarkerNumbered},
		{"B) lettered", "B) ", MarkerNumbered},
		{"ab. two letters is not a marker", "", MarkerNone},
		{"0. zero cannot start a number", "", MarkerNone},
		{"123. three digits is not a marker", "", MarkerNone},
		{"1.no trailing space", "", MarkerNone},
		{"2.  wide marker", "2.  ", MarkerNumbered},
		{"plain words", "", MarkerNone},
	}
	for _, tt := range tests {
		marker, kind := parseMarker(tt.line)
		if marker != tt.marker || kind != tt.kind {
			t.Errorf("parseMarker(%q) = %q, %d; want %q, %d",
				tt.line, marker, kind, tt.marker, tt.kind)
		}
	}
}

func TestClassifyMarkerWidth(t *testing.T) {
	got := Classify("  * item text", Docstring)
	if got.Marker != "* " || got.Kind != MarkerBullet {
		t.Fatalf("expected bullet marker, got kind=%d marker=%q", got.Kind, got.Marker)
	}
	if got.Rest != "item text" {
		t.Fatalf("unexpected rest %q", got.Rest)
	}
}

func TestTerminates(t *testing.T) {
	tests := []struct {
		rest string
		mode Mode
		want bool
	}{
		{"", Docstring, true},
		{"   ", Docstring, true},
		{`"""`, Docstring, true},
		{"'''", Docstring, true},
		{`"""`, Comment, false},
		{"  deeper indent", Docstring, true},
		{">>> print(x)", Docstring, true},
		{"* new item", Docstring, true},
		{"3) new item", Docstring, true},
		{"continuation words", Docstring, false},
		{"has a # noqa marker", Docstring, true},
		{"has a # NOQA marker", Docstring, true},
	}
	for _, tt := range tests {
		if got := Terminates(tt.rest, tt.mode); got != tt.want {
			t.Errorf("Terminates(%q, %d) = %v, want %v", tt.rest, tt.mode, got, tt.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	if !Excluded("x = 1  # noqa: E501") {
		t.Fatalf("expected noqa line to be excluded")
	}
	if !Excluded("x = 1  #noqa") {
		t.Fatalf("expected compact noqa line to be excluded")
	}
	if Excluded("x = 1  # not quite") {
		t.Fatalf("did not expect plain comment to be excluded")
	}
}
