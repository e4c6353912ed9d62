package pdf

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"pkt.systems/quizpdf"
)

// monospace measures one point per rune, two when bold.
func monospace(text, style string) float64 {
	w := float64(utf8.RuneCountInString(text))
	if strings.Contains(style, "B") {
		w *= 2
	}
	return w
}

func lineTexts(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text()
	}
	return out
}

func TestBreakLines(t *testing.T) {
	cases := []struct {
		name  string
		segs  []quizpdf.Segment
		width float64
		want  []string
	}{
		{"fits", []quizpdf.Segment{{Text: "alpha beta"}}, 20, []string{"alpha beta"}},
		{"wraps", []quizpdf.Segment{{Text: "alpha beta gamma"}}, 11, []string{"alpha beta", "gamma"}},
		{"leading space dropped", []quizpdf.Segment{{Text: "   x"}}, 10, []string{"x"}},
		{"long word split", []quizpdf.Segment{{Text: "abcdefghij"}}, 4, []string{"abcd", "efgh", "ij"}},
		{"paragraphs", quizpdf.Parse("<p>a</p><p>b</p>"), 10, []string{"a", "b"}},
		{"inner newline", []quizpdf.Segment{{Text: "a\nb"}}, 10, []string{"a", "b"}},
		{"bold widens", []quizpdf.Segment{{Text: "ab "}, {Text: "cdef", Bold: true}}, 8, []string{"ab", "cdef"}},
		{"empty", nil, 10, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := lineTexts(breakLines(tc.segs, tc.width, true, monospace))
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBreakLinesMergesRuns(t *testing.T) {
	segs := quizpdf.Parse("Hello <strong>big</strong> <strong>world</strong>")
	lines := breakLines(segs, 100, true, monospace)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	want := []run{
		{text: "Hello ", style: "", width: 6},
		{text: "big", style: "B", width: 6},
		{text: " ", style: "", width: 1},
		{text: "world", style: "B", width: 10},
	}
	if diff := cmp.Diff(want, lines[0].runs, cmp.AllowUnexported(run{})); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if lines[0].width != 23 {
		t.Fatalf("unexpected line width %v", lines[0].width)
	}
}

func TestBreakLinesRespectsWidth(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for _, l := range breakLines([]quizpdf.Segment{{Text: text, Italic: true}}, 30, true, monospace) {
		if l.width > 30 {
			t.Fatalf("line %q exceeds width: %v", l.text(), l.width)
		}
		if strings.HasPrefix(l.text(), " ") || strings.HasSuffix(l.text(), " ") {
			t.Fatalf("line %q has edge spaces", l.text())
		}
	}
}
