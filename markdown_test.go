package quizpdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarkdownSegments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want []Segment
	}{
		{
			name: "emphasis and paragraphs",
			src:  "**Bold** and _it_\n\nSecond",
			want: []Segment{
				{Text: "Bold", Bold: true},
				{Text: " and "},
				{Text: "it", Italic: true},
				{Text: LineBreak},
				{Text: "Second"},
			},
		},
		{
			name: "entities are unescaped",
			src:  "Tom & Jerry <3",
			want: []Segment{{Text: "Tom & Jerry <3"}},
		},
		{
			name: "raw underline passes through",
			src:  "pick the <u>odd</u> one",
			want: []Segment{
				{Text: "pick the "},
				{Text: "odd", Underline: true},
				{Text: " one"},
			},
		},
		{
			name: "soft break becomes space",
			src:  "line one\nline two",
			want: []Segment{{Text: "line one line two"}},
		},
		{
			name: "entity references resolve",
			src:  "Tom &amp; Jerry \\*not emphasis\\*",
			want: []Segment{{Text: "Tom & Jerry *not emphasis*"}},
		},
		{
			name: "heading is a bold paragraph",
			src:  "# Rules\n\nAnswer **all** questions.",
			want: []Segment{
				{Text: "Rules", Bold: true},
				{Text: LineBreak},
				{Text: "Answer "},
				{Text: "all", Bold: true},
				{Text: " questions."},
			},
		},
		{
			name: "bullet list",
			src:  "- one\n- two",
			want: []Segment{
				{Text: "• one"},
				{Text: LineBreak},
				{Text: "• two"},
			},
		},
		{
			name: "ordered and nested lists",
			src:  "3. first\n4. second\n   - inner",
			want: []Segment{
				{Text: "3. first"},
				{Text: LineBreak},
				{Text: "4. second"},
				{Text: LineBreak},
				{Text: "  • inner"},
			},
		},
		{
			name: "code span is plain text",
			src:  "Use `x < y` here",
			want: []Segment{{Text: "Use x < y here"}},
		},
		{
			name: "link keeps its label",
			src:  "see [docs](http://x.y) or <http://a.b>",
			want: []Segment{{Text: "see docs or http://a.b"}},
		},
		{
			name: "hard break",
			src:  "line one  \nline two",
			want: []Segment{
				{Text: "line one"},
				{Text: LineBreak},
				{Text: "line two"},
			},
		},
		{
			name: "raw br and unknown inline html",
			src:  "a<br>b <span>c</span>",
			want: []Segment{
				{Text: "a"},
				{Text: LineBreak},
				{Text: "b c"},
			},
		},
		{
			name: "fenced code lines",
			src:  "```\nx := 1\ny := 2\n```",
			want: []Segment{
				{Text: "x := 1"},
				{Text: LineBreak},
				{Text: "y := 2"},
			},
		},
		{
			name: "empty",
			src:  "",
			want: nil,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MarkdownSegments(tc.src)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("MarkdownSegments(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}
