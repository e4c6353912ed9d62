package quizpdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuestionSegmentsFormat(t *testing.T) {
	t.Parallel()
	html := Question{Text: "<em>x</em>", Type: TypeText}
	if diff := cmp.Diff([]Segment{{Text: "x", Italic: true}}, html.Segments()); diff != "" {
		t.Fatalf("html segments mismatch (-want +got):\n%s", diff)
	}
	md := Question{Text: "*x*", Type: TypeText, Format: FormatMarkdown}
	if diff := cmp.Diff([]Segment{{Text: "x", Italic: true}}, md.Segments()); diff != "" {
		t.Fatalf("markdown segments mismatch (-want +got):\n%s", diff)
	}
}

func TestQuestionIsActive(t *testing.T) {
	t.Parallel()
	yes, no := true, false
	if !(Question{}).IsActive() {
		t.Fatalf("expected unset to be active")
	}
	if !(Question{Active: &yes}).IsActive() {
		t.Fatalf("expected explicit true to be active")
	}
	if (Question{Active: &no}).IsActive() {
		t.Fatalf("expected explicit false to be inactive")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	no := false
	a := Quiz{
		Title:          "First",
		IncludeAnswers: &no,
		Categories:     []Category{{Name: "A"}},
	}
	b := Quiz{
		Title:        "Second",
		Instructions: "Read carefully.",
		Categories:   []Category{{Name: "B"}, {Name: "C"}},
	}
	merged := Merge(a, b)
	if merged.Title != "First" {
		t.Fatalf("unexpected title %q", merged.Title)
	}
	if merged.Instructions != "Read carefully." {
		t.Fatalf("unexpected instructions %q", merged.Instructions)
	}
	if len(merged.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(merged.Categories))
	}
	if !merged.AnswersIncluded() {
		t.Fatalf("expected answers since second quiz leaves them unset")
	}
	if Merge(a).AnswersIncluded() {
		t.Fatalf("expected single quiz to keep its answer setting")
	}
	if got := Merge(); got.Title != "" || got.Categories != nil {
		t.Fatalf("expected empty quiz, got %+v", got)
	}
}

func TestQuizValidateAcceptsMinimal(t *testing.T) {
	t.Parallel()
	quiz := Quiz{
		Title: "T",
		Categories: []Category{{
			Name: "C",
			Questions: []Question{
				{Text: "q", Type: TypeImage, ImageURL: "https://example.com/a.png"},
				{Text: "r", Type: TypeImage, ImageURL: "images/b.webp"},
				{Text: "s", Type: TypeTrueFalse, Format: FormatHTML},
			},
		}},
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuestionFormatIgnoresCase(t *testing.T) {
	t.Parallel()
	q := Question{Text: "*x*", Type: TypeText, Format: "Markdown"}
	if err := q.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]Segment{{Text: "x", Italic: true}}, q.Segments()); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if err := (Question{Text: "x", Type: TypeText, Format: "HTML"}).Validate(); err != nil {
		t.Fatalf("unexpected error for HTML: %v", err)
	}
	if err := (Question{Text: "x", Type: TypeText, Format: "rtf"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestOptionLabel(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "a", 1: "b", 25: "z", 26: "aa", 27: "ab", 52: "ba", -1: ""}
	for i, want := range cases {
		if got := OptionLabel(i); got != want {
			t.Fatalf("OptionLabel(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestQuestionChoicesAndAnswerKey(t *testing.T) {
	t.Parallel()
	no := false
	mc := Question{Type: TypeMultiChoice, Options: []string{"Red", "Blue"}, CorrectAnswer: "b", Active: &no}
	if diff := cmp.Diff([]string{"a. Red", "b. Blue"}, mc.Choices()); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if got := mc.AnswerKeyEntry(3); got != "3. b (Inactive)" {
		t.Fatalf("unexpected answer entry %q", got)
	}
	tf := Question{Type: TypeTrueFalse, CorrectAnswer: "True"}
	if diff := cmp.Diff([]string{"a. True", "b. False"}, tf.Choices()); diff != "" {
		t.Fatalf("truefalse mismatch (-want +got):\n%s", diff)
	}
	if tf.HasAnswerLine() || !(Question{Type: TypeImage}).HasAnswerLine() {
		t.Fatalf("unexpected answer line flags")
	}
	if (Question{Type: TypeText}).Choices() != nil {
		t.Fatalf("expected no choices for text questions")
	}
}
