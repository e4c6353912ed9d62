package pdf

import (
	"testing"

	"pkt.systems/quizpdf"
)

func TestStyleToFontStyle(t *testing.T) {
	cases := []struct {
		seg     quizpdf.Segment
		allowBI bool
		want    string
	}{
		{quizpdf.Segment{Text: "x"}, true, ""},
		{quizpdf.Segment{Text: "x", Bold: true}, true, "B"},
		{quizpdf.Segment{Text: "x", Italic: true, Underline: true}, true, "IU"},
		{quizpdf.Segment{Text: "x", Bold: true, Italic: true}, true, "BI"},
		{quizpdf.Segment{Text: "x", Bold: true, Italic: true}, false, "B"},
		{quizpdf.Segment{Text: "x", Bold: true, Italic: true, Underline: true}, false, "BU"},
	}
	for _, tc := range cases {
		if got := styleToFontStyle(tc.seg, tc.allowBI); got != tc.want {
			t.Fatalf("styleToFontStyle(%+v, %v) = %q, want %q", tc.seg, tc.allowBI, got, tc.want)
		}
	}
}

func TestIsCoreFont(t *testing.T) {
	if !isCoreFont("Helvetica") || !isCoreFont("Times") {
		t.Fatalf("expected core fonts")
	}
	if isCoreFont("ZapfDingbats") || isCoreFont("Hack") {
		t.Fatalf("unexpected core font")
	}
}
