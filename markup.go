package quizpdf

import "strings"

// Segment is a run of text sharing one combination of formatting flags.
type Segment struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// LineBreak is the text of the segment emitted between two paragraphs.
const LineBreak = "\n"

// IsLineBreak reports whether s is a paragraph break segment.
func (s Segment) IsLineBreak() bool {
	return s.Text == LineBreak && !s.Bold && !s.Italic && !s.Underline
}

type markerKind uint8

const (
	markerParagraphOpen markerKind = iota
	markerParagraphClose
	markerBoldOpen
	markerBoldClose
	markerItalicOpen
	markerItalicClose
	markerUnderlineOpen
	markerUnderlineClose
)

var markers = [...]struct {
	tag  string
	kind markerKind
}{
	{"<p>", markerParagraphOpen},
	{"</p>", markerParagraphClose},
	{"<strong>", markerBoldOpen},
	{"</strong>", markerBoldClose},
	{"<em>", markerItalicOpen},
	{"</em>", markerItalicClose},
	{"<u>", markerUnderlineOpen},
	{"</u>", markerUnderlineClose},
}

// matchMarker returns the marker starting at rest, if any.
func matchMarker(rest string) (markerKind, int, bool) {
	for _, m := range markers {
		if strings.HasPrefix(rest, m.tag) {
			return m.kind, len(m.tag), true
		}
	}
	return 0, 0, false
}

// markupScanner holds the state of a single Parse call.
type markupScanner struct {
	src   string
	start int
	run   Segment
	out   []Segment
}

// flush emits the pending text ending at end. Flags carry over to the next run.
func (s *markupScanner) flush(end int) {
	if end <= s.start {
		return
	}
	s.run.Text = s.src[s.start:end]
	s.out = append(s.out, s.run)
	s.run.Text = ""
}

func (s *markupScanner) apply(kind markerKind) {
	switch kind {
	case markerParagraphOpen:
		if len(s.out) > 0 {
			s.out = append(s.out, Segment{Text: LineBreak})
		}
	case markerParagraphClose:
	case markerBoldOpen:
		s.run.Bold = true
	case markerBoldClose:
		s.run.Bold = false
	case markerItalicOpen:
		s.run.Italic = true
	case markerItalicClose:
		s.run.Italic = false
	case markerUnderlineOpen:
		s.run.Underline = true
	case markerUnderlineClose:
		s.run.Underline = false
	}
}

// Parse converts inline markup into styled segments.
//
// The recognized markers are <p>, </p>, <strong>, </strong>, <em>, </em>,
// <u> and </u>. Every other '<' is dropped and the rest of the unknown tag is
// kept as literal text. A second or later <p> emits a LineBreak segment with
// no flags. Unclosed markers stay in effect until the end of input. Parse
// never fails; an empty input returns an empty slice.
func Parse(markup string) []Segment {
	s := markupScanner{src: markup}
	i := 0
	for i < len(markup) {
		if markup[i] != '<' {
			i++
			continue
		}
		s.flush(i)
		if kind, n, ok := matchMarker(markup[i:]); ok {
			s.apply(kind)
			i += n
		} else {
			// unknown tag: only the '<' is consumed
			i++
		}
		s.start = i
	}
	s.flush(len(markup))
	return s.out
}

// PlainText joins the text of segs.
func PlainText(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Text)
	}
	return b.String()
}
