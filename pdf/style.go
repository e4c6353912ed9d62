package pdf

import (
	"strings"

	"pkt.systems/quizpdf"
)

// styleToFontStyle maps segment flags to a gofpdf style string. Without a
// bold-italic face, bold wins.
func styleToFontStyle(seg quizpdf.Segment, allowBoldItalic bool) string {
	italic := seg.Italic
	if seg.Bold && italic && !allowBoldItalic {
		italic = false
	}
	var b strings.Builder
	if seg.Bold {
		b.WriteByte('B')
	}
	if italic {
		b.WriteByte('I')
	}
	if seg.Underline {
		b.WriteByte('U')
	}
	return b.String()
}

// plain returns text as one unstyled segment list.
func plain(text string) []quizpdf.Segment {
	if text == "" {
		return nil
	}
	return []quizpdf.Segment{{Text: text}}
}

// bold returns text as one bold segment list.
func bold(text string) []quizpdf.Segment {
	if text == "" {
		return nil
	}
	return []quizpdf.Segment{{Text: text, Bold: true}}
}

func isCoreFont(name string) bool {
	switch name {
	case "Courier", "Helvetica", "Times":
		return true
	default:
		return false
	}
}
