package pdf

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pkt.systems/quizpdf"
)

// measureFunc returns the width of text drawn in the given font style.
type measureFunc func(text, style string) float64

type run struct {
	text  string
	style string
	width float64
}

type line struct {
	runs  []run
	width float64
}

type lineBreaker struct {
	max     float64
	measure measureFunc
	lines   []line
	cur     line
	space   *run
}

// breakLines wraps segments greedily into lines no wider than maxWidth.
// Segment text containing '\n' (including paragraph breaks) forces a new
// line. Words wider than a full line are split between runes.
func breakLines(segs []quizpdf.Segment, maxWidth float64, allowBoldItalic bool, measure measureFunc) []line {
	b := &lineBreaker{max: maxWidth, measure: measure}
	for _, seg := range segs {
		style := styleToFontStyle(seg, allowBoldItalic)
		for i, part := range strings.Split(seg.Text, "\n") {
			if i > 0 {
				b.newline()
			}
			b.addText(part, style)
		}
	}
	if len(b.cur.runs) > 0 {
		b.newline()
	}
	return b.lines
}

func (b *lineBreaker) addText(text, style string) {
	for len(text) > 0 {
		r, _ := utf8.DecodeRuneInString(text)
		isSpace := unicode.IsSpace(r)
		end := strings.IndexFunc(text, func(r rune) bool { return unicode.IsSpace(r) != isSpace })
		if end < 0 {
			end = len(text)
		}
		token := text[:end]
		text = text[end:]
		if isSpace {
			b.addSpace(token, style)
		} else {
			b.addWord(token, style)
		}
	}
}

func (b *lineBreaker) addSpace(text, style string) {
	if len(b.cur.runs) == 0 && b.space == nil {
		return
	}
	w := b.measure(text, style)
	if b.space != nil {
		b.space.text += text
		b.space.width += w
		return
	}
	b.space = &run{text: text, style: style, width: w}
}

func (b *lineBreaker) addWord(text, style string) {
	w := b.measure(text, style)
	spaceW := 0.0
	if b.space != nil {
		spaceW = b.space.width
	}
	if len(b.cur.runs) > 0 && b.cur.width+spaceW+w > b.max {
		b.newline()
		spaceW = 0
	}
	if len(b.cur.runs) == 0 && w > b.max {
		b.addLongWord(text, style)
		return
	}
	if b.space != nil {
		b.append(*b.space)
		b.space = nil
	}
	b.append(run{text: text, style: style, width: w})
}

// addLongWord splits a word that cannot fit on an empty line.
func (b *lineBreaker) addLongWord(text, style string) {
	for text != "" {
		n := 0
		width := 0.0
		for n < len(text) {
			_, size := utf8.DecodeRuneInString(text[n:])
			w := b.measure(text[:n+size], style)
			if w > b.max && n > 0 {
				break
			}
			n += size
			width = w
		}
		b.space = nil
		b.append(run{text: text[:n], style: style, width: width})
		text = text[n:]
		if text != "" {
			b.newline()
		}
	}
}

func (b *lineBreaker) append(r run) {
	b.cur.width += r.width
	if last := len(b.cur.runs) - 1; last >= 0 && b.cur.runs[last].style == r.style {
		b.cur.runs[last].text += r.text
		b.cur.runs[last].width += r.width
		return
	}
	b.cur.runs = append(b.cur.runs, r)
}

func (b *lineBreaker) newline() {
	b.lines = append(b.lines, b.cur)
	b.cur = line{}
	b.space = nil
}

// text returns the concatenated run text of l.
func (l line) text() string {
	var sb strings.Builder
	for _, r := range l.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}
