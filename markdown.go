package quizpdf

import (
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	bulletPrefix  = "• "
	listIndent    = "  "
	thematicBreak = "* * *"
)

var markdown = goldmark.New()

// MarkdownSegments renders Markdown into segments by walking the goldmark
// AST. Paragraphs, headings, list items and code block lines are separated
// by LineBreak segments. Headings are bold, list items get a bullet or
// their number, and code spans, links and images keep only their text.
// Inline <strong>, <em>, <u> and <br> tags apply; other raw HTML is
// dropped.
func MarkdownSegments(src string) []Segment {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))
	w := &markdownWalker{src: source}
	_ = ast.Walk(doc, w.walk)
	return w.out
}

type markdownWalker struct {
	src                     []byte
	out                     []Segment
	bold, italic, underline int
	// lists holds the next item number per open list; 0 marks a bullet list.
	lists    []int
	itemOpen bool
}

func (w *markdownWalker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Text:
		if entering {
			w.text(unescape(n.Segment.Value(w.src)))
			if n.HardLineBreak() {
				w.lineBreak()
			} else if n.SoftLineBreak() {
				w.text(" ")
			}
		}

	case *ast.String:
		if entering {
			w.text(unescape(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.text(codeSpanText(n, w.src))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		counter := &w.italic
		if n.Level == 2 {
			counter = &w.bold
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case *ast.AutoLink:
		if entering {
			w.text(string(n.URL(w.src)))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		if entering {
			w.rawTag(segmentsText(n.Segments, w.src))
		}

	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.block()
		}

	case *ast.Heading:
		if entering {
			w.block()
			w.bold++
		} else {
			w.bold--
		}

	case *ast.List:
		if entering {
			next := 0
			if n.IsOrdered() {
				next = n.Start
			}
			w.lists = append(w.lists, next)
		} else {
			w.lists = w.lists[:len(w.lists)-1]
		}

	case *ast.ListItem:
		if entering {
			w.block()
			w.text(w.itemPrefix())
			w.itemOpen = true
		} else {
			w.itemOpen = false
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.block()
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				if i > 0 {
					w.lineBreak()
				}
				seg := lines.At(i)
				w.text(strings.TrimRight(string(seg.Value(w.src)), "\r\n"))
			}
			return ast.WalkSkipChildren, nil
		}

	case *ast.HTMLBlock:
		if entering {
			w.block()
			w.htmlBlock(segmentsText(n.Lines(), w.src))
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.block()
			w.text(thematicBreak)
		}
	}
	return ast.WalkContinue, nil
}

func (w *markdownWalker) itemPrefix() string {
	depth := len(w.lists)
	if depth == 0 {
		return bulletPrefix
	}
	indent := strings.Repeat(listIndent, depth-1)
	next := w.lists[depth-1]
	if next == 0 {
		return indent + bulletPrefix
	}
	w.lists[depth-1]++
	return indent + strconv.Itoa(next) + ". "
}

// block starts a new line unless a list item prefix is waiting for its text.
func (w *markdownWalker) block() {
	if w.itemOpen {
		w.itemOpen = false
		return
	}
	w.lineBreak()
}

func (w *markdownWalker) lineBreak() {
	if last := len(w.out) - 1; last >= 0 && !w.out[last].IsLineBreak() {
		w.out = append(w.out, Segment{Text: LineBreak})
	}
}

func (w *markdownWalker) text(s string) {
	w.add(Segment{Text: s, Bold: w.bold > 0, Italic: w.italic > 0, Underline: w.underline > 0})
}

// add appends seg, joining it to the previous segment when the flags match.
func (w *markdownWalker) add(seg Segment) {
	if seg.Text == "" {
		return
	}
	if last := len(w.out) - 1; last >= 0 {
		prev := &w.out[last]
		if !prev.IsLineBreak() && prev.Bold == seg.Bold && prev.Italic == seg.Italic && prev.Underline == seg.Underline {
			prev.Text += seg.Text
			return
		}
	}
	w.out = append(w.out, seg)
}

func (w *markdownWalker) rawTag(raw string) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	switch tag {
	case "<br>", "<br/>", "<br />":
		w.lineBreak()
		return
	}
	kind, n, ok := matchMarker(tag)
	if !ok || n != len(tag) {
		return
	}
	switch kind {
	case markerBoldOpen:
		w.bold++
	case markerBoldClose:
		w.bold = max(0, w.bold-1)
	case markerItalicOpen:
		w.italic++
	case markerItalicClose:
		w.italic = max(0, w.italic-1)
	case markerUnderlineOpen:
		w.underline++
	case markerUnderlineClose:
		w.underline = max(0, w.underline-1)
	}
}

// htmlBlock runs block-level HTML through Parse.
func (w *markdownWalker) htmlBlock(raw string) {
	raw = strings.Join(strings.Fields(raw), " ")
	for _, seg := range Parse(raw) {
		if seg.IsLineBreak() {
			w.lineBreak()
			continue
		}
		seg.Text = html.UnescapeString(seg.Text)
		seg.Bold = seg.Bold || w.bold > 0
		seg.Italic = seg.Italic || w.italic > 0
		seg.Underline = seg.Underline || w.underline > 0
		w.add(seg)
	}
}

func unescape(v []byte) string {
	return string(util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(v))))
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

func segmentsText(segs *text.Segments, src []byte) string {
	var b strings.Builder
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
