package quizpdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const (
	minPreviewWidth    = 20
	optionIndent       = 3
	defaultAnswerWidth = 40
)

// PreviewRequest contains inputs for terminal previews.
type PreviewRequest struct {
	Quiz           Quiz
	Writer         io.Writer
	Width          int
	Theme          Theme
	IncludeAnswers bool
	Options        []PreviewOption
}

// Preview renders a quiz as ANSI text, laid out like the PDF: title,
// categories with numbered questions and choices, then the answer key.
func Preview(req PreviewRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("preview: writer is nil")
	}
	if req.Width < minPreviewWidth {
		return fmt.Errorf("preview: width %d is below %d", req.Width, minPreviewWidth)
	}
	cfg := previewConfig{answerRule: defaultAnswerWidth}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	th := req.Theme
	if th == nil {
		th = DefaultTheme()
	}
	p := &previewer{cfg: cfg, styles: th.Styles(), width: req.Width}
	p.render(req.Quiz, req.IncludeAnswers)
	_, err := io.WriteString(req.Writer, p.b.String())
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

type previewer struct {
	cfg    previewConfig
	styles Styles
	width  int
	b      strings.Builder
}

func styled(st Style, text string) string {
	if st.Prefix == "" || text == "" {
		return text
	}
	return st.Prefix + text + ansiReset
}

func (p *previewer) render(quiz Quiz, answers bool) {
	p.line(styled(p.styles.Title, wordwrap.String(quiz.Title, p.width)))
	if quiz.Instructions != "" {
		p.blank()
		p.line(wordwrap.String(p.segmentsText(MarkdownSegments(quiz.Instructions)), p.width))
	}
	for _, c := range quiz.Categories {
		p.blank()
		p.line(styled(p.styles.Category, " "+c.Name+" "))
		p.blank()
		for i, q := range c.Questions {
			p.question(i+1, q)
		}
	}
	if !answers || len(quiz.Categories) == 0 {
		return
	}
	p.blank()
	p.line(styled(p.styles.AnswerTitle, "Answer Key"))
	for _, c := range quiz.Categories {
		p.blank()
		p.line(styled(p.styles.Category, " "+c.Name+" "))
		for i, q := range c.Questions {
			p.hanging("", q.AnswerKeyEntry(i+1), optionIndent)
		}
	}
}

func (p *previewer) question(n int, q Question) {
	if !q.IsActive() {
		p.line(styled(p.styles.Muted, "(Inactive Question)"))
	}
	number := fmt.Sprintf("%d. ", n)
	if p.cfg.showIDs && q.ID != "" {
		number = fmt.Sprintf("%d. [%s] ", n, q.ID)
	}
	p.hanging(styled(p.styles.Number, number), p.segmentsText(q.Segments()), ansi.PrintableRuneWidth(number))

	if q.Type == TypeImage && q.ImageURL != "" {
		limit := p.width - optionIndent - len("[image] ")
		label := fitURL(q.ImageURL, limit)
		if p.cfg.osc8 {
			label = hyperlink(q.ImageURL, styled(p.styles.Link, label))
		}
		p.line(strings.Repeat(" ", optionIndent) + styled(p.styles.Muted, "[image] ") + label)
	}
	for _, choice := range q.Choices() {
		wrapped := wordwrap.String(choice, p.width-optionIndent)
		p.line(indent.String(styled(p.styles.Option, wrapped), optionIndent))
	}
	if q.HasAnswerLine() && p.cfg.answerRule > 0 {
		rule := p.cfg.answerRule
		if rule > p.width-optionIndent {
			rule = p.width - optionIndent
		}
		p.line(strings.Repeat(" ", optionIndent) + styled(p.styles.Muted, strings.Repeat("_", rule)))
	}
	p.blank()
}

// hanging writes body after lead, indenting continuation lines by hang columns.
func (p *previewer) hanging(lead, body string, hang int) {
	wrapped := wordwrap.String(body, p.width-hang)
	pad := strings.Repeat(" ", hang)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			if lead == "" {
				p.line(line)
				continue
			}
			p.line(lead + line)
			continue
		}
		p.line(pad + line)
	}
}

func (p *previewer) segmentsText(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		if seg.IsLineBreak() {
			b.WriteString(LineBreak)
			continue
		}
		prefix := p.styles.segmentPrefix(seg)
		if prefix == "" {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(prefix)
		b.WriteString(seg.Text)
		b.WriteString(ansiReset)
	}
	return b.String()
}

func (p *previewer) line(s string) {
	p.b.WriteString(strings.TrimRight(s, " "))
	p.b.WriteByte('\n')
}

func (p *previewer) blank() {
	p.b.WriteByte('\n')
}
