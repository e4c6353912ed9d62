package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"pkt.systems/quizpdf"
)

const customFontFamily = "quiz"

// Layout spacing in points.
const (
	tightLineHeight   = 1.2
	titleGap          = 20
	instructionsGap   = 10
	categoryGapTop    = 15
	categoryPadding   = 8
	categoryGapBottom = 10
	statusGap         = 5
	textGap           = 5
	imageGap          = 5
	ruleGapTop        = 20
	ruleGapBottom     = 8
	optionIndent      = 20
	optionGap         = 3
	questionGap       = 15
	answerTitleGap    = 15
	answerHeadingPad  = 5
	answerHeadingGap  = 8
	answerCellPad     = 2
	answerRowGap      = 8
)

// Logger receives diagnostics from the renderer. *glog.BaseLogger and
// glog.Logger satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	Quiz           quizpdf.Quiz
	Writer         io.Writer
	Config         Config
	IncludeAnswers bool
	// Images loads image questions. Nil uses DefaultImageLoader.
	Images ImageLoader
	Logger Logger
}

// Render lays out a printable quiz and writes it as PDF.
func Render(ctx context.Context, req RenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("pdf render: writer is nil")
	}
	doc, err := build(ctx, req)
	if err != nil {
		return err
	}
	if err := doc.Output(req.Writer); err != nil {
		return fmt.Errorf("pdf render: output: %w", err)
	}
	return nil
}

func build(ctx context.Context, req RenderRequest) (*gofpdf.Fpdf, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)
	hasPath := cfg.RegularFont != "" || cfg.BoldFont != "" || cfg.ItalicFont != ""
	if hasPath && (cfg.RegularFont == "" || cfg.BoldFont == "" || cfg.ItalicFont == "") {
		return nil, fmt.Errorf("pdf render: missing font paths")
	}
	if !hasPath && !isCoreFont(cfg.FontFamily) {
		return nil, fmt.Errorf("pdf render: core font family required when font paths are empty")
	}
	if cfg.ImageMaxWidthRatio > 1 || cfg.AnswerColumnRatio > 0.5 {
		return nil, fmt.Errorf("pdf render: width ratios out of range")
	}
	log := req.Logger
	if log == nil {
		log = nopLogger{}
	}
	loader := req.Images
	if loader == nil {
		loader = DefaultImageLoader{}
	}

	doc := gofpdf.New("P", "pt", cfg.PageSize, "")
	doc.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	doc.SetAutoPageBreak(false, cfg.Margin)
	doc.SetCellMargin(0)
	doc.SetCreator(cfg.Creator, true)
	if req.Quiz.Title != "" {
		doc.SetTitle(req.Quiz.Title, true)
	}

	family := cfg.FontFamily
	tr := func(s string) string { return s }
	allowBoldItalic := true
	if hasPath {
		fontDir := filepath.Dir(cfg.RegularFont)
		if filepath.Dir(cfg.BoldFont) != fontDir || filepath.Dir(cfg.ItalicFont) != fontDir {
			return nil, fmt.Errorf("pdf render: font paths must be in the same directory")
		}
		if cfg.BoldItalicFont != "" && filepath.Dir(cfg.BoldItalicFont) != fontDir {
			return nil, fmt.Errorf("pdf render: bold-italic font must be in the same directory as body fonts")
		}
		if isCoreFont(family) {
			family = customFontFamily
		}
		doc.SetFontLocation(fontDir)
		doc.AddUTF8Font(family, "", filepath.Base(cfg.RegularFont))
		doc.AddUTF8Font(family, "B", filepath.Base(cfg.BoldFont))
		doc.AddUTF8Font(family, "I", filepath.Base(cfg.ItalicFont))
		if cfg.BoldItalicFont != "" {
			doc.AddUTF8Font(family, "BI", filepath.Base(cfg.BoldItalicFont))
		} else {
			allowBoldItalic = false
		}
	} else {
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.SetFont(family, "", cfg.QuestionSize)
	doc.SetTextColor(cfg.TextRGB[0], cfg.TextRGB[1], cfg.TextRGB[2])
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: font setup failed: %w", err)
	}

	pageW, pageH := doc.GetPageSize()
	r := &renderer{
		doc:             doc,
		cfg:             cfg,
		family:          family,
		tr:              tr,
		allowBoldItalic: allowBoldItalic,
		log:             log,
		images:          make(map[questionKey]placedImage),
		links:           make(map[questionKey]int),
		top:             cfg.Margin,
		bottom:          pageH - cfg.Margin,
		left:            cfg.Margin,
		width:           pageW - 2*cfg.Margin,
	}
	if r.width < 4*optionIndent {
		return nil, fmt.Errorf("pdf render: page too narrow for content")
	}
	r.loadImages(ctx, req.Quiz, loader)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	answers := req.IncludeAnswers && len(req.Quiz.Categories) > 0
	if answers {
		for ci, c := range req.Quiz.Categories {
			for qi := range c.Questions {
				r.links[questionKey{ci, qi}] = doc.AddLink()
			}
		}
	}

	doc.AddPage()
	r.y = r.top
	r.title(req.Quiz.Title, cfg.TitleSize, titleGap)
	r.instructions(req.Quiz.Instructions)
	for ci, c := range req.Quiz.Categories {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pdf render: %w", err)
		}
		r.category(ci, c)
	}
	if answers {
		r.answerKey(req.Quiz)
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	log.Debug("pdf laid out", "pages", doc.PageCount(), "questions", req.Quiz.QuestionCount(), "answers", answers)
	return doc, nil
}

type questionKey struct {
	category int
	question int
}

type placedImage struct {
	name   string
	typ    string
	width  float64
	height float64
}

type renderer struct {
	doc             *gofpdf.Fpdf
	cfg             Config
	family          string
	tr              func(string) string
	allowBoldItalic bool
	log             Logger
	images          map[questionKey]placedImage
	links           map[questionKey]int

	top, bottom float64
	left, width float64
	y           float64
}

func (r *renderer) loadImages(ctx context.Context, quiz quizpdf.Quiz, loader ImageLoader) {
	byURL := make(map[string]*placedImage)
	maxW := r.width * r.cfg.ImageMaxWidthRatio
	for ci, c := range quiz.Categories {
		for qi, q := range c.Questions {
			if q.Type != quizpdf.TypeImage || q.ImageURL == "" {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			placed, seen := byURL[q.ImageURL]
			if !seen {
				placed = r.registerImage(ctx, loader, q.ImageURL, maxW)
				byURL[q.ImageURL] = placed
			}
			if placed != nil {
				r.images[questionKey{ci, qi}] = *placed
			}
		}
	}
}

func (r *renderer) registerImage(ctx context.Context, loader ImageLoader, location string, maxW float64) *placedImage {
	img, err := loader.LoadImage(ctx, location)
	if err != nil {
		r.log.Warn("image skipped", "url", location, "error", err)
		return nil
	}
	info := r.doc.RegisterImageOptionsReader(location, gofpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if err := r.doc.Error(); err != nil {
		r.log.Warn("image skipped", "url", location, "error", err)
		r.doc.ClearError()
		return nil
	}
	w, h := info.Extent()
	if w <= 0 || h <= 0 {
		r.log.Warn("image skipped", "url", location, "error", "invalid dimensions")
		return nil
	}
	scale := math.Min(1, math.Min(maxW/w, r.cfg.ImageMaxHeight/h))
	r.log.Debug("image loaded", "url", location, "type", img.Type, "width", w, "height", h)
	return &placedImage{name: location, typ: img.Type, width: w * scale, height: h * scale}
}

func (r *renderer) measurer(size float64) measureFunc {
	return func(text, style string) float64 {
		r.doc.SetFont(r.family, style, size)
		return r.doc.GetStringWidth(r.tr(text))
	}
}

func (r *renderer) wrap(segs []quizpdf.Segment, width, size float64) []line {
	return breakLines(segs, width, r.allowBoldItalic, r.measurer(size))
}

// ensure starts a new page unless h more points fit below the cursor.
// Content taller than a page starts at the top and runs on.
func (r *renderer) ensure(h float64) {
	if r.y+h <= r.bottom || r.y <= r.top {
		return
	}
	r.doc.AddPage()
	r.y = r.top
}

func (r *renderer) drawLine(l line, x, y, size, lineH float64, link int) {
	for _, rn := range l.runs {
		r.doc.SetFont(r.family, rn.style, size)
		r.doc.SetXY(x, y)
		r.doc.CellFormat(rn.width, lineH, r.tr(rn.text), "", 0, "L", false, link, "")
		x += rn.width
	}
}

func (r *renderer) drawLines(lines []line, x, size, lineH float64, link int) {
	for _, l := range lines {
		r.ensure(lineH)
		r.drawLine(l, x, r.y, size, lineH, link)
		r.y += lineH
	}
}

func (r *renderer) setTextColor(rgb [3]int) {
	r.doc.SetTextColor(rgb[0], rgb[1], rgb[2])
}

func (r *renderer) title(text string, size, gap float64) {
	if text == "" {
		return
	}
	lineH := size * tightLineHeight
	for _, l := range r.wrap(bold(text), r.width, size) {
		r.ensure(lineH)
		r.drawLine(l, r.left+(r.width-l.width)/2, r.y, size, lineH, 0)
		r.y += lineH
	}
	r.y += gap
}

func (r *renderer) instructions(src string) {
	if src == "" {
		return
	}
	size := r.cfg.OptionSize
	lines := r.wrap(quizpdf.MarkdownSegments(src), r.width, size)
	if len(lines) == 0 {
		return
	}
	r.drawLines(lines, r.left, size, size*r.cfg.LineHeight, 0)
	r.y += instructionsGap
}

// bar draws a filled heading band with lines inset by pad.
func (r *renderer) bar(lines []line, size, pad float64, fill [3]int) {
	lineH := size * tightLineHeight
	h := float64(len(lines))*lineH + 2*pad
	r.doc.SetFillColor(fill[0], fill[1], fill[2])
	r.doc.Rect(r.left, r.y, r.width, h, "F")
	y := r.y + pad
	for _, l := range lines {
		r.drawLine(l, r.left+pad, y, size, lineH, 0)
		y += lineH
	}
	r.y += h
}

func barHeight(lines []line, size, pad float64) float64 {
	n := len(lines)
	if n == 0 {
		n = 1
	}
	return float64(n)*size*tightLineHeight + 2*pad
}

func (r *renderer) category(ci int, c quizpdf.Category) {
	if r.y > r.top {
		r.y += categoryGapTop
	}
	size := r.cfg.CategorySize
	heading := r.wrap(bold(c.Name), r.width-2*categoryPadding, size)
	barH := barHeight(heading, size, categoryPadding)
	blocks := make([]questionBlock, len(c.Questions))
	for qi, q := range c.Questions {
		blocks[qi] = r.layoutQuestion(questionKey{ci, qi}, qi+1, q)
	}
	keep := barH + categoryGapBottom
	if len(blocks) > 0 && keep+blocks[0].height <= r.bottom-r.top {
		keep += blocks[0].height
	}
	r.ensure(keep)
	r.bar(heading, size, categoryPadding, r.cfg.CategoryFillRGB)
	r.y += categoryGapBottom
	for _, b := range blocks {
		r.ensure(b.height)
		r.drawQuestion(b)
	}
}

type questionBlock struct {
	key      questionKey
	inactive bool
	number   string
	numberW  float64
	text     []line
	image    *placedImage
	choices  [][]line
	rule     bool
	height   float64
}

func (r *renderer) layoutQuestion(key questionKey, n int, q quizpdf.Question) questionBlock {
	size := r.cfg.QuestionSize
	b := questionBlock{
		key:      key,
		inactive: !q.IsActive(),
		number:   fmt.Sprintf("%d. ", n),
		rule:     q.HasAnswerLine(),
	}
	b.numberW = r.measurer(size)(b.number, "")
	b.text = r.wrap(q.Segments(), r.width-b.numberW, size)
	if b.inactive {
		b.height += r.cfg.StatusSize*tightLineHeight + statusGap
	}
	b.height += float64(max(1, len(b.text)))*size*r.cfg.LineHeight + textGap
	if img, ok := r.images[key]; ok {
		b.image = &img
		b.height += img.height + imageGap
	}
	if choices := q.Choices(); len(choices) > 0 {
		b.height += 2 * optionGap
		for _, choice := range choices {
			lines := r.wrap(plain(choice), r.width-optionIndent, r.cfg.OptionSize)
			b.choices = append(b.choices, lines)
			b.height += float64(len(lines)) * r.cfg.OptionSize * r.cfg.OptionLineHeight
		}
	}
	if b.rule {
		b.height += ruleGapTop + ruleGapBottom
	}
	b.height += questionGap
	return b
}

func (r *renderer) drawQuestion(b questionBlock) {
	if link, ok := r.links[b.key]; ok {
		r.doc.SetLink(link, r.y, -1)
	}
	if b.inactive {
		size := r.cfg.StatusSize
		r.setTextColor(r.cfg.MutedRGB)
		r.doc.SetFont(r.family, "", size)
		r.doc.SetXY(r.left, r.y)
		r.doc.CellFormat(r.width, size*tightLineHeight, r.tr("(Inactive Question)"), "", 0, "L", false, 0, "")
		r.setTextColor(r.cfg.TextRGB)
		r.y += size*tightLineHeight + statusGap
	}

	size := r.cfg.QuestionSize
	lineH := size * r.cfg.LineHeight
	r.ensure(lineH)
	r.drawLine(line{runs: []run{{text: b.number, width: b.numberW}}}, r.left, r.y, size, lineH, 0)
	if len(b.text) == 0 {
		r.y += lineH
	}
	r.drawLines(b.text, r.left+b.numberW, size, lineH, 0)
	r.y += textGap

	if b.image != nil {
		img := b.image
		r.ensure(img.height)
		x := r.left + (r.width-img.width)/2
		r.doc.ImageOptions(img.name, x, r.y, img.width, img.height, false, gofpdf.ImageOptions{ImageType: img.typ}, 0, "")
		r.y += img.height + imageGap
	}

	if len(b.choices) > 0 {
		r.y += optionGap
		for _, lines := range b.choices {
			r.drawLines(lines, r.left+optionIndent, r.cfg.OptionSize, r.cfg.OptionSize*r.cfg.OptionLineHeight, 0)
		}
		r.y += optionGap
	}

	if b.rule {
		r.y += ruleGapTop
		r.ensure(ruleGapBottom)
		rgb := r.cfg.RuleRGB
		r.doc.SetDrawColor(rgb[0], rgb[1], rgb[2])
		r.doc.SetLineWidth(1)
		r.doc.SetDashPattern([]float64{1, 2}, 0)
		r.doc.Line(r.left, r.y, r.left+r.width, r.y)
		r.doc.SetDashPattern([]float64{}, 0)
		r.y += ruleGapBottom
	}
	r.y += questionGap
}

func (r *renderer) answerKey(quiz quizpdf.Quiz) {
	r.doc.AddPage()
	r.y = r.top
	r.title("Answer Key", r.cfg.AnswerTitleSize, answerTitleGap)

	size := r.cfg.AnswerSize
	lineH := size * r.cfg.LineHeight
	colW := r.width * r.cfg.AnswerColumnRatio
	for ci, c := range quiz.Categories {
		if ci > 0 {
			r.y += categoryGapTop
		}
		entries := make([][]line, len(c.Questions))
		for qi, q := range c.Questions {
			entries[qi] = r.wrap(plain(q.AnswerKeyEntry(qi+1)), colW-2*answerCellPad, size)
		}
		rows := answerRows(entries, lineH)

		headingSize := r.cfg.AnswerHeadingSize
		heading := r.wrap(bold(c.Name), r.width-2*answerHeadingPad, headingSize)
		keep := barHeight(heading, headingSize, answerHeadingPad) + answerHeadingGap
		if len(rows) > 0 {
			keep += rows[0]
		}
		r.ensure(keep)
		r.bar(heading, headingSize, answerHeadingPad, r.cfg.AnswerHeadingFillRGB)
		r.y += answerHeadingGap

		for row, rowH := range rows {
			r.ensure(rowH)
			for col := 0; col < 2; col++ {
				qi := row*2 + col
				if qi >= len(entries) {
					break
				}
				x := r.left + float64(col)*(colW+r.cfg.AnswerColumnGap) + answerCellPad
				y := r.y + answerCellPad
				link := r.links[questionKey{ci, qi}]
				for _, l := range entries[qi] {
					r.drawLine(l, x, y, size, lineH, link)
					y += lineH
				}
			}
			r.y += rowH + answerRowGap
		}
	}
}

// answerRows returns the height of each two-column row of entries.
func answerRows(entries [][]line, lineH float64) []float64 {
	var rows []float64
	for i := 0; i < len(entries); i += 2 {
		n := len(entries[i])
		if i+1 < len(entries) {
			n = max(n, len(entries[i+1]))
		}
		rows = append(rows, float64(max(1, n))*lineH+2*answerCellPad)
	}
	return rows
}
