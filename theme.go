package quizpdf

import (
	"sort"
	"strings"
)

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiFaint     = "\x1b[2m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
	ansiReverse   = "\x1b[7m"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the semantic styles used by the preview renderer.
type Styles struct {
	Title       Style
	Category    Style
	Number      Style
	Text        Style
	Bold        Style
	Italic      Style
	Underline   Style
	Muted       Style
	Option      Style
	AnswerTitle Style
	Link        Style
}

// Theme provides named styles for quiz previews.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	return Style{Prefix: strings.Join(prefixes, "")}
}

func fg256(n string) string {
	return "\x1b[38;5;" + n + "m"
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: Styles{
		Title:       style(ansiBold, fg256("81")),
		Category:    style(ansiBold, ansiReverse),
		Number:      style(ansiBold),
		Bold:        style(ansiBold),
		Italic:      style(ansiItalic),
		Underline:   style(ansiUnderline),
		Muted:       style(ansiFaint, fg256("245")),
		Option:      style(fg256("252")),
		AnswerTitle: style(ansiBold, fg256("214")),
		Link:        style(ansiUnderline, fg256("75")),
	}},
	"mono": theme{name: "mono", styles: Styles{
		Title:       style(ansiBold),
		Category:    style(ansiBold, ansiUnderline),
		Number:      style(ansiBold),
		Bold:        style(ansiBold),
		Italic:      style(ansiItalic),
		Underline:   style(ansiUnderline),
		Muted:       style(ansiFaint),
		AnswerTitle: style(ansiBold),
		Link:        style(ansiUnderline),
	}},
	"boring": theme{name: "boring"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	t, ok := builtinThemes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// segmentPrefix combines the styles matching the flags of seg.
func (s Styles) segmentPrefix(seg Segment) string {
	var b strings.Builder
	b.WriteString(s.Text.Prefix)
	if seg.Bold {
		b.WriteString(s.Bold.Prefix)
	}
	if seg.Italic {
		b.WriteString(s.Italic.Prefix)
	}
	if seg.Underline {
		b.WriteString(s.Underline.Prefix)
	}
	return b.String()
}
