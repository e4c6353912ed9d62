package pdf

// Config holds PDF rendering settings. Sizes are in points.
type Config struct {
	PageSize       string
	Margin         float64
	FontFamily     string
	RegularFont    string
	BoldFont       string
	ItalicFont     string
	BoldItalicFont string
	Creator        string

	TitleSize         float64
	CategorySize      float64
	QuestionSize      float64
	OptionSize        float64
	StatusSize        float64
	AnswerTitleSize   float64
	AnswerHeadingSize float64
	AnswerSize        float64

	LineHeight       float64
	OptionLineHeight float64

	CategoryFillRGB      [3]int
	AnswerHeadingFillRGB [3]int
	TextRGB              [3]int
	MutedRGB             [3]int
	RuleRGB              [3]int

	ImageMaxHeight     float64
	ImageMaxWidthRatio float64
	AnswerColumnRatio  float64
	AnswerColumnGap    float64
}

// DefaultConfig returns the stock quiz layout: A4, Helvetica, and the
// sizes and colors of the original printable quiz.
func DefaultConfig() Config {
	return Config{
		PageSize:             "A4",
		Margin:               20,
		FontFamily:           "Helvetica",
		Creator:              "quizpdf",
		TitleSize:            18,
		CategorySize:         16,
		QuestionSize:         14,
		OptionSize:           12,
		StatusSize:           10,
		AnswerTitleSize:      16,
		AnswerHeadingSize:    14,
		AnswerSize:           11,
		LineHeight:           1.4,
		OptionLineHeight:     1.3,
		CategoryFillRGB:      [3]int{240, 240, 240},
		AnswerHeadingFillRGB: [3]int{245, 245, 245},
		TextRGB:              [3]int{0, 0, 0},
		MutedRGB:             [3]int{102, 102, 102},
		RuleRGB:              [3]int{153, 153, 153},
		ImageMaxHeight:       240,
		ImageMaxWidthRatio:   0.9,
		AnswerColumnRatio:    0.45,
		AnswerColumnGap:      5,
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.Margin > 0 {
		dst.Margin = src.Margin
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.RegularFont != "" {
		dst.RegularFont = src.RegularFont
	}
	if src.BoldFont != "" {
		dst.BoldFont = src.BoldFont
	}
	if src.ItalicFont != "" {
		dst.ItalicFont = src.ItalicFont
	}
	if src.BoldItalicFont != "" {
		dst.BoldItalicFont = src.BoldItalicFont
	}
	if src.Creator != "" {
		dst.Creator = src.Creator
	}
	setPositive(&dst.TitleSize, src.TitleSize)
	setPositive(&dst.CategorySize, src.CategorySize)
	setPositive(&dst.QuestionSize, src.QuestionSize)
	setPositive(&dst.OptionSize, src.OptionSize)
	setPositive(&dst.StatusSize, src.StatusSize)
	setPositive(&dst.AnswerTitleSize, src.AnswerTitleSize)
	setPositive(&dst.AnswerHeadingSize, src.AnswerHeadingSize)
	setPositive(&dst.AnswerSize, src.AnswerSize)
	setPositive(&dst.LineHeight, src.LineHeight)
	setPositive(&dst.OptionLineHeight, src.OptionLineHeight)
	setPositive(&dst.ImageMaxHeight, src.ImageMaxHeight)
	setPositive(&dst.ImageMaxWidthRatio, src.ImageMaxWidthRatio)
	setPositive(&dst.AnswerColumnRatio, src.AnswerColumnRatio)
	setPositive(&dst.AnswerColumnGap, src.AnswerColumnGap)
	if src.CategoryFillRGB != [3]int{} {
		dst.CategoryFillRGB = src.CategoryFillRGB
	}
	if src.AnswerHeadingFillRGB != [3]int{} {
		dst.AnswerHeadingFillRGB = src.AnswerHeadingFillRGB
	}
	if src.TextRGB != [3]int{} {
		dst.TextRGB = src.TextRGB
	}
	if src.MutedRGB != [3]int{} {
		dst.MutedRGB = src.MutedRGB
	}
	if src.RuleRGB != [3]int{} {
		dst.RuleRGB = src.RuleRGB
	}
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
