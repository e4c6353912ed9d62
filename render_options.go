package quizpdf

// PreviewOption configures preview rendering.
type PreviewOption func(*previewConfig)

type previewConfig struct {
	osc8       bool
	showIDs    bool
	answerRule int
}

// WithOSC8 enables or disables OSC 8 hyperlinks for image URLs.
func WithOSC8(enabled bool) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.osc8 = enabled
	}
}

// WithQuestionIDs prints each question ID next to its number.
func WithQuestionIDs(enabled bool) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.showIDs = enabled
	}
}

// WithAnswerRule sets the width of the blank answer line. Zero hides it.
func WithAnswerRule(width int) PreviewOption {
	return func(cfg *previewConfig) {
		cfg.answerRule = width
	}
}
