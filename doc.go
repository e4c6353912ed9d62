// Package quizpdf turns quiz documents into printable PDFs and terminal
// previews.
//
// Question text is a small inline HTML subset. Parse splits it into styled
// Segments: <strong>, <em> and <u> toggle the formatting flags and <p>
// starts a new paragraph (a LineBreak segment). Any other '<' is dropped
// while the rest of the tag stays as text. The pdf subpackage lays the
// segments out with per-run font styles; Preview draws them with ANSI
// themes.
//
// Quizzes load from JSON or from front matter (YAML, TOML or JSON) whose
// Markdown body becomes the instructions:
//
//	quiz, err := quizpdf.LoadQuiz(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = quizpdf.Preview(quizpdf.PreviewRequest{
//		Quiz:           quiz,
//		Writer:         os.Stdout,
//		Width:          80,
//		Theme:          quizpdf.DefaultTheme(),
//		IncludeAnswers: quiz.AnswersIncluded(),
//	})
//
// Parse never fails. Unbalanced or overlapping tags only toggle flags, and
// the text between markers is emitted as-is.
package quizpdf
