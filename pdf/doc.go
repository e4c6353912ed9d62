// Package pdf renders quizzes to PDF.
//
// Question text is split into styled segments by quizpdf.Parse and laid out
// run by run: bold, italic and underline map to the matching font styles.
// Questions are kept together on a page, image questions embed their image,
// and an optional answer key page lists the correct answers in two columns.
//
// Example:
//
//	quiz, err := quizpdf.LoadQuiz(src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = pdf.Render(ctx, pdf.RenderRequest{
//		Quiz:           quiz,
//		Writer:         outFile,
//		Config:         pdf.DefaultConfig(),
//		IncludeAnswers: quiz.AnswersIncluded(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// For Unicode text beyond Latin-1, set RegularFont/BoldFont/ItalicFont in
// Config to TTF files.
package pdf
