package quizpdf

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	quizValidationCode = "QUIZ_VALIDATION_FAILED"
	quizDecodeCode     = "QUIZ_DECODE_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "quiz validation failed").
		WithTextCode(quizValidationCode)
}

func wrapDecodeError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "quiz decode failed").
		WithTextCode(quizDecodeCode)
}
