package quizpdf

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports a quiz source that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports a quiz source that looks like binary data.
	ErrBinaryInput = errors.New("binary input detected")
	// ErrEmptyQuiz reports a quiz source without any content.
	ErrEmptyQuiz = errors.New("empty quiz source")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateSource rejects quiz sources that are not text.
func ValidateSource(src []byte) error {
	if len(src) == 0 {
		return ErrEmptyQuiz
	}
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	control := 0
	for _, r := range string(src) {
		if r == 0 {
			return ErrBinaryInput
		}
		if isControlRune(r) {
			control++
		}
	}
	if len(src) >= minBinarySample && control*100 >= len(src)*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return r < 0x20 || r == 0x7F
}
