package quizpdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"
)

// maxSourceBytes bounds how much of a quiz source is read.
const maxSourceBytes = 16 << 20

// LoadQuiz reads, decodes and validates a quiz from r.
func LoadQuiz(r io.Reader) (Quiz, error) {
	if r == nil {
		return Quiz{}, fmt.Errorf("load quiz: reader is nil")
	}
	src, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	if len(src) > maxSourceBytes {
		return Quiz{}, fmt.Errorf("load quiz: source exceeds %d bytes", maxSourceBytes)
	}
	return DecodeQuiz(src)
}

// DecodeQuiz decodes and validates a quiz document.
//
// A document starting with '{' is JSON. Anything else is read as front
// matter (YAML between ---, TOML between +++ or JSON between ;;;) holding the
// quiz, and the Markdown body after it becomes the instructions. Questions
// without an ID are assigned a random UUID.
func DecodeQuiz(src []byte) (Quiz, error) {
	if err := ValidateSource(src); err != nil {
		return Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	var quiz Quiz
	trimmed := bytes.TrimSpace(src)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &quiz); err != nil {
			return Quiz{}, wrapDecodeError(fmt.Errorf("decode quiz json: %w", err))
		}
	} else {
		body, err := frontmatter.Parse(bytes.NewReader(src), &quiz)
		if err != nil {
			return Quiz{}, wrapDecodeError(fmt.Errorf("decode quiz front matter: %w", err))
		}
		if quiz.Instructions == "" {
			quiz.Instructions = string(bytes.TrimSpace(body))
		}
	}
	assignIDs(&quiz)
	if err := quiz.Validate(); err != nil {
		return Quiz{}, err
	}
	return quiz, nil
}

func assignIDs(quiz *Quiz) {
	for ci := range quiz.Categories {
		questions := quiz.Categories[ci].Questions
		for qi := range questions {
			if questions[qi].ID == "" {
				questions[qi].ID = uuid.NewString()
			}
		}
	}
}
