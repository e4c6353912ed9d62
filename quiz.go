package quizpdf

import (
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// QuestionType selects how a question is laid out.
type QuestionType string

const (
	TypeText        QuestionType = "text"
	TypeMultiChoice QuestionType = "multichoice"
	TypeTrueFalse   QuestionType = "truefalse"
	TypeImage       QuestionType = "image"
)

// Text formats accepted in Question.Format.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Question is a single quiz item.
type Question struct {
	ID            string       `json:"id,omitempty" yaml:"id" toml:"id"`
	Text          string       `json:"question" yaml:"question" toml:"question"`
	Type          QuestionType `json:"type" yaml:"type" toml:"type"`
	Format        string       `json:"format,omitempty" yaml:"format" toml:"format"`
	Options       []string     `json:"options,omitempty" yaml:"options" toml:"options"`
	CorrectAnswer string       `json:"correct_answer,omitempty" yaml:"correct_answer" toml:"correct_answer"`
	Active        *bool        `json:"is_active,omitempty" yaml:"is_active" toml:"is_active"`
	ImageURL      string       `json:"image_url,omitempty" yaml:"image_url" toml:"image_url"`
}

// IsActive reports whether the question is active. Unset means active.
func (q Question) IsActive() bool {
	return q.Active == nil || *q.Active
}

// Segments returns the styled text of the question.
func (q Question) Segments() []Segment {
	if strings.EqualFold(q.Format, FormatMarkdown) {
		return MarkdownSegments(q.Text)
	}
	return Parse(q.Text)
}

// Validate checks a single question.
func (q Question) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Text, validation.Required),
		validation.Field(&q.Type, validation.Required,
			validation.In(TypeText, TypeMultiChoice, TypeTrueFalse, TypeImage)),
		validation.Field(&q.Format, validation.By(knownFormat)),
		validation.Field(&q.Options, validation.When(q.Type == TypeMultiChoice, validation.Required)),
		validation.Field(&q.ImageURL, validation.By(imageLocation)),
	)
}

// knownFormat accepts the text formats in any letter case, matching Segments.
func knownFormat(value any) error {
	s, _ := value.(string)
	switch strings.ToLower(s) {
	case "", FormatHTML, FormatMarkdown:
		return nil
	default:
		return validation.NewError("quiz.format.unknown", "must be html or markdown")
	}
}

func imageLocation(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return validation.NewError("quiz.image_url.invalid", "must be a valid URL or path")
	}
	switch strings.ToLower(u.Scheme) {
	case "", "file", "http", "https":
		return nil
	default:
		return validation.NewError("quiz.image_url.scheme", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}
}

// OptionLabel returns the letter label of the i-th option: a, b, ... z, aa, ab.
func OptionLabel(i int) string {
	if i < 0 {
		return ""
	}
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return string(b)
}

// Choices returns the labelled answer choices shown for the question.
func (q Question) Choices() []string {
	switch q.Type {
	case TypeTrueFalse:
		return []string{"a. True", "b. False"}
	case TypeMultiChoice:
		out := make([]string, len(q.Options))
		for i, opt := range q.Options {
			out[i] = OptionLabel(i) + ". " + opt
		}
		return out
	}
	return nil
}

// HasAnswerLine reports whether a blank answer line follows the question.
func (q Question) HasAnswerLine() bool {
	return q.Type == TypeText || q.Type == TypeImage
}

// AnswerKeyEntry returns the answer key text for the question numbered n.
func (q Question) AnswerKeyEntry(n int) string {
	entry := fmt.Sprintf("%d. %s", n, q.CorrectAnswer)
	if !q.IsActive() {
		entry += " (Inactive)"
	}
	return entry
}

// Category groups questions under a heading.
type Category struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Questions []Question `json:"questions" yaml:"questions" toml:"questions"`
}

// Validate checks the category and its questions.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Questions),
	)
}

// Quiz is a titled set of categorized questions.
type Quiz struct {
	Title          string     `json:"title" yaml:"title" toml:"title"`
	IncludeAnswers *bool      `json:"include_answers,omitempty" yaml:"include_answers" toml:"include_answers"`
	Instructions   string     `json:"instructions,omitempty" yaml:"instructions" toml:"instructions"`
	Categories     []Category `json:"categories" yaml:"categories" toml:"categories"`
}

// AnswersIncluded reports whether an answer key is wanted. Unset means yes.
func (q Quiz) AnswersIncluded() bool {
	return q.IncludeAnswers == nil || *q.IncludeAnswers
}

// QuestionCount returns the number of questions across all categories.
func (q Quiz) QuestionCount() int {
	n := 0
	for _, c := range q.Categories {
		n += len(c.Questions)
	}
	return n
}

// Validate checks the quiz. Failures are categorized as validation errors.
func (q Quiz) Validate() error {
	return wrapValidationError(q.validate())
}

func (q Quiz) validate() error {
	err := validation.ValidateStruct(&q,
		validation.Field(&q.Title, validation.Required),
		validation.Field(&q.Categories, validation.Required),
	)
	if err != nil {
		return err
	}
	return q.validateIDs()
}

func (q Quiz) validateIDs() error {
	seen := make(map[string]string)
	for ci, c := range q.Categories {
		for qi, question := range c.Questions {
			if question.ID == "" {
				continue
			}
			where := fmt.Sprintf("categories[%d].questions[%d]", ci, qi)
			if prev, ok := seen[question.ID]; ok {
				return validation.Errors{
					"id": validation.NewError("quiz.id.duplicate",
						fmt.Sprintf("duplicate question id %q at %s and %s", question.ID, prev, where)),
				}
			}
			seen[question.ID] = where
		}
	}
	return nil
}

// Merge concatenates the categories of several quizzes. The first non-empty
// title and instructions win; answers are included if any quiz asks for them.
func Merge(quizzes ...Quiz) Quiz {
	var out Quiz
	if len(quizzes) == 0 {
		return out
	}
	answers := false
	for _, q := range quizzes {
		if out.Title == "" {
			out.Title = q.Title
		}
		if out.Instructions == "" {
			out.Instructions = q.Instructions
		}
		answers = answers || q.AnswersIncluded()
		out.Categories = append(out.Categories, q.Categories...)
	}
	out.IncludeAnswers = &answers
	return out
}
