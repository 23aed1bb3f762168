package domain

import (
	"strings"
)

// QuestionType is the kind of a quiz question. The set is closed.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
	TrueFalse      QuestionType = "true_false"
)

// TagMCQ is the short alias accepted for multiple_choice.
const TagMCQ = "mcq"

// QuestionTypes lists every recognized question type.
func QuestionTypes() []QuestionType {
	return []QuestionType{MultipleChoice, ShortAnswer, TrueFalse}
}

// IsValid reports whether t is one of the recognized question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case MultipleChoice, ShortAnswer, TrueFalse:
		return true
	default:
		return false
	}
}

func (t QuestionType) String() string {
	return string(t)
}

// ParseQuestionType converts a tag into a QuestionType.
// "mcq" is accepted as an alias of multiple_choice.
func ParseQuestionType(s string) (QuestionType, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == TagMCQ {
		return MultipleChoice, nil
	}
	t := QuestionType(tag)
	if !t.IsValid() {
		return "", NewInvalidQuestionTypeError(s)
	}
	return t, nil
}

// TrueFalseOptions is the option list used by true/false questions.
func TrueFalseOptions() []string {
	return []string{"True", "False"}
}

// Question represents one quiz item
type Question struct {
	Type          QuestionType `json:"question_type"`
	Text          string       `json:"question_text"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options"`
	Explanation   string       `json:"explanation"`
}

// NewQuestion creates a new Question. Optional fields get their defaults here:
// nil options become an empty list, and the options slice is copied.
func NewQuestion(qType QuestionType, text, correctAnswer string, options []string, explanation string) *Question {
	opts := make([]string, len(options))
	copy(opts, options)
	return &Question{
		Type:          qType,
		Text:          text,
		CorrectAnswer: correctAnswer,
		Options:       opts,
		Explanation:   explanation,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if !q.Type.IsValid() {
		return NewInvalidQuestionTypeError(string(q.Type))
	}
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question_text is required")
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("correct_answer is required")
	}
	if q.Type == MultipleChoice && !q.HasOption(q.CorrectAnswer) {
		return NewValidationError("correct_answer must be one of the options")
	}
	return nil
}

// HasOption reports whether s is exactly one of the question's options.
func (q *Question) HasOption(s string) bool {
	for _, o := range q.Options {
		if o == s {
			return true
		}
	}
	return false
}

// InferQuestionType derives a question type from the shape of its options:
// none means short answer, exactly True/False means true/false, anything
// else is multiple choice.
func InferQuestionType(options []string) QuestionType {
	switch len(options) {
	case 0:
		return ShortAnswer
	case 2:
		a := strings.ToLower(strings.TrimSpace(options[0]))
		b := strings.ToLower(strings.TrimSpace(options[1]))
		if (a == "true" && b == "false") || (a == "false" && b == "true") {
			return TrueFalse
		}
	}
	return MultipleChoice
}

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}
