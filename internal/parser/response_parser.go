// Package parser turns free-form generation output into Question records.
package parser

import (
	"encoding/json"
	"strings"

	"lecture-quiz/internal/domain"
)

const (
	fence     = "```"
	jsonFence = "```json"
)

// StripFences removes the code-fence markers a model may wrap its JSON in.
// The markers are stripped repeatedly until the text stops changing, so
// StripFences(StripFences(s)) == StripFences(s) for every s.
func StripFences(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOnce(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, jsonFence)
	s = strings.TrimPrefix(s, fence)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

type typeMode int

const (
	modeDefault typeMode = iota
	modeRequested
	modeInferred
)

type options struct {
	mode      typeMode
	requested domain.QuestionType
}

// Option configures how Parse assigns a question type to each entry.
type Option func(*options)

// WithRequestedType tags every parsed question with the type that was asked
// of the generator.
func WithRequestedType(t domain.QuestionType) Option {
	return func(o *options) {
		o.mode = modeRequested
		o.requested = t
	}
}

// WithShapeInference derives each question's type from its options.
func WithShapeInference() Option {
	return func(o *options) {
		o.mode = modeInferred
	}
}

type payload struct {
	Questions *[]entry `json:"questions"`
}

type entry struct {
	QuestionText  *string  `json:"question_text"`
	CorrectAnswer *string  `json:"correct_answer"`
	Options       []string `json:"options"`
	Explanation   *string  `json:"explanation"`
}

// Parse converts a raw generation response into questions, preserving the
// order of the "questions" array.
//
// Without options every question is tagged multiple_choice regardless of
// what was requested; use WithRequestedType or WithShapeInference to avoid that.
func Parse(raw string, opts ...Option) ([]*domain.Question, error) {
	o := options{mode: modeDefault}
	for _, opt := range opts {
		opt(&o)
	}
	if o.mode == modeRequested && !o.requested.IsValid() {
		return nil, domain.NewInvalidQuestionTypeError(string(o.requested))
	}

	text := StripFences(raw)

	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, domain.NewMalformedPayloadError("generation output is not a valid questions object", err)
	}
	if p.Questions == nil {
		return nil, domain.NewMalformedPayloadError(`generation output has no "questions" key`, nil)
	}

	entries := *p.Questions
	questions := make([]*domain.Question, 0, len(entries))
	for i, e := range entries {
		if e.QuestionText == nil {
			return nil, domain.NewMissingFieldError("question_text", i)
		}
		if e.CorrectAnswer == nil {
			return nil, domain.NewMissingFieldError("correct_answer", i)
		}
		var explanation string
		if e.Explanation != nil {
			explanation = *e.Explanation
		}
		questions = append(questions, domain.NewQuestion(
			o.typeFor(e.Options),
			*e.QuestionText,
			*e.CorrectAnswer,
			e.Options,
			explanation,
		))
	}
	return questions, nil
}

func (o options) typeFor(opts []string) domain.QuestionType {
	switch o.mode {
	case modeRequested:
		return o.requested
	case modeInferred:
		return domain.InferQuestionType(opts)
	default:
		return domain.MultipleChoice
	}
}
