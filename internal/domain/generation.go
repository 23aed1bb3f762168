package domain

import "context"

// TextGenerator is the capability of turning a prompt into free-form text.
// Every language-model backend is reached through it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuestionGenerator asks a text-generation backend for candidate questions
// and returns the raw, unparsed response.
type QuestionGenerator interface {
	GenerateRaw(ctx context.Context, content string, numQuestions int, questionType QuestionType) (string, error)
}

// ShortAnswerGrader grades free-text answers that the exact-match evaluator
// cannot decide.
type ShortAnswerGrader interface {
	Grade(ctx context.Context, question *Question, userAnswer string) (*Grade, error)
}

// Grade is the result of grading a short answer.
type Grade struct {
	Verdict     Verdict `json:"verdict"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}
