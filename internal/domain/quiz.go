package domain

import (
	"context"
	"time"
)

// Quiz is one batch of questions produced by a single generation call.
type Quiz struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Source        string       `json:"source,omitempty"`
	RequestedType QuestionType `json:"requested_type"`
	Questions     []*Question  `json:"questions"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewQuiz creates a new Quiz instance
func NewQuiz(id, title string, requestedType QuestionType, questions []*Question) *Quiz {
	if questions == nil {
		questions = []*Question{}
	}
	return &Quiz{
		ID:            id,
		Title:         title,
		RequestedType: requestedType,
		Questions:     questions,
		CreatedAt:     time.Now().UTC(),
	}
}

// Question returns the question at index, or false when out of range.
func (q *Quiz) Question(index int) (*Question, bool) {
	if index < 0 || index >= len(q.Questions) {
		return nil, false
	}
	return q.Questions[index], true
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.ID == "" {
		return NewValidationError("quiz ID is required")
	}
	for _, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuizStore persists generated quizzes for the duration of a quiz session.
type QuizStore interface {
	// Save stores the quiz, replacing any quiz with the same ID.
	Save(ctx context.Context, quiz *Quiz) error

	// Get returns the quiz or a QUIZ_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Quiz, error)

	// Delete removes the quiz. Deleting a missing quiz is not an error.
	Delete(ctx context.Context, id string) error
}
