package dto

import (
	"time"

	"lecture-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /api/quizzes
type GenerateQuizRequest struct {
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
	QuestionType string `json:"question_type"`
	Title        string `json:"title,omitempty"`
}

// QuestionResponse is a question as shown to a quiz taker, without its answer.
type QuestionResponse struct {
	Index        int      `json:"index"`
	QuestionType string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

// QuizResponse represents a quiz in the API response
type QuizResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Source        string             `json:"source,omitempty"`
	RequestedType string             `json:"requested_type"`
	Questions     []QuestionResponse `json:"questions"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewQuizResponse hides correct answers and explanations.
func NewQuizResponse(quiz *domain.Quiz) *QuizResponse {
	resp := &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Source:        quiz.Source,
		RequestedType: string(quiz.RequestedType),
		Questions:     make([]QuestionResponse, len(quiz.Questions)),
		CreatedAt:     quiz.CreatedAt,
	}
	for i, q := range quiz.Questions {
		opts := q.Options
		if opts == nil {
			opts = []string{}
		}
		resp.Questions[i] = QuestionResponse{
			Index:        i,
			QuestionType: string(q.Type),
			QuestionText: q.Text,
			Options:      opts,
		}
	}
	return resp
}

// CheckAnswerRequest is the body of POST /api/quizzes/:id/answers
type CheckAnswerRequest struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// CheckAnswerResponse represents the evaluation result in the API response
type CheckAnswerResponse struct {
	QuizID        string   `json:"quiz_id"`
	QuestionIndex int      `json:"question_index"`
	Verdict       string   `json:"verdict"`
	Graded        bool     `json:"graded"`
	Score         *float64 `json:"score,omitempty"`
	Message       string   `json:"message"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// EvaluateRequest is the body of POST /api/evaluate
type EvaluateRequest struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	QuestionType  string `json:"question_type"`
}

// EvaluateResponse is a stateless verdict.
type EvaluateResponse struct {
	Verdict string   `json:"verdict"`
	Graded  bool     `json:"graded"`
	Score   *float64 `json:"score,omitempty"`
	Message string   `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
