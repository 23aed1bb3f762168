package service

import (
	"context"
	"fmt"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/evaluator"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// AnswerResult is the outcome of checking one answer.
type AnswerResult struct {
	QuizID        string              `json:"quiz_id"`
	QuestionIndex int                 `json:"question_index"`
	QuestionType  domain.QuestionType `json:"question_type"`
	Verdict       domain.Verdict      `json:"verdict"`
	Score         *float64            `json:"score,omitempty"`
	Message       string              `json:"message"`
	CorrectAnswer string              `json:"correct_answer"`
	Explanation   string              `json:"explanation,omitempty"`
}

// QuizService defines the interface for quiz session operations
type QuizService interface {
	CreateQuiz(ctx context.Context, req GenerateRequest) (*domain.Quiz, error)
	CreateQuizFromDocuments(ctx context.Context, paths []string, numQuestions int, questionType domain.QuestionType) (*domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)
	CheckAnswer(ctx context.Context, quizID string, questionIndex int, userAnswer string) (*AnswerResult, error)
	GradeQuestion(ctx context.Context, question *domain.Question, userAnswer string) *AnswerResult
}

type quizService struct {
	generation GenerationService
	store      domain.QuizStore
	grader     domain.ShortAnswerGrader
}

// NewQuizService creates a QuizService. grader may be nil, in which case
// short answers are left ungraded.
func NewQuizService(generation GenerationService, store domain.QuizStore, grader domain.ShortAnswerGrader) QuizService {
	return &quizService{
		generation: generation,
		store:      store,
		grader:     grader,
	}
}

// CreateQuiz implements QuizService
func (s *quizService) CreateQuiz(ctx context.Context, req GenerateRequest) (*domain.Quiz, error) {
	quiz, err := s.generation.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// CreateQuizFromDocuments implements QuizService
func (s *quizService) CreateQuizFromDocuments(ctx context.Context, paths []string, numQuestions int, questionType domain.QuestionType) (*domain.Quiz, error) {
	quiz, err := s.generation.GenerateFromDocuments(ctx, paths, numQuestions, questionType)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	return s.store.Get(ctx, id)
}

// CheckAnswer implements QuizService
func (s *quizService) CheckAnswer(ctx context.Context, quizID string, questionIndex int, userAnswer string) (*AnswerResult, error) {
	quiz, err := s.store.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	question, ok := quiz.Question(questionIndex)
	if !ok {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("question_index %d is out of range (quiz has %d questions)", questionIndex, len(quiz.Questions))).
			WithContext("quiz_id", quizID)
	}

	result := s.GradeQuestion(ctx, question, userAnswer)
	result.QuizID = quizID
	result.QuestionIndex = questionIndex

	logger.Get().Debug("Answer checked",
		zap.String("quiz_id", quizID),
		zap.Int("question_index", questionIndex),
		zap.String("verdict", string(result.Verdict)))
	return result, nil
}

// GradeQuestion implements QuizService. It never fails: when the short-answer
// grader errors the answer stays ungraded.
func (s *quizService) GradeQuestion(ctx context.Context, question *domain.Question, userAnswer string) *AnswerResult {
	result := &AnswerResult{
		QuestionType:  question.Type,
		Verdict:       evaluator.EvaluateQuestion(question, userAnswer),
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}

	if result.Verdict == domain.VerdictNotImplemented && s.grader != nil && isShortAnswer(question.Type) {
		grade, err := s.grader.Grade(ctx, question, userAnswer)
		if err != nil {
			logger.Get().Warn("Short-answer grading failed, leaving answer ungraded", zap.Error(err))
		} else {
			result.Verdict = grade.Verdict
			score := grade.Score
			result.Score = &score
			if grade.Explanation != "" {
				result.Explanation = grade.Explanation
			}
		}
	}

	result.Message = result.Verdict.Message()
	return result
}

func isShortAnswer(t domain.QuestionType) bool {
	parsed, err := domain.ParseQuestionType(string(t))
	return err == nil && parsed == domain.ShortAnswer
}
