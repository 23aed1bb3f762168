package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"lecture-quiz/internal/config"
	"lecture-quiz/internal/document"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/parser"
	"lecture-quiz/internal/util"

	"go.uber.org/zap"
)

// GenerateRequest describes one quiz generation call.
type GenerateRequest struct {
	Content      string
	NumQuestions int
	QuestionType domain.QuestionType
	Title        string
	Source       string
}

// GenerationService turns source text into a validated quiz.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Quiz, error)
	GenerateFromDocuments(ctx context.Context, paths []string, numQuestions int, questionType domain.QuestionType) (*domain.Quiz, error)
}

type generationService struct {
	generator   domain.QuestionGenerator
	cfg         config.QuizConfig
	defaultType domain.QuestionType
	newID       func() string
}

// NewGenerationService creates a GenerationService backed by generator.
// cfg.DefaultType accepts the same tags as ParseQuestionType; an empty or
// unknown tag falls back to multiple_choice.
func NewGenerationService(generator domain.QuestionGenerator, cfg config.QuizConfig) GenerationService {
	defaultType, err := domain.ParseQuestionType(cfg.DefaultType)
	if err != nil {
		defaultType = domain.MultipleChoice
	}
	return &generationService{
		generator:   generator,
		cfg:         cfg,
		defaultType: defaultType,
		newID:       util.NewULID,
	}
}

// Generate implements GenerationService
func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*domain.Quiz, error) {
	l := logger.Get()

	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.NewInvalidInputError("content is required")
	}
	if req.NumQuestions < 1 || (s.cfg.MaxQuestions > 0 && req.NumQuestions > s.cfg.MaxQuestions) {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("num_questions must be between 1 and %d", s.cfg.MaxQuestions))
	}
	if req.QuestionType == "" {
		req.QuestionType = s.defaultType
	}
	if !req.QuestionType.IsValid() {
		return nil, domain.NewInvalidQuestionTypeError(string(req.QuestionType))
	}

	content := truncate(req.Content, s.cfg.MaxContentChars)
	if len(content) < len(req.Content) {
		l.Warn("Content truncated before generation",
			zap.Int("original_bytes", len(req.Content)),
			zap.Int("max_chars", s.cfg.MaxContentChars))
	}

	raw, err := s.generator.GenerateRaw(ctx, content, req.NumQuestions, req.QuestionType)
	if err != nil {
		l.Error("Question generation failed", zap.Error(err))
		return nil, err
	}

	questions, err := parser.Parse(raw, parser.WithRequestedType(req.QuestionType))
	if err != nil {
		l.Warn("Generated quiz could not be parsed", zap.Error(err), zap.Int("raw_len", len(raw)))
		return nil, err
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			l.Warn("Generated question is invalid", zap.Int("index", i), zap.Error(err))
			return nil, domain.NewMalformedPayloadError(fmt.Sprintf("question %d is invalid", i), err).
				WithContext("index", i)
		}
	}
	if len(questions) != req.NumQuestions {
		l.Info("Generator returned a different number of questions",
			zap.Int("requested", req.NumQuestions),
			zap.Int("received", len(questions)))
	}

	title := req.Title
	if title == "" {
		title = defaultTitle(req.Source, req.QuestionType)
	}
	quiz := domain.NewQuiz(s.newID(), title, req.QuestionType, questions)
	quiz.Source = req.Source

	l.Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("question_type", string(req.QuestionType)),
		zap.Int("questions", len(questions)))
	return quiz, nil
}

// GenerateFromDocuments implements GenerationService
func (s *generationService) GenerateFromDocuments(ctx context.Context, paths []string, numQuestions int, questionType domain.QuestionType) (*domain.Quiz, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("at least one document is required")
	}
	docs, err := document.ExtractAll(ctx, paths)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if !d.Supported {
			logger.Get().Warn("Skipping unsupported document", zap.String("path", d.Path))
		}
	}

	content := document.JoinText(docs)
	if content == "" {
		return nil, domain.NewInvalidInputError("no readable text found in the given documents")
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return s.Generate(ctx, GenerateRequest{
		Content:      content,
		NumQuestions: numQuestions,
		QuestionType: questionType,
		Source:       strings.Join(names, ", "),
	})
}

// truncate cuts s to at most max runes. max <= 0 disables the limit.
func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func defaultTitle(source string, t domain.QuestionType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	if source == "" {
		return fmt.Sprintf("%s quiz", label)
	}
	return fmt.Sprintf("%s quiz: %s", label, source)
}
