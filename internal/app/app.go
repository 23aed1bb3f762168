// Package app assembles the quiz services from configuration.
package app

import (
	"fmt"

	"lecture-quiz/internal/adapter"
	"lecture-quiz/internal/adapter/grader"
	"lecture-quiz/internal/adapter/llm"
	"lecture-quiz/internal/adapter/quizgen"
	"lecture-quiz/internal/cache"
	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/repository"
	"lecture-quiz/internal/service"

	"go.uber.org/zap"
)

// Components are the wired services shared by the API server and the CLI.
type Components struct {
	Cache      domain.Cache
	Generation service.GenerationService
	Quizzes    service.QuizService

	closers []func() error
}

// Close releases backend connections.
func (c *Components) Close() error {
	var firstErr error
	for _, fn := range c.closers {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// New builds every component from cfg. An empty redis address selects the
// in-process memory cache.
func New(cfg *config.Config) (*Components, error) {
	log := logger.Get()
	c := &Components{}

	model, err := llm.NewModel(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	textGen := llm.NewLangchainGenerator(model, cfg.LLM.Temperature, cfg.LLM.Timeout)
	log.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	questionGen, err := quizgen.NewGenerator(textGen)
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.Cache = adapter.NewRedisCache(client)
		log.Info("Using Redis quiz store", zap.String("address", cfg.Redis.Address))
	} else {
		c.Cache = adapter.NewMemoryCache()
		log.Info("Using in-memory quiz store")
	}

	shortAnswerGrader, err := newGrader(cfg, textGen)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Generation = service.NewGenerationService(questionGen, cfg.Quiz)
	c.Quizzes = service.NewQuizService(c.Generation, repository.NewQuizStore(c.Cache, cfg.Quiz.TTL), shortAnswerGrader)
	return c, nil
}

func newGrader(cfg *config.Config, textGen domain.TextGenerator) (domain.ShortAnswerGrader, error) {
	switch cfg.Grading.ShortAnswer {
	case config.GradingLLM:
		logger.Get().Info("Short answers graded by LLM", zap.Float64("threshold", cfg.Grading.Threshold))
		return grader.NewLLMGrader(textGen, cfg.Grading.Threshold), nil
	case config.GradingEmbedding:
		embeddings, err := llm.NewEmbeddingService(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding service: %w", err)
		}
		logger.Get().Info("Short answers graded by embedding similarity",
			zap.String("model", cfg.LLM.EmbeddingModel),
			zap.Float64("threshold", cfg.Grading.Threshold))
		return grader.NewEmbeddingGrader(embeddings, cfg.Grading.Threshold), nil
	default:
		return nil, nil
	}
}
