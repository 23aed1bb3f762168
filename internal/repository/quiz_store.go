package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lecture-quiz/internal/cache"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizStore keeps generated quizzes in a domain.Cache as JSON documents.
type QuizStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuizStore creates a store whose entries expire after ttl. A zero ttl
// keeps quizzes until they are deleted.
func NewQuizStore(c domain.Cache, ttl time.Duration) *QuizStore {
	return &QuizStore{cache: c, ttl: ttl}
}

func (s *QuizStore) Save(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return domain.NewInvalidInputError("quiz ID is required")
	}
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz", err)
	}
	if err := s.cache.Set(ctx, cache.QuizKey(quiz.ID), string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save quiz", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return domain.NewInternalError("failed to save quiz", err)
	}
	return nil
}

func (s *QuizStore) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	data, err := s.cache.Get(ctx, cache.QuizKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		logger.Get().Error("Failed to load quiz", zap.String("quiz_id", id), zap.Error(err))
		return nil, domain.NewInternalError("failed to load quiz", err)
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		logger.Get().Warn("Discarding undecodable quiz entry", zap.String("quiz_id", id), zap.Error(err))
		return nil, domain.NewInternalError("failed to decode quiz", err)
	}
	for _, q := range quiz.Questions {
		if q.Options == nil {
			q.Options = []string{}
		}
	}
	return &quiz, nil
}

func (s *QuizStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, cache.QuizKey(id)); err != nil {
		return domain.NewInternalError("failed to delete quiz", err)
	}
	return nil
}

var _ domain.QuizStore = (*QuizStore)(nil)
