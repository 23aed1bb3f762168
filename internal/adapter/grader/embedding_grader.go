package grader

import (
	"context"
	"fmt"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/util"
)

// EmbeddingGrader grades short answers by the cosine similarity between the
// embeddings of the user's answer and the correct answer.
type EmbeddingGrader struct {
	embeddings domain.EmbeddingService
	threshold  float64
}

// NewEmbeddingGrader creates a grader; similarity at or above threshold is correct.
func NewEmbeddingGrader(embeddings domain.EmbeddingService, threshold float64) *EmbeddingGrader {
	return &EmbeddingGrader{embeddings: embeddings, threshold: threshold}
}

// Grade implements domain.ShortAnswerGrader
func (g *EmbeddingGrader) Grade(ctx context.Context, question *domain.Question, userAnswer string) (*domain.Grade, error) {
	if strings.TrimSpace(userAnswer) == "" {
		return &domain.Grade{Verdict: domain.VerdictIncorrect}, nil
	}
	expected, err := g.embeddings.Generate(ctx, question.CorrectAnswer)
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("embed correct answer: %w", err))
	}
	actual, err := g.embeddings.Generate(ctx, userAnswer)
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("embed user answer: %w", err))
	}

	similarity, err := util.CosineSimilarity(actual, expected)
	if err != nil {
		return nil, domain.NewInternalError("failed to compare embeddings", err)
	}

	score := clamp(similarity)
	return &domain.Grade{
		Verdict:     verdictFor(score, g.threshold),
		Score:       score,
		Explanation: fmt.Sprintf("similarity %.2f (threshold %.2f)", similarity, g.threshold),
	}, nil
}

var _ domain.ShortAnswerGrader = (*EmbeddingGrader)(nil)
