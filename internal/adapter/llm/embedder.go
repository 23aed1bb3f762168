package llm

import (
	"context"
	"fmt"

	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain"

	"github.com/tmc/langchaingo/embeddings"
)

// EmbeddingService implements domain.EmbeddingService with a langchaingo embedder.
type EmbeddingService struct {
	embedder embeddings.Embedder
}

// NewEmbeddingService builds an embedder for cfg.Provider using cfg.EmbeddingModel.
func NewEmbeddingService(cfg config.LLMConfig) (*EmbeddingService, error) {
	var client embeddings.EmbedderClient
	switch cfg.Provider {
	case config.ProviderOllama:
		llm, err := newOllama(cfg, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		client = llm
	case config.ProviderOpenAI:
		llm, err := newOpenAI(cfg, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		client = llm
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return &EmbeddingService{embedder: embedder}, nil
}

// Generate creates an embedding for the given text.
func (s *EmbeddingService) Generate(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty for embedding")
	}
	embedding, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	return embedding, nil
}

var _ domain.EmbeddingService = (*EmbeddingService)(nil)
