package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"lecture-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a minimal llms.Model that records the prompt and options it receives.
type fakeModel struct {
	response    string
	err         error
	block       bool
	prompt      string
	temperature float64
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, o := range options {
		o(&opts)
	}
	f.temperature = opts.Temperature
	for _, m := range messages {
		for _, p := range m.Parts {
			if text, ok := p.(llms.TextContent); ok {
				f.prompt = text.Text
			}
		}
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.response}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangchainGenerator_Generate(t *testing.T) {
	model := &fakeModel{response: `{"questions":[]}`}
	gen := NewLangchainGenerator(model, 0.3, time.Second)

	out, err := gen.Generate(context.Background(), "make a quiz")
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, out)
	assert.Equal(t, "make a quiz", model.prompt)
	assert.Equal(t, 0.3, model.temperature)
}

func TestLangchainGenerator_Error(t *testing.T) {
	gen := NewLangchainGenerator(&fakeModel{err: errors.New("connection refused")}, 0, 0)

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM call failed")
}

func TestLangchainGenerator_Timeout(t *testing.T) {
	gen := NewLangchainGenerator(&fakeModel{block: true}, 0, 10*time.Millisecond)

	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewModel(t *testing.T) {
	_, err := NewModel(config.LLMConfig{Provider: "gemini"})
	assert.ErrorContains(t, err, "unsupported LLM provider")

	_, err = NewModel(config.LLMConfig{Provider: config.ProviderOllama, Model: "m"})
	assert.ErrorContains(t, err, "server URL cannot be empty")

	_, err = NewModel(config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"})
	assert.ErrorContains(t, err, "API key cannot be empty")

	m, err := NewModel(config.LLMConfig{Provider: config.ProviderOllama, ServerURL: "http://localhost:11434", Model: "qwen2.5:7b"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

// MockEmbedder is a mock type for the embeddings.Embedder interface
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func TestEmbeddingService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockEmb := new(MockEmbedder)
		service := &EmbeddingService{embedder: mockEmb}
		mockEmb.On("EmbedQuery", ctx, "test text").Return([]float32{0.1, 0.2, 0.3}, nil).Once()

		result, err := service.Generate(ctx, "test text")
		assert.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, result)
		mockEmb.AssertExpectations(t)
	})

	t.Run("empty text", func(t *testing.T) {
		service := &EmbeddingService{embedder: new(MockEmbedder)}
		_, err := service.Generate(ctx, "")
		assert.ErrorContains(t, err, "input text cannot be empty")
	})

	t.Run("embedder error", func(t *testing.T) {
		mockEmb := new(MockEmbedder)
		service := &EmbeddingService{embedder: mockEmb}
		embedderErr := errors.New("ollama failed")
		mockEmb.On("EmbedQuery", ctx, "test text").Return(nil, embedderErr).Once()

		_, err := service.Generate(ctx, "test text")
		assert.ErrorIs(t, err, embedderErr)
		mockEmb.AssertExpectations(t)
	})
}
