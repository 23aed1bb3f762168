package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainGenerator implements domain.TextGenerator on top of a langchaingo model.
type LangchainGenerator struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

// NewLangchainGenerator wraps model. A zero timeout leaves the caller's
// context deadline in charge.
func NewLangchainGenerator(model llms.Model, temperature float64, timeout time.Duration) *LangchainGenerator {
	return &LangchainGenerator{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Generate implements domain.TextGenerator
func (g *LangchainGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err), zap.Duration("timeout", g.timeout))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	l.Debug("LLM response received",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_chars", len(response)))
	return response, nil
}

// NewModel creates the langchaingo model selected by cfg.Provider.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return newOllama(cfg, cfg.Model)
	case config.ProviderOpenAI:
		return newOpenAI(cfg, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

func newOllama(cfg config.LLMConfig, model string) (*ollama.LLM, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return llm, nil
}

func newOpenAI(cfg config.LLMConfig, model string) (*openai.LLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	}
	if cfg.ServerURL != "" && cfg.ServerURL != "https://api.openai.com/v1" {
		opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return llm, nil
}

var _ domain.TextGenerator = (*LangchainGenerator)(nil)
