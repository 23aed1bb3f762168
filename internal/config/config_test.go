package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Quiz.TTL)
	assert.Equal(t, GradingNone, cfg.Grading.ShortAnswer)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	yaml := `
server:
  port: 9000
llm:
  model: llama3
quiz:
  max_questions: 5
grading:
  short_answer: llm
  threshold: 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("LLM_MODEL", "qwen3:0.6b")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "qwen3:0.6b", cfg.LLM.Model, "env overrides file")
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 5, cfg.Quiz.MaxQuestions)
	assert.Equal(t, GradingLLM, cfg.Grading.ShortAnswer)
	assert.Equal(t, 0.5, cfg.Grading.Threshold)
}

func TestLoadConfig_OpenAIKeyFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("QUIZ_MAX_QUESTIONS=7\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("QUIZ_MAX_QUESTIONS") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Quiz.MaxQuestions)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8090},
			LLM:     LLMConfig{Provider: ProviderOllama, ServerURL: "http://localhost:11434", Model: "m"},
			Quiz:    QuizConfig{MaxQuestions: 10, DefaultType: "multiple_choice"},
			Grading: GradingConfig{ShortAnswer: GradingNone, Threshold: 0.7},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gemini" }, "llm.provider must be one of"},
		{"openai without key", func(c *Config) { c.LLM.Provider = ProviderOpenAI }, "llm.api_key is required"},
		{"ollama without url", func(c *Config) { c.LLM.ServerURL = "" }, "llm.server_url is required"},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, "llm.model is required"},
		{"unknown grader", func(c *Config) { c.Grading.ShortAnswer = "vibes" }, "grading.short_answer"},
		{"threshold too high", func(c *Config) { c.Grading.Threshold = 1.5 }, "grading.threshold must be <= 1"},
		{"no questions allowed", func(c *Config) { c.Quiz.MaxQuestions = 0 }, "quiz.max_questions must be > 0"},
		{"bad default type", func(c *Config) { c.Quiz.DefaultType = "essay" }, "quiz.default_type"},
		{"bad redis address", func(c *Config) { c.Redis.Address = "localhost" }, "redis.address"},
		{"bad log level", func(c *Config) { c.Logger.Level = "loud" }, "logger.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.wantMsg)
		})
	}

	t.Run("openai with key needs no url", func(t *testing.T) {
		c := valid()
		c.LLM.Provider = ProviderOpenAI
		c.LLM.ServerURL = ""
		c.LLM.APIKey = "sk-test"
		assert.NoError(t, c.Validate())
	})
}
