package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Redis   RedisConfig   `yaml:"redis"`
	Quiz    QuizConfig    `yaml:"quiz"`
	Grading GradingConfig `yaml:"grading"`
	Logger  LoggerConfig  `yaml:"logger"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
	BodyLimit    int           `yaml:"body_limit" validate:"gte=0"`
}

// LLMConfig selects and configures the text-generation backend.
type LLMConfig struct {
	Provider       string        `yaml:"provider" validate:"oneof=ollama openai"`
	ServerURL      string        `yaml:"server_url" validate:"required_if=Provider ollama,omitempty,url"`
	Model          string        `yaml:"model" validate:"required"`
	EmbeddingModel string        `yaml:"embedding_model"`
	APIKey         string        `yaml:"api_key" validate:"required_if=Provider openai"`
	Temperature    float64       `yaml:"temperature" validate:"gte=0,lte=2"`
	Timeout        time.Duration `yaml:"timeout" validate:"gte=0"`
}

type RedisConfig struct {
	Address  string `yaml:"address" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
}

// QuizConfig bounds quiz generation requests.
type QuizConfig struct {
	TTL             time.Duration `yaml:"ttl" validate:"gte=0"`
	MaxQuestions    int           `yaml:"max_questions" validate:"gt=0"`
	MaxContentChars int           `yaml:"max_content_chars" validate:"gte=0"`
	DefaultType     string        `yaml:"default_type" validate:"oneof=multiple_choice short_answer true_false mcq"`
}

// GradingConfig configures grading of short-answer questions.
type GradingConfig struct {
	ShortAnswer string  `yaml:"short_answer" validate:"oneof=none llm embedding"`
	Threshold   float64 `yaml:"threshold" validate:"gt=0,lte=1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Env   string `yaml:"env"`
}

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	GradingNone      = "none"
	GradingLLM       = "llm"
	GradingEmbedding = "embedding"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.body_limit", 10*1024*1024)

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen2.5:7b")
	v.SetDefault("llm.embedding_model", "nomic-embed-text")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", 120)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("quiz.ttl", 24*60*60)
	v.SetDefault("quiz.max_questions", 20)
	v.SetDefault("quiz.max_content_chars", 50000)
	v.SetDefault("quiz.default_type", "multiple_choice")

	v.SetDefault("grading.short_answer", GradingNone)
	v.SetDefault("grading.threshold", 0.7)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

// LoadConfig reads config.yaml from the working directory or ./configs when
// present, then applies environment overrides (e.g. LLM_MODEL, REDIS_ADDRESS).
// Variables from a .env file in the working directory are loaded first; they
// never replace variables already set. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// OPENAI_API_KEY is the conventional name for the key.
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(v.GetString("llm.provider")),
			ServerURL:      v.GetString("llm.server_url"),
			Model:          v.GetString("llm.model"),
			EmbeddingModel: v.GetString("llm.embedding_model"),
			APIKey:         v.GetString("llm.api_key"),
			Temperature:    v.GetFloat64("llm.temperature"),
			Timeout:        time.Duration(v.GetInt("llm.timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Quiz: QuizConfig{
			TTL:             time.Duration(v.GetInt("quiz.ttl")) * time.Second,
			MaxQuestions:    v.GetInt("quiz.max_questions"),
			MaxContentChars: v.GetInt("quiz.max_content_chars"),
			DefaultType:     v.GetString("quiz.default_type"),
		},
		Grading: GradingConfig{
			ShortAnswer: strings.ToLower(v.GetString("grading.short_answer")),
			Threshold:   v.GetFloat64("grading.threshold"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its validate tag. Errors name the
// offending keys the way they are spelled in config.yaml.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("internal config validator error: %w", err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", key, comparison[fe.Tag()], fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

var comparison = map[string]string{"gt": ">", "gte": ">=", "lt": "<", "lte": "<="}
