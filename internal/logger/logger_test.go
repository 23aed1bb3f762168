package logger

import (
	"testing"

	"lecture-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGet_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, Get())
}

func TestInitialize(t *testing.T) {
	assert.NoError(t, Initialize(config.LoggerConfig{Level: "debug", Env: "production"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	assert.NoError(t, Initialize(config.LoggerConfig{Level: "warn"}))
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.Error(t, Initialize(config.LoggerConfig{Level: "loud"}))
}
