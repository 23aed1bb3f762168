package logger

import (
	"os"

	"lecture-quiz/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Initialize replaces the global logger. Production uses JSON lines; any
// other env gets a colored console encoder. Output always goes to stderr
// so the CLI keeps stdout for the quiz itself.
func Initialize(cfg config.LoggerConfig) error {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return err
		}
	}

	var enc zapcore.Encoder
	if cfg.Env == "production" {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "timestamp"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

// Get returns the global logger. It discards everything until Initialize runs.
func Get() *zap.Logger {
	return log
}

func Sync() error {
	return log.Sync()
}
