package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は LOG_LEVEL / LOG_FORMAT 相当の値から zap ロガーを組み立てる。
// format が "json" のときは本番向けエンコーダ、それ以外は開発向けのコンソール出力。
func New(levelStr, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))
	return cfg.Build()
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named returns a sugared child logger tagged with the component name.
func Named(base *zap.Logger, component string) *zap.SugaredLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.Named(component).Sugar()
}
