package plumber

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects how NewLogger builds a zap logger.
type LogConfig struct {
	Level       string // debug, info, warn, error; unknown values mean info
	Format      string // "console" or "json"
	Development bool
}

// logger is the package-wide logger. plumber is single-threaded, so the
// variable is swapped without synchronization; call SetLogger before Run.
var logger = zap.NewNop()

// Logger returns the logger used by plumber and its sub-packages.
func Logger() *zap.Logger {
	return logger
}

// SetLogger replaces the package-wide logger. A nil logger silences output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// NewLogger builds a zap logger from cfg.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "json" {
		zc.Encoding = "json"
	} else {
		zc.Encoding = "console"
	}
	// No sampling: every per-frame debug line is kept.
	zc.Sampling = nil

	return zc.Build(zap.AddCaller())
}
