// Package logging builds the zap logger used across tally.
//
// The dashboard owns the terminal, so log output always goes to a file.
// When no file is configured the logger discards everything.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/tally/internal/config"
)

// Version is reported on every JSON log line.
var Version = "dev"

// New builds a logger from the log section of the dashboard config.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.File) == "" || cfg.Level == "none" {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.CallerKey = ""
	zcfg.DisableStacktrace = true
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil

	switch cfg.Format {
	case "", "json":
	case "text":
		zcfg.Encoding = "console"
		zcfg.DisableCaller = true
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if zcfg.Encoding == "json" {
		log = log.With(zap.String("version", Version))
	}
	return log, nil
}

// ParseLevel maps a config level name onto a zap level. "none" parses as
// the highest level; New treats it as a request for a no-op logger.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "none":
		return zap.FatalLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}
