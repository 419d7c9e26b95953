package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger from cfg. Logs go to stderr unless a file is
// configured, so they never mix with REPL output on stdout.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var z zap.Config
	if cfg.Development {
		z = zap.NewDevelopmentConfig()
	} else {
		z = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
		}
		z.Level = lvl
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	z.OutputPaths = []string{out}
	z.ErrorOutputPaths = []string{"stderr"}

	logger, err := z.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
