// Package logging builds the zap logger shared by every component.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
)

// New creates a structured logger appropriate for the environment.
// Production uses JSON, everything else the console encoder; LOG_FORMAT
// overrides the choice and LOG_LEVEL sets the minimum level.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		zc.Level = level
	}

	switch format := strings.ToLower(cfg.Log.Format); format {
	case "":
	case "json", "console":
		zc.Encoding = format
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Log.Format)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Named(cfg.App.Name), nil
}
