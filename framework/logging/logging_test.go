package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/logging"
)

func cfg(env, level, format string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test", Env: env},
		Log: config.LogConfig{Level: level, Format: format},
	}
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		debugOn   bool
		warnOn    bool
		wantError bool
	}{
		{name: "local debug", cfg: cfg("local", "debug", ""), debugOn: true, warnOn: true},
		{name: "production info", cfg: cfg("production", "info", ""), debugOn: false, warnOn: true},
		{name: "error only", cfg: cfg("local", "error", "json"), debugOn: false, warnOn: false},
		{name: "bad level", cfg: cfg("local", "loud", ""), wantError: true},
		{name: "bad format", cfg: cfg("local", "info", "xml"), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.cfg)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.warnOn, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}

func TestNew_DefaultLevelFollowsEnvironment(t *testing.T) {
	dev, err := logging.New(cfg("local", "", ""))
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	prod, err := logging.New(cfg("production", "", ""))
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
}
