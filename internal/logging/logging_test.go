package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/kinetic/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{level: "debug", development: true, enabled: zapcore.DebugLevel, disabled: zapcore.InvalidLevel},
		{level: "info", enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel},
		{level: "warn", enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := logging.New(tt.level, tt.development)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.disabled != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.disabled))
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New("chatty", false)
	assert.ErrorContains(t, err, "chatty")

	assert.Panics(t, func() { logging.Must("chatty", false) })
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinetic.log")
	logger, err := logging.File("info", path)
	require.NoError(t, err)

	logger.Info("tick", zap.Int("entities", 3))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"tick"`)
	assert.Contains(t, string(data), `"entities":3`)
	assert.NotContains(t, string(data), "hidden")
}
