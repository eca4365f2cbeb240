package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dhima/backoffice-workflows/pkg/config"
)

func TestNew_LevelPerEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		enabled     zapcore.Level
		disabled    zapcore.Level
		wantDisable bool
	}{
		{name: "development debug", opts: Options{Environment: "development", Level: "debug"}, enabled: zap.DebugLevel},
		{name: "production info", opts: Options{Environment: "production", Level: "info"}, enabled: zap.InfoLevel, disabled: zap.DebugLevel, wantDisable: true},
		{name: "unparsable level defaults to info", opts: Options{Environment: "production", Level: "loud"}, enabled: zap.InfoLevel, disabled: zap.DebugLevel, wantDisable: true},
		{name: "console in production", opts: Options{Environment: "production", Level: "warn", Encoding: "console"}, enabled: zap.WarnLevel, disabled: zap.InfoLevel, wantDisable: true},
		{name: "unknown encoding ignored", opts: Options{Environment: "production", Level: "info", Encoding: "xml"}, enabled: zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			require.NoError(t, err)

			core := Zap(logger).Core()
			assert.True(t, core.Enabled(tt.enabled))
			if tt.wantDisable {
				assert.False(t, core.Enabled(tt.disabled))
			}
		})
	}
}

func TestNewLogger_WrapsNew(t *testing.T) {
	logger, err := NewLogger("development", "debug")
	require.NoError(t, err)

	assert.True(t, Zap(logger).Core().Enabled(zap.DebugLevel))
}

func TestFromConfig_UsesConfiguredLevel(t *testing.T) {
	cfg := config.App{Environment: "production", LogLevel: "error", LogEncoding: "json"}

	logger, err := FromConfig(cfg, "scheduler")
	require.NoError(t, err)

	core := Zap(logger).Core()
	assert.True(t, core.Enabled(zap.ErrorLevel))
	assert.False(t, core.Enabled(zap.WarnLevel))
}

func TestZapLogger_WithAttachesFieldsToEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var logger Logger = &zapLogger{Logger: zap.New(core)}

	child := logger.With(zap.String("definition_id", "def-1"))
	child.Info("rule evaluated", zap.Bool("matched", true))
	logger.Warn("parent entry")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "rule evaluated", entries[0].Message)
	assert.Equal(t, map[string]any{"definition_id": "def-1", "matched": true}, entries[0].ContextMap())
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Empty(t, entries[1].ContextMap())
}

func TestZap_ReturnsUnderlyingLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := &zapLogger{Logger: zap.New(core)}

	Zap(logger).Info("via zap")

	assert.Equal(t, 1, logs.Len())
}

func TestNoOpLogger_DiscardsEverything(t *testing.T) {
	logger := NewNoOpLogger()

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	child := logger.With(zap.String("k", "v"))

	assert.NotNil(t, child)
	assert.NoError(t, logger.Sync())
	assert.False(t, Zap(logger).Core().Enabled(zap.ErrorLevel))
}
