package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{level: "", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{level: "debug", enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{level: "warn", enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{level: "ERROR", enabled: zapcore.ErrorLevel, muted: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(Config{Level: tt.level, OutputPaths: []string{filepath.Join(t.TempDir(), "log")}})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.ErrorContains(t, err, "chatty")
}

func TestOnEntrySeesEveryLevel(t *testing.T) {
	var seen []string
	logger, err := New(Config{
		Level:       "debug",
		Development: true,
		OutputPaths: []string{filepath.Join(t.TempDir(), "log")},
		OnEntry:     func(level string) { seen = append(seen, level) },
	})
	require.NoError(t, err)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Named("render").Error("e")

	assert.Equal(t, []string{"debug", "info", "warn", "error"}, seen)
}

func TestSampleDropsRepeats(t *testing.T) {
	var count int
	logger, err := New(Config{
		Level:       "info",
		Sample:      true,
		OutputPaths: []string{filepath.Join(t.TempDir(), "log")},
		OnEntry:     func(string) { count++ },
	})
	require.NoError(t, err)

	for i := 0; i < samplePerSecond*3; i++ {
		logger.Error("Frame failed")
	}
	assert.Less(t, count, samplePerSecond*3)
	assert.GreaterOrEqual(t, count, samplePerSecond)
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	Component(zap.New(core), "window", zap.String("window", "w1")).Info("Ready")
	Component(nil, "sandbox").Info("dropped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "window", entry.LoggerName)
	assert.Equal(t, "w1", entry.ContextMap()["window"])
}

func TestConstructorsNeverReturnNil(t *testing.T) {
	assert.NotNil(t, NewNop().Logger)
	assert.NotNil(t, OrNop(nil))
}
