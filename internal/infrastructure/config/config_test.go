package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "sandbox", cfg.Backend)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "8700", cfg.Server.Port)
	assert.Equal(t, "8701", cfg.Assets.Port)
	assert.Equal(t, 60.0, cfg.Render.FrameRate)
	assert.Equal(t, "wrap", cfg.Render.MaxPolicy)
	assert.Equal(t, 5*time.Second, cfg.Sandbox.Timeout)
	assert.Equal(t, 0, cfg.Sandbox.RecordLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Sample)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"WEBUIKIT_BACKEND":  "remote",
		"WINDOW_WIDTH":      "1024",
		"WINDOW_TITLE":      "demo",
		"WEBUIKIT_PORT":     "9000",
		"ASSETS_DIR":        "/srv/assets",
		"RENDER_FPS":        "30",
		"RENDER_MAX":        "5s",
		"RENDER_MAX_POLICY": "clamp",
		"SANDBOX_TIMEOUT":   "250ms",
		"LOG_LEVEL":         "debug",
		"LOG_DEV":           "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "remote", cfg.Backend)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/srv/assets", cfg.Assets.Dir)
	assert.Equal(t, 30.0, cfg.Render.FrameRate)
	assert.Equal(t, 5*time.Second, cfg.Render.MaxDuration)
	assert.Equal(t, "clamp", cfg.Render.MaxPolicy)
	assert.Equal(t, 250*time.Millisecond, cfg.Sandbox.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Backend = "electron" }, true},
		{"unknown policy", func(c *Config) { c.Render.MaxPolicy = "bounce" }, true},
		{"zero fps", func(c *Config) { c.Render.FrameRate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	t.Setenv("WEBUIKIT_BACKEND", "electron")

	cfg := LoadOrDefault()
	assert.Equal(t, "sandbox", cfg.Backend)
}
