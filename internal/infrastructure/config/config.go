package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Backend string `envconfig:"WEBUIKIT_BACKEND" default:"sandbox"`
	Window  WindowConfig
	Server  ServerConfig
	Assets  AssetsConfig
	Render  RenderConfig
	Sandbox SandboxConfig
	Logging LogConfig
}

// WindowConfig describes the canvas surface.
type WindowConfig struct {
	Width  int    `envconfig:"WINDOW_WIDTH" default:"800"`
	Height int    `envconfig:"WINDOW_HEIGHT" default:"600"`
	Title  string `envconfig:"WINDOW_TITLE" default:"WebUIKit"`
}

// ServerConfig holds the page and websocket server settings used by the
// remote backend.
type ServerConfig struct {
	Host     string `envconfig:"WEBUIKIT_HOST" default:"127.0.0.1"`
	Port     string `envconfig:"WEBUIKIT_PORT" default:"8700"`
	PagePath string `envconfig:"WEBUIKIT_HTML_PATH"`
}

// AssetsConfig holds the binary asset server settings.
type AssetsConfig struct {
	Host    string `envconfig:"ASSETS_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"ASSETS_PORT" default:"8701"`
	Dir     string `envconfig:"ASSETS_DIR"`
	Pattern string `envconfig:"ASSETS_PATTERN" default:"**/*.{png,jpg,jpeg,gif,webp,svg}"`
}

// RenderConfig holds frame loop settings.
type RenderConfig struct {
	FrameRate   float64       `envconfig:"RENDER_FPS" default:"60"`
	MaxDuration time.Duration `envconfig:"RENDER_MAX" default:"0s"`
	MaxPolicy   string        `envconfig:"RENDER_MAX_POLICY" default:"wrap"`
	Scene       string        `envconfig:"RENDER_SCENE"`
}

// SandboxConfig holds the in-process script runtime settings.
type SandboxConfig struct {
	Timeout time.Duration `envconfig:"SANDBOX_TIMEOUT" default:"5s"`
	Console bool          `envconfig:"SANDBOX_CONSOLE" default:"true"`
	// Draw calls kept for inspection; 0 only counts them, -1 keeps all
	RecordLimit int `envconfig:"SANDBOX_RECORD" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Sample      bool   `envconfig:"LOG_SAMPLE" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot express in tags.
func (c *Config) Validate() error {
	switch c.Backend {
	case "sandbox", "remote":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.Render.MaxPolicy {
	case "wrap", "clamp":
	default:
		return fmt.Errorf("config: unknown max policy %q", c.Render.MaxPolicy)
	}
	if c.Render.FrameRate <= 0 {
		return fmt.Errorf("config: frame rate must be positive, got %v", c.Render.FrameRate)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Backend: "sandbox",
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "WebUIKit",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8700",
		},
		Assets: AssetsConfig{
			Host:    "127.0.0.1",
			Port:    "8701",
			Pattern: "**/*.{png,jpg,jpeg,gif,webp,svg}",
		},
		Render: RenderConfig{
			FrameRate: 60,
			MaxPolicy: "wrap",
		},
		Sandbox: SandboxConfig{
			Timeout: 5 * time.Second,
			Console: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			Sample:      true,
		},
	}
}
