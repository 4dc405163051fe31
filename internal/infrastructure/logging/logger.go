package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger.
type Logger struct {
	*zap.Logger
}

// Config defines logger configuration.
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Development bool
	OutputPaths []string

	// Sample thins repeated production messages, such as per-frame errors
	// from the render loop. Ignored in development.
	Sample bool

	// OnEntry sees the level of every entry written.
	OnEntry func(level string)
}

// Sampling window used when Config.Sample is set: the first samplePerSecond
// entries with the same message are kept each second, then one in sampleAfter.
const (
	samplePerSecond = 20
	sampleAfter     = 100
)

// New creates a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig = productionEncoder()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig = developmentEncoder()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	if cfg.Sample && !cfg.Development {
		zapCfg.Sampling = &zap.SamplingConfig{Initial: samplePerSecond, Thereafter: sampleAfter}
	}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}

	var opts []zap.Option
	if cfg.OnEntry != nil {
		onEntry := cfg.OnEntry
		opts = append(opts, zap.Hooks(func(e zapcore.Entry) error {
			onEntry(e.Level.String())
			return nil
		}))
	}

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Component names l after a component and attaches fields to every entry.
// A nil l yields a no-op logger.
func Component(l *zap.Logger, name string, fields ...zap.Field) *zap.Logger {
	named := OrNop(l).Named(name)
	if len(fields) > 0 {
		named = named.With(fields...)
	}
	return named
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return l, nil
}

func productionEncoder() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	return enc
}

func developmentEncoder() zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return enc
}
