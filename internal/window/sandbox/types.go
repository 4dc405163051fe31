package sandbox

import (
	"errors"
	"time"
)

var (
	ErrClosed  = errors.New("sandbox: runtime is closed")
	ErrTimeout = errors.New("sandbox: execution timeout exceeded")
)

// Config defines sandbox configuration
type Config struct {
	Timeout          time.Duration // Per-script execution timeout
	EnableConsole    bool          // Capture console.log/warn/error/info
	Width            int           // window.innerWidth
	Height           int           // window.innerHeight
	DevicePixelRatio float64       // window.devicePixelRatio
}

// DefaultConfig returns the configuration used by the demo and tests
func DefaultConfig() Config {
	return Config{
		Timeout:          5 * time.Second,
		EnableConsole:    true,
		Width:            800,
		Height:           600,
		DevicePixelRatio: 1,
	}
}

// LogEntry represents console output
type LogEntry struct {
	Level   string    // log, warn, error, info
	Message string    // Space-joined arguments
	Time    time.Time // Timestamp
}

// DrawCall is one recorded context operation. Target is "ctx" for method
// calls and "set" for attribute writes.
type DrawCall struct {
	Target string
	Method string
	Args   []any
}

// IsSet reports whether the call is an attribute write.
func (c DrawCall) IsSet() bool { return c.Target == "set" }
