// Package id provides ULID-based name generation for script-side bindings.
//
// Every value the host materializes in the script context (gradients, paths,
// images, callbacks) lives under a global name. Names are:
//   - Unique: ULIDs never collide across windows or restarts
//   - Valid identifiers: prefix + Crockford base32, usable as bare JS names
//   - Sortable: creation order is visible when inspecting globals
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// HandleName names a script-side value owned by a handle
type HandleName string

// CallbackName names a host callable reachable from script
type CallbackName string

// WindowID identifies a host window
type WindowID string

// AssetPath names a binary asset served to the script context
type AssetPath string

const (
	HandlePrefix   = "__wuk_h"
	CallbackPrefix = "__wuk_cb"
	WindowPrefix   = "win"
	AssetPrefix    = "asset"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewHandleName generates a global name for a script handle
func NewHandleName() HandleName {
	return HandleName(Default().GenerateWithPrefix(HandlePrefix))
}

// NewCallbackName generates a registry key for a one-shot callback
func NewCallbackName() CallbackName {
	return CallbackName(Default().GenerateWithPrefix(CallbackPrefix))
}

// NewWindowID generates a window ID
func NewWindowID() WindowID {
	return WindowID(Default().GenerateWithPrefix(WindowPrefix))
}

// NewAssetPath generates a URL path for an anonymous asset
func NewAssetPath() AssetPath {
	return AssetPath("/" + strings.ToLower(Default().GenerateWithPrefix(AssetPrefix)))
}

func (n HandleName) String() string   { return string(n) }
func (n CallbackName) String() string { return string(n) }
func (n WindowID) String() string     { return string(n) }
func (p AssetPath) String() string    { return string(p) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Timestamp extracts the creation time from a prefixed or bare ULID
func Timestamp(id string) (time.Time, error) {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	parsed, err := ulid.ParseStrict(strings.ToUpper(id))
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
