// Package testutil provides test doubles for script executors.
package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockExecutor is a testify mock for window.Executor.
type MockExecutor struct {
	mock.Mock
}

// ExecuteScript implements window.Executor.
func (m *MockExecutor) ExecuteScript(ctx context.Context, script string) (any, error) {
	args := m.Called(ctx, script)
	return args.Get(0), args.Error(1)
}

// Recorder is an executor that stores every script and answers from a
// fixed table keyed by script text.
type Recorder struct {
	mu      sync.Mutex
	scripts []string
	answers map[string]any
	fail    map[string]error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		answers: make(map[string]any),
		fail:    make(map[string]error),
	}
}

// Answer makes script return v.
func (r *Recorder) Answer(script string, v any) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers[script] = v
	return r
}

// Fail makes script return err.
func (r *Recorder) Fail(script string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[script] = err
	return r
}

// ExecuteScript implements window.Executor.
func (r *Recorder) ExecuteScript(_ context.Context, script string) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script)
	if err, ok := r.fail[script]; ok {
		return nil, err
	}
	return r.answers[script], nil
}

// Scripts returns a copy of every script received so far.
func (r *Recorder) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scripts...)
}

// Last returns the most recent script, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.scripts) == 0 {
		return ""
	}
	return r.scripts[len(r.scripts)-1]
}

// Reset clears the recorded scripts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = nil
}
