package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("write: broken pipe")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(threshold int) (*Breaker, *fakeClock, *[]State) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []State
	b := New("test", Settings{
		Threshold: threshold,
		Cooldown:  time.Second,
		Now:       clock.Now,
		OnStateChange: func(_ string, _, to State) {
			transitions = append(transitions, to)
		},
	})
	return b, clock, &transitions
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name     string
		requests []bool // true = success, false = failure
		want     State
	}{
		{"stays closed on successes", []bool{true, true, true}, StateClosed},
		{"stays closed below threshold", []bool{false, false}, StateClosed},
		{"opens at threshold", []bool{false, false, false}, StateOpen},
		{"success resets count", []bool{false, false, true, false, false}, StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _ := newTestBreaker(3)
			for _, ok := range tt.requests {
				_ = b.Execute(func() error {
					if ok {
						return nil
					}
					return errTransport
				})
			}
			assert.Equal(t, tt.want, b.State())
		})
	}
}

func TestBreakerFailsFastWhileOpen(t *testing.T) {
	b, _, _ := newTestBreaker(1)
	require.ErrorIs(t, b.Execute(func() error { return errTransport }), errTransport)

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b, clock, transitions := newTestBreaker(1)
	_ = b.Execute(func() error { return errTransport })

	clock.Advance(time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	// A failing probe reopens immediately.
	require.ErrorIs(t, b.Execute(func() error { return errTransport }), errTransport)
	assert.Equal(t, StateOpen, b.State())

	clock.Advance(time.Second)
	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Failures())

	assert.Equal(t, []State{StateOpen, StateOpen, StateClosed}, *transitions)
}

func TestBreakerSingleProbe(t *testing.T) {
	b, clock, _ := newTestBreaker(1)
	_ = b.Execute(func() error { return errTransport })
	clock.Advance(time.Second)

	err := b.Execute(func() error {
		return b.Execute(func() error { return nil })
	})
	assert.ErrorIs(t, err, ErrProbePending)
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	b, _, _ := newTestBreaker(1)

	assert.Panics(t, func() {
		_ = b.Execute(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerReset(t *testing.T) {
	b, _, _ := newTestBreaker(1)
	_ = b.Execute(func() error { return errTransport })

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "test", b.Name())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
