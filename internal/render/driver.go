package render

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
)

// FrameFunc runs at the start of each frame, inside the frame's batch and
// before items are updated. frame counts from zero.
type FrameFunc func(ctx context.Context, frame uint64) error

// Driver runs Manager frames at a limited rate
type Driver struct {
	manager *Manager
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewDriver creates a driver that renders at most fps frames per second.
// A non-positive fps renders as fast as the backend allows.
func NewDriver(m *Manager, fps float64) *Driver {
	limit := rate.Inf
	if fps > 0 && !math.IsInf(fps, 1) {
		limit = rate.Limit(fps)
	}
	return &Driver{
		manager: m,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logging.Component(m.logger, "driver"),
	}
}

// Run renders frames until ctx is done, returning nil in that case. Each
// frame, including frame, is sent as a single batch.
func (d *Driver) Run(ctx context.Context, frame FrameFunc) error {
	win := d.manager.Canvas().Window()
	d.logger.Info("Render loop started", zap.Float64("fps", float64(d.limiter.Limit())))

	for n := uint64(0); ; n++ {
		if err := d.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				d.logger.Info("Render loop stopped", zap.Uint64("frames", n))
				return nil
			}
			return err
		}

		err := win.Batch(ctx, func() error {
			if frame != nil {
				if err := frame(ctx, n); err != nil {
					return err
				}
			}
			return d.manager.Render(ctx)
		})
		if err != nil {
			if ctx.Err() != nil {
				d.logger.Info("Render loop stopped", zap.Uint64("frames", n+1))
				return nil
			}
			return err
		}
	}
}
