package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/bridge/canvas"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebUIKit/internal/render"
	"github.com/GriffinCanCode/WebUIKit/internal/scene"
	"github.com/GriffinCanCode/WebUIKit/internal/window"
	"github.com/GriffinCanCode/WebUIKit/internal/window/assets"
	"github.com/GriffinCanCode/WebUIKit/internal/window/remote"
	"github.com/GriffinCanCode/WebUIKit/internal/window/sandbox"
)

func main() {
	cfg := config.LoadOrDefault()

	// Flags override env
	backend := flag.String("backend", cfg.Backend, "Backend: sandbox or remote")
	host := flag.String("host", cfg.Server.Host, "Page server host (remote backend)")
	port := flag.String("port", cfg.Server.Port, "Page server port (remote backend)")
	htmlPath := flag.String("html", cfg.Server.PagePath, "Optional page to inject the bridge into")
	assetsPort := flag.String("assets-port", cfg.Assets.Port, "Asset server port")
	assetsDir := flag.String("assets", cfg.Assets.Dir, "Directory to preload into the asset server")
	fps := flag.Float64("fps", cfg.Render.FrameRate, "Frame rate limit")
	scenePath := flag.String("scene", cfg.Render.Scene, "YAML scene file")
	duration := flag.Duration("duration", 0, "Stop after this long (0 runs until signalled)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Backend = *backend
	cfg.Server.Host = *host
	cfg.Server.Port = *port
	cfg.Server.PagePath = *htmlPath
	cfg.Assets.Port = *assetsPort
	cfg.Assets.Dir = *assetsDir
	cfg.Render.FrameRate = *fps
	cfg.Render.Scene = *scenePath
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	metrics := monitoring.NewMetrics()
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Sample:      cfg.Logging.Sample,
		OnEntry:     metrics.RecordLogEntry,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	if err := run(ctx, cfg, logger.Logger, metrics); err != nil {
		logger.Fatal("WebUIKit stopped with error", zap.Error(err))
	}
	logger.Info("Shut down")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *monitoring.Metrics) error {
	srv, err := startAssets(ctx, cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer closeWithTimeout(logger, "assets", srv.Close)

	var (
		exec window.Executor
		rt   *sandbox.Runtime
	)
	switch cfg.Backend {
	case "remote":
		page, err := startRemote(ctx, cfg, logger, metrics)
		if err != nil {
			return err
		}
		defer closeWithTimeout(logger, "remote", page.Close)
		exec = page
	default:
		rt, err = sandbox.New(sandbox.Config{
			Timeout:          cfg.Sandbox.Timeout,
			EnableConsole:    cfg.Sandbox.Console,
			Width:            cfg.Window.Width,
			Height:           cfg.Window.Height,
			DevicePixelRatio: 1,
		},
			sandbox.WithLogger(logger),
			sandbox.WithImageResolver(sandbox.BytesResolver(srv.Resolve)),
			sandbox.WithRecording(cfg.Sandbox.RecordLimit),
		)
		if err != nil {
			return fmt.Errorf("start sandbox: %w", err)
		}
		defer rt.Close()
		exec = rt
	}

	win := window.New(exec,
		window.WithLogger(logger),
		window.WithMetrics(metrics),
		window.WithAssets(srv),
		window.WithBackendName(cfg.Backend),
	)
	c := canvas.New(win)
	if err := c.CreateMainCanvas(ctx); err != nil {
		return fmt.Errorf("create main canvas: %w", err)
	}

	policy, err := render.ParsePolicy(cfg.Render.MaxPolicy)
	if err != nil {
		return err
	}
	manager := render.NewManager(c, render.WithMax(cfg.Render.MaxDuration, policy))

	if cfg.Render.Scene != "" {
		rects, err := scene.Load(cfg.Render.Scene)
		if err != nil {
			return err
		}
		for _, r := range rects {
			manager.Items().Add(r)
		}
		logger.Info("Scene loaded", zap.String("path", cfg.Render.Scene), zap.Int("rectangles", len(rects)))
	}

	w, h, err := win.InnerSize(ctx)
	if err != nil {
		return fmt.Errorf("read viewport: %w", err)
	}
	demo := newBouncer(w, h)
	manager.Items().Add(demo.Rect)

	err = render.NewDriver(manager, cfg.Render.FrameRate).Run(ctx, func(ctx context.Context, _ uint64) error {
		return c.ClearRect(ctx, 0, 0, demo.Width, demo.Height)
	})
	if rt != nil {
		logger.Info("Sandbox draw calls",
			zap.Uint64("total", rt.CallCount()),
			zap.Int("retained", len(rt.Calls())))
	}
	return err
}

func startAssets(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *monitoring.Metrics) (*assets.Server, error) {
	port, err := strconv.Atoi(cfg.Assets.Port)
	if err != nil {
		return nil, fmt.Errorf("assets port: %w", err)
	}
	srv := assets.New(assets.Config{
		Host:    cfg.Assets.Host,
		Port:    port,
		Dir:     cfg.Assets.Dir,
		Pattern: cfg.Assets.Pattern,
	}, assets.WithLogger(logger), assets.WithMetrics(metrics))

	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("start assets: %w", err)
	}
	if cfg.Assets.Dir != "" {
		n, err := srv.Preload(ctx)
		if err != nil {
			closeWithTimeout(logger, "assets", srv.Close)
			return nil, fmt.Errorf("preload assets: %w", err)
		}
		logger.Info("Assets preloaded", zap.String("dir", cfg.Assets.Dir), zap.Int("files", n))
	}
	return srv, nil
}

func startRemote(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *monitoring.Metrics) (*remote.Server, error) {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	page := remote.New(remote.Config{
		Host:     cfg.Server.Host,
		Port:     port,
		HTMLPath: cfg.Server.PagePath,
	}, remote.WithLogger(logger), remote.WithMetrics(metrics))

	if err := page.Start(); err != nil {
		return nil, fmt.Errorf("start page server: %w", err)
	}
	logger.Info("Open the page to attach a browser", zap.String("url", page.URL()))

	if err := page.WaitConnected(ctx); err != nil {
		closeWithTimeout(logger, "remote", page.Close)
		return nil, fmt.Errorf("wait for browser: %w", err)
	}
	return page, nil
}

func closeWithTimeout(logger *zap.Logger, name string, closeFn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		logger.Warn("Shutdown error", zap.String("component", name), zap.Error(err))
	}
}
