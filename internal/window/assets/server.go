package assets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebUIKit/internal/shared/id"
)

var (
	ErrNotFound   = errors.New("assets: not found")
	ErrNotStarted = errors.New("assets: server not started")
)

// Config controls where the server listens and what it preloads
type Config struct {
	Host    string
	Port    int    // 0 picks a free port
	Dir     string // Optional directory to preload
	Pattern string // doublestar pattern relative to Dir
}

// DefaultConfig listens on a free loopback port
func DefaultConfig() Config {
	return Config{
		Host:    "127.0.0.1",
		Pattern: "**/*",
	}
}

type entry struct {
	data        []byte
	contentType string
}

// Server stores payloads in memory and serves them by path
type Server struct {
	config  Config
	logger  *zap.Logger
	metrics *monitoring.Metrics
	handler http.Handler

	mu    sync.RWMutex
	files map[string]entry

	srvMu    sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = logging.OrNop(l) }
}

// WithMetrics sets the metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a server. Call Start to begin listening.
func New(cfg Config, opts ...Option) *Server {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultConfig().Pattern
	}

	s := &Server{
		config: cfg,
		logger: zap.NewNop(),
		files:  make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "assets")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(s.metrics, "assets"))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	router.GET("/*path", s.serve)
	router.HEAD("/*path", s.serve)

	s.handler = gzhttp.GzipHandler(router)
	return s
}

// Handler returns the HTTP handler, gzip included
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens and serves in the background
func (s *Server) Start() error {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.srv != nil {
		return nil
	}

	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("assets listen %s: %w", addr, err)
	}

	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Asset server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Asset server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Close shuts the server down
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.srv == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	s.srv = nil
	s.listener = nil
	return err
}

// BaseURL returns the scheme and address the server is reachable at
func (s *Server) BaseURL() (string, error) {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.listener == nil {
		return "", ErrNotStarted
	}
	return "http://" + s.listener.Addr().String(), nil
}

// URL returns the absolute URL for path
func (s *Server) URL(path id.AssetPath) (string, error) {
	base, err := s.BaseURL()
	if err != nil {
		return "", err
	}
	return base + path.String(), nil
}

// Put stores data under path, replacing any previous payload
func (s *Server) Put(path string, data []byte) id.AssetPath {
	path = normalize(path)
	mt := mimetype.Detect(data)

	s.mu.Lock()
	s.files[path] = entry{data: data, contentType: mt.String()}
	s.mu.Unlock()

	s.logger.Debug("Asset stored",
		zap.String("path", path),
		zap.String("type", mt.String()),
		zap.Int("bytes", len(data)),
	)
	return id.AssetPath(path)
}

// Add stores data under a fresh path whose extension matches the content
func (s *Server) Add(data []byte) id.AssetPath {
	path := id.NewAssetPath().String() + mimetype.Detect(data).Extension()
	return s.Put(path, data)
}

// Remove deletes the payload at path
func (s *Server) Remove(path id.AssetPath) {
	p := normalize(path.String())

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
}

// Lookup returns the payload stored at path
func (s *Server) Lookup(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.files[normalize(path)]
	return e.data, ok
}

// ContentType returns the sniffed MIME type of the payload at path
func (s *Server) ContentType(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.files[normalize(path)]
	return e.contentType, ok
}

// Resolve looks up an absolute URL served by this server
func (s *Server) Resolve(url string) ([]byte, bool) {
	base, err := s.BaseURL()
	if err == nil && strings.HasPrefix(url, base) {
		url = strings.TrimPrefix(url, base)
	}
	return s.Lookup(url)
}

// Len returns the number of stored payloads
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Preload stores every file under Config.Dir matching Config.Pattern
func (s *Server) Preload(ctx context.Context) (int, error) {
	root := s.config.Dir
	if root == "" {
		return 0, nil
	}
	if !doublestar.ValidatePattern(s.config.Pattern) {
		return 0, fmt.Errorf("invalid asset pattern %q", s.config.Pattern)
	}

	var (
		mu    sync.Mutex
		count int
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(s.config.Pattern, rel)
		if err != nil || !ok {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		s.Put(rel, data)

		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("preload %s: %w", root, err)
	}

	s.logger.Info("Assets preloaded", zap.String("dir", root), zap.Int("count", count))
	return count, nil
}

func (s *Server) serve(c *gin.Context) {
	s.mu.RLock()
	e, ok := s.files[normalize(c.Param("path"))]
	s.mu.RUnlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, e.contentType, e.data)
	s.metrics.RecordAssetBytes(len(e.data))
}

func normalize(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
