package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebUIKit/internal/infrastructure/resilience"
)

var (
	ErrNotConnected = errors.New("remote: no page connected")
	ErrClosed       = errors.New("remote: server closed")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Page and host share loopback
	},
}

// Config controls the page server
type Config struct {
	Host     string
	Port     int    // 0 picks a free port
	HTMLPath string // Optional user page; the bridge is injected into it
}

// DefaultConfig listens on a free loopback port with the built-in page
func DefaultConfig() Config {
	return Config{Host: "127.0.0.1"}
}

// Server serves the page and executes scripts in whichever page is connected
type Server struct {
	config  Config
	logger  *zap.Logger
	metrics *monitoring.Metrics
	breaker *resilience.Breaker
	router  *gin.Engine

	mu        sync.Mutex
	current   *conn
	pending   map[string]chan Message
	connected chan struct{}
	closed    bool

	invokeMu sync.RWMutex
	invoker  func(name string, args []any) (any, error)

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

// WithMetrics sets the metrics collector; it is also served on /metrics
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithBreaker replaces the default send breaker
func WithBreaker(b *resilience.Breaker) Option {
	return func(s *Server) { s.breaker = b }
}

// New creates a server. Call Start to begin listening.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{
		config:    cfg,
		logger:    zap.NewNop(),
		pending:   make(map[string]chan Message),
		connected: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "remote")

	if s.breaker == nil {
		s.breaker = resilience.New("remote-send", resilience.Settings{
			Threshold: 3,
			Cooldown:  2 * time.Second,
			OnStateChange: func(name string, from, to resilience.State) {
				s.logger.Warn("Breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		})
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(s.metrics, "page"))

	router.GET("/", s.handlePage)
	router.GET("/health", s.handleHealth)
	router.GET("/ws", s.handleConnection)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	s.router = router
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
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
		return fmt.Errorf("page listen %s: %w", addr, err)
	}

	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Page server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Page server listening", zap.String("url", "http://"+ln.Addr().String()+"/"))
	return nil
}

// URL returns the page URL, or "" before Start
func (s *Server) URL() string {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + "/"
}

// Close disconnects the page and stops the HTTP server
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	c := s.current
	s.current = nil
	s.mu.Unlock()

	if c != nil {
		c.close()
	}

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

// WaitConnected blocks until a page has connected
func (s *Server) WaitConnected(ctx context.Context) error {
	s.mu.Lock()
	ch := s.connected
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connected reports whether a page is attached
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Viewport returns the size reported by the page in its hello message
func (s *Server) Viewport() (width, height, dpr float64, err error) {
	s.mu.Lock()
	c := s.current
	s.mu.Unlock()

	if c == nil {
		return 0, 0, 0, ErrNotConnected
	}
	width, height, dpr = c.viewport()
	return width, height, dpr, nil
}

// SetInvoker routes page-side webuikit.invoke calls to fn
func (s *Server) SetInvoker(fn func(name string, args []any) (any, error)) {
	s.invokeMu.Lock()
	defer s.invokeMu.Unlock()
	s.invoker = fn
}

// ExecuteScript sends script to the page and waits for its result
func (s *Server) ExecuteScript(ctx context.Context, script string) (any, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	c := s.current
	if c == nil {
		s.mu.Unlock()
		return nil, ErrNotConnected
	}
	reqID := uuid.NewString()
	reply := make(chan Message, 1)
	s.pending[reqID] = reply
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, reqID)
		s.mu.Unlock()
	}()

	err := s.breaker.Execute(func() error {
		return c.send(Message{Type: TypeEval, ID: reqID, Script: script})
	})
	if err != nil {
		return nil, fmt.Errorf("send eval: %w", err)
	}
	s.metrics.RecordWSMessage("out", TypeEval)

	select {
	case msg := <-reply:
		if msg.Error != "" {
			return nil, &EvalError{Message: msg.Error}
		}
		return msg.Value, nil
	case <-c.closed:
		if s.isClosed() {
			return nil, ErrClosed
		}
		return nil, ErrNotConnected
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) handlePage(c *gin.Context) {
	var html []byte
	if s.config.HTMLPath != "" {
		data, err := os.ReadFile(s.config.HTMLPath)
		if err != nil {
			s.logger.Error("Failed to read page", zap.String("path", s.config.HTMLPath), zap.Error(err))
			c.String(http.StatusInternalServerError, "failed to read page")
			return
		}
		html = data
	}

	page, err := Page(html)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"connected": s.Connected(),
	})
}

// handleConnection upgrades and runs the read loop for one page
func (s *Server) handleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	pc := newConn(ws)
	s.attach(pc)
	defer s.detach(pc)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		msg, err := Decode(data)
		if err != nil {
			s.logger.Warn("Malformed page message", zap.Error(err))
			continue
		}
		s.metrics.RecordWSMessage("in", msg.Type)
		s.dispatch(pc, msg)
	}
}

func (s *Server) dispatch(pc *conn, msg Message) {
	switch msg.Type {
	case TypeHello:
		pc.setViewport(msg.Width, msg.Height, msg.DPR)
		s.mu.Lock()
		select {
		case <-s.connected:
		default:
			close(s.connected)
		}
		s.mu.Unlock()
		s.logger.Info("Page connected",
			zap.Float64("width", msg.Width),
			zap.Float64("height", msg.Height),
			zap.Float64("dpr", msg.DPR),
		)

	case TypeResult:
		s.mu.Lock()
		reply, ok := s.pending[msg.ID]
		s.mu.Unlock()
		if !ok {
			return
		}
		select {
		case reply <- msg:
		default:
			s.logger.Warn("Duplicate eval result", zap.String("id", msg.ID))
		}

	case TypeInvoke:
		go s.handleInvoke(pc, msg)

	default:
		s.logger.Warn("Unknown page message", zap.String("type", msg.Type))
	}
}

func (s *Server) handleInvoke(pc *conn, msg Message) {
	s.invokeMu.RLock()
	fn := s.invoker
	s.invokeMu.RUnlock()

	out := Message{Type: TypeInvoked, ID: msg.ID}
	if fn == nil {
		out.Error = fmt.Sprintf("no invoker for %q", msg.Name)
	} else if v, err := fn(msg.Name, msg.Args); err != nil {
		out.Error = err.Error()
	} else {
		out.Value = v
	}

	if err := pc.send(out); err != nil {
		s.logger.Warn("Failed to answer invoke", zap.String("name", msg.Name), zap.Error(err))
		return
	}
	s.metrics.RecordWSMessage("out", TypeInvoked)
}

func (s *Server) attach(pc *conn) {
	s.mu.Lock()
	old := s.current
	s.current = pc
	s.mu.Unlock()

	if old != nil {
		s.logger.Info("Replacing connected page")
		old.close()
	}
	s.metrics.SetWSConnections(1)
}

func (s *Server) detach(pc *conn) {
	pc.close()

	s.mu.Lock()
	if s.current != pc {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.connected = make(chan struct{})
	s.mu.Unlock()

	s.metrics.SetWSConnections(0)
	s.logger.Info("Page disconnected")
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
