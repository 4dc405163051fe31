package remote

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// conn serializes writes to one page connection
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
	closed  chan struct{}
	once    sync.Once

	// Populated by the hello message
	mu     sync.RWMutex
	width  float64
	height float64
	dpr    float64
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{
		ws:     ws,
		closed: make(chan struct{}),
	}
}

func (c *conn) send(msg Message) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *conn) close() {
	c.once.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}

func (c *conn) setViewport(width, height, dpr float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height, c.dpr = width, height, dpr
}

func (c *conn) viewport() (width, height, dpr float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height, c.dpr
}
