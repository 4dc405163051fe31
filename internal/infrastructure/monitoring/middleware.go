package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware that counts requests per server
func Middleware(metrics *Metrics, server string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.RecordHTTPRequest(server, strconv.Itoa(c.Writer.Status()))
	}
}

// Timer measures one script round trip
type Timer struct {
	start   time.Time
	metrics *Metrics
	backend string
}

// NewTimer starts a timer for backend
func NewTimer(metrics *Metrics, backend string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		backend: backend,
	}
}

// Stop records the elapsed time under outcome
func (t *Timer) Stop(outcome string) time.Duration {
	d := time.Since(t.start)
	t.metrics.RecordScript(t.backend, outcome, d)
	return d
}
