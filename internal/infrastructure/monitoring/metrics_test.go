package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordScript("sandbox", OutcomeOK, time.Millisecond)
		m.RecordBatch(3)
		m.HandleBound()
		m.HandleReleased()
		m.RecordFrame(time.Millisecond)
		m.RecordItemDrawn("builtin-rectangle")
		m.SetWSConnections(1)
		m.RecordWSMessage("in", "result")
		m.RecordHTTPRequest("assets", "200")
		m.RecordAssetBytes(10)
		m.RecordLogEntry("info")
		NewTimer(m, "sandbox").Stop(OutcomeOK)
	})
	assert.Zero(t, m.Uptime())
}

func TestInstancesDoNotCollide(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordScript("sandbox", OutcomeOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ScriptExecutions.WithLabelValues("sandbox", OutcomeOK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ScriptExecutions.WithLabelValues("sandbox", OutcomeOK)))
}

func TestRecorders(t *testing.T) {
	m := NewMetrics()

	m.HandleBound()
	m.HandleBound()
	m.HandleReleased()
	m.RecordFrame(2 * time.Millisecond)
	m.RecordItemDrawn("builtin-rectangle")
	m.RecordAssetBytes(128)
	m.RecordAssetBytes(-1)
	m.RecordLogEntry("warn")
	m.RecordLogEntry("warn")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandlesLive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemsDrawn.WithLabelValues("builtin-rectangle")))
	assert.Equal(t, 128.0, testutil.ToFloat64(m.AssetBytes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LogEntries.WithLabelValues("warn")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m, "assets"))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `webuikit_http_requests_total{server="assets",status="200"} 1`))
}
