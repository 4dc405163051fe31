package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Script execution outcomes
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeQueued    = "queued"
	OutcomeCancelled = "cancelled"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Script bridge
	ScriptExecutions *prometheus.CounterVec
	ScriptDuration   *prometheus.HistogramVec
	BatchStatements  prometheus.Histogram
	HandlesLive      prometheus.Gauge

	// Render loop
	Frames        prometheus.Counter
	FrameDuration prometheus.Histogram
	ItemsDrawn    *prometheus.CounterVec

	// Transport
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	AssetBytes    prometheus.Counter

	// Logging
	LogEntries *prometheus.CounterVec

	startTime time.Time
}

// NewMetrics creates a metrics collector with a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry:  reg,
		startTime: time.Now(),

		ScriptExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webuikit_script_executions_total",
				Help: "Script executions by backend and outcome",
			},
			[]string{"backend", "outcome"},
		),
		ScriptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webuikit_script_duration_seconds",
				Help:    "Round-trip duration of script executions",
				Buckets: []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
			},
			[]string{"backend"},
		),
		BatchStatements: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webuikit_batch_statements",
				Help:    "Statements sent per batch flush",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		HandlesLive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webuikit_handles_live",
				Help: "Script handles bound and not yet released",
			},
		),
		Frames: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webuikit_frames_total",
				Help: "Frames rendered",
			},
		),
		FrameDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webuikit_frame_duration_seconds",
				Help:    "Time spent updating and drawing one frame",
				Buckets: []float64{.001, .002, .004, .008, .016, .033, .066, .1, .25},
			},
		),
		ItemsDrawn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webuikit_items_drawn_total",
				Help: "Render items drawn by type tag",
			},
			[]string{"type"},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webuikit_ws_connections",
				Help: "Connected browser pages",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webuikit_ws_messages_total",
				Help: "Websocket messages by direction and type",
			},
			[]string{"direction", "type"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webuikit_http_requests_total",
				Help: "HTTP requests by server and status",
			},
			[]string{"server", "status"},
		),
		AssetBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webuikit_asset_bytes_total",
				Help: "Asset payload bytes served",
			},
		),
		LogEntries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webuikit_log_entries_total",
				Help: "Log entries written by level",
			},
			[]string{"level"},
		),
	}
}

// Registry returns the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Uptime returns time since the collector was created
func (m *Metrics) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

// RecordScript records one script execution
func (m *Metrics) RecordScript(backend, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ScriptExecutions.WithLabelValues(backend, outcome).Inc()
	if outcome != OutcomeQueued {
		m.ScriptDuration.WithLabelValues(backend).Observe(duration.Seconds())
	}
}

// RecordBatch records a batch flush of n statements
func (m *Metrics) RecordBatch(n int) {
	if m == nil {
		return
	}
	m.BatchStatements.Observe(float64(n))
}

// HandleBound increments the live handle gauge
func (m *Metrics) HandleBound() {
	if m == nil {
		return
	}
	m.HandlesLive.Inc()
}

// HandleReleased decrements the live handle gauge
func (m *Metrics) HandleReleased() {
	if m == nil {
		return
	}
	m.HandlesLive.Dec()
}

// RecordFrame records one rendered frame
func (m *Metrics) RecordFrame(duration time.Duration) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.FrameDuration.Observe(duration.Seconds())
}

// RecordItemDrawn records one drawn render item
func (m *Metrics) RecordItemDrawn(itemType string) {
	if m == nil {
		return
	}
	m.ItemsDrawn.WithLabelValues(itemType).Inc()
}

// SetWSConnections sets the number of connected pages
func (m *Metrics) SetWSConnections(n int) {
	if m == nil {
		return
	}
	m.WSConnections.Set(float64(n))
}

// RecordWSMessage records a websocket message; direction is "in" or "out"
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// RecordHTTPRequest records an HTTP request served by server
func (m *Metrics) RecordHTTPRequest(server, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(server, status).Inc()
}

// RecordAssetBytes records asset payload bytes served
func (m *Metrics) RecordAssetBytes(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AssetBytes.Add(float64(n))
}

// RecordLogEntry records one log entry written at level
func (m *Metrics) RecordLogEntry(level string) {
	if m == nil {
		return
	}
	m.LogEntries.WithLabelValues(level).Inc()
}
