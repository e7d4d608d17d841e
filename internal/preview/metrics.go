package preview

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records rebuild activity for the preview server.
type Metrics struct {
	registry        *prom.Registry
	rebuilds        *prom.CounterVec
	rebuildDuration prom.Histogram
	lastRebuildUnix prom.Gauge
}

// NewMetrics constructs and registers the preview metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prom.NewRegistry()}
	m.rebuilds = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "noteport",
		Name:      "preview_rebuilds_total",
		Help:      "Preview rebuilds by outcome",
	}, []string{"result"})
	m.rebuildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "noteport",
		Name:      "preview_rebuild_duration_seconds",
		Help:      "Duration of preview rebuilds",
		Buckets:   prom.DefBuckets,
	})
	m.lastRebuildUnix = prom.NewGauge(prom.GaugeOpts{
		Namespace: "noteport",
		Name:      "preview_last_rebuild_timestamp_seconds",
		Help:      "Unix time of the last successful rebuild",
	})
	m.registry.MustRegister(m.rebuilds, m.rebuildDuration, m.lastRebuildUnix)
	return m
}

// ObserveRebuild records one rebuild attempt.
func (m *Metrics) ObserveRebuild(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.rebuilds.WithLabelValues(result).Inc()
	m.rebuildDuration.Observe(d.Seconds())
	if err == nil {
		m.lastRebuildUnix.SetToCurrentTime()
	}
}

// Handler exposes the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
