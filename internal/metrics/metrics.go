package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPCollector exposes Prometheus metrics for inbound HTTP requests and
// consolidation runs.
type HTTPCollector struct {
	registry         *prometheus.Registry
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	consolidations   prometheus.Counter
	droppedRecords   prometheus.Counter
	transferWarnings prometheus.Counter
}

// NewHTTPCollector constructs a collector with default histograms/counters.
func NewHTTPCollector() (*HTTPCollector, error) {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tripweave",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tripweave",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	consolidations := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tripweave",
		Subsystem: "consolidate",
		Name:      "runs_total",
		Help:      "Total number of consolidation runs.",
	})

	droppedRecords := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tripweave",
		Subsystem: "consolidate",
		Name:      "dropped_records_total",
		Help:      "Total number of extracted records dropped during consolidation.",
	})

	transferWarnings := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tripweave",
		Subsystem: "consolidate",
		Name:      "transfer_warnings_total",
		Help:      "Total number of transfer warnings produced by timeline analysis.",
	})

	for _, c := range []prometheus.Collector{requestDuration, requestTotal, consolidations, droppedRecords, transferWarnings} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	collector := &HTTPCollector{
		registry:         registry,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		consolidations:   consolidations,
		droppedRecords:   droppedRecords,
		transferWarnings: transferWarnings,
	}

	return collector, nil
}

// ObserveConsolidation records the outcome of one consolidation run.
func (c *HTTPCollector) ObserveConsolidation(dropped, warnings int) {
	c.consolidations.Inc()
	c.droppedRecords.Add(float64(dropped))
	c.transferWarnings.Add(float64(warnings))
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *HTTPCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics.
func (c *HTTPCollector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := r.URL.Path

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
