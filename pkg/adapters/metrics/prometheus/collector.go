package prometheus

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Collector records HTTP request metrics into its own registry
type Collector struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector backed by a fresh
// registry. The registry also exposes Go runtime and process metrics.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "http_status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_latency_seconds",
				Help:    "Request latency seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// RecordRequest increments the request counter for a method/endpoint/status
func (c *Collector) RecordRequest(method, endpoint string, status int) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// ObserveLatency records the latency of a request to endpoint
func (c *Collector) ObserveLatency(endpoint string, duration time.Duration) {
	c.requestLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry in the exposition format.
// Gathering errors are logged and the remaining metrics are still served.
func (c *Collector) Handler(logger *zap.Logger) http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorLog:      &zapErrorLogger{logger: logger},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// zapErrorLogger adapts zap.Logger to the promhttp.Logger interface.
type zapErrorLogger struct {
	logger *zap.Logger
}

// Println implements promhttp.Logger.
func (l *zapErrorLogger) Println(v ...interface{}) {
	l.logger.Error(fmt.Sprint(v...))
}
