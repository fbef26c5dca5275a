// Package metrics exposes Prometheus instruments for store operations and HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	perrors "github.com/abgdnv/catalog/internal/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "catalog"

// Result labels of catalog_store_operations_total.
const (
	ResultOK                = "ok"
	ResultNotFound          = "not_found"
	ResultDuplicateKey      = "duplicate_key"
	ResultInsufficientStock = "insufficient_stock"
	ResultInvalidState      = "invalid_state"
	ResultError             = "error"
)

// Metrics holds the service instruments. It satisfies service.Recorder.
type Metrics struct {
	operations  *prometheus.CounterVec
	records     *prometheus.GaugeVec
	httpLatency *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Total store operations by collection, operation and result.",
			},
			[]string{"collection", "operation", "result"},
		),
		records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_records",
				Help:      "Current number of records per collection.",
			},
			[]string{"collection"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(m.operations, m.records, m.httpLatency)
	return m
}

// ObserveOperation counts one store operation.
func (m *Metrics) ObserveOperation(collection, operation string, err error) {
	m.operations.WithLabelValues(collection, operation, Result(err)).Inc()
}

// SetRecords sets the record gauge of collection.
func (m *Metrics) SetRecords(collection string, n int) {
	m.records.WithLabelValues(collection).Set(float64(n))
}

// Result maps an operation error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, perrors.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, perrors.ErrDuplicateKey):
		return ResultDuplicateKey
	case errors.Is(err, perrors.ErrInsufficientStock):
		return ResultInsufficientStock
	case errors.Is(err, perrors.ErrInvalidState):
		return ResultInvalidState
	default:
		return ResultError
	}
}

// HTTPMetrics is a middleware observing request latency by route pattern.
func (m *Metrics) HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpLatency.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if patt := rc.RoutePattern(); patt != "" {
			return patt
		}
	}
	return "unmatched"
}
