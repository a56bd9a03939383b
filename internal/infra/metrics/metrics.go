// Package metrics exposes Prometheus collectors for HTTP traffic and order operations.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"pawparadise/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pawparadise"

// Metrics owns a private registry so tests and multiple fx apps never collide
// on the global default registerer.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	orderOperations     *prometheus.CounterVec
	orderEvents         *prometheus.CounterVec
	dbConnections       *prometheus.GaugeVec
	dbWaitCount         prometheus.Gauge
	dbWaitSeconds       prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path", "status"},
		),
		orderOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_operations_total",
				Help:      "Total number of order operations",
			},
			[]string{"operation", "status"},
		),
		orderEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_events_consumed_total",
				Help:      "Total number of order events handled by the event worker",
			},
			[]string{"type", "outcome"},
		),
		dbConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_pool_connections",
				Help:      "Postgres pool connections by state",
			},
			[]string{"state"},
		),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_wait_count",
			Help:      "Total number of connections waited for",
		}),
		dbWaitSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool_wait_seconds",
			Help:      "Total time blocked waiting for a new connection",
		}),
	}
}

// NewRecorder exposes Metrics through the domain interface.
func NewRecorder(m *Metrics) service.MetricsRecorder {
	return m
}

// ObserveHTTP records one finished request. path is the route template, not the raw URL.
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// RecordOrderOperation counts an order operation outcome.
func (m *Metrics) RecordOrderOperation(operation string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.orderOperations.WithLabelValues(operation, status).Inc()
}

// RecordOrderEvent counts one consumed order event by type and outcome.
func (m *Metrics) RecordOrderEvent(eventType, outcome string) {
	m.orderEvents.WithLabelValues(eventType, outcome).Inc()
}

// ObserveDBPool publishes a snapshot of the Postgres connection pool.
func (m *Metrics) ObserveDBPool(stats sql.DBStats) {
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbConnections.WithLabelValues("max_open").Set(float64(stats.MaxOpenConnections))
	m.dbWaitCount.Set(float64(stats.WaitCount))
	m.dbWaitSeconds.Set(stats.WaitDuration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
