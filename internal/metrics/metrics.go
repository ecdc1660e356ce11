// Package metrics provides Prometheus metrics for catalog reads, HTTP
// requests and image probing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains every collector the guide exports.
type Metrics struct {
	registry *prometheus.Registry

	// Catalog store metrics
	storeQueriesTotal *prometheus.CounterVec
	storeErrorsTotal  *prometheus.CounterVec
	storeDuration     *prometheus.HistogramVec
	storeRowsReturned *prometheus.CounterVec

	// Selection metrics
	staleResultsTotal *prometheus.CounterVec

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Image metrics
	imageResolutionsTotal *prometheus.CounterVec

	// Catalog audit metrics
	catalogEntities   *prometheus.GaugeVec
	catalogViolations prometheus.Gauge
	auditRunsTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	for _, c := range m.collectors() {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry returns the registry the metrics were registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) initMetrics() {
	m.storeQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_store_queries_total",
			Help: "Total number of catalog read queries",
		},
		[]string{"operation", "status"}, // status: success, error
	)

	m.storeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_store_errors_total",
			Help: "Total number of failed catalog read queries",
		},
		[]string{"operation"},
	)

	m.storeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "guide_store_query_duration_seconds",
			Help: "Time taken by catalog read queries",
			// 1ms .. ~512ms
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	m.storeRowsReturned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_store_rows_total",
			Help: "Total number of rows returned by catalog read queries",
		},
		[]string{"operation"},
	)

	m.staleResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_stale_results_total",
			Help: "Fetch results discarded because the selection changed while in flight",
		},
		[]string{"kind"},
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guide_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.imageResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_image_resolutions_total",
			Help: "Image candidate resolutions by outcome",
		},
		[]string{"outcome"}, // outcome: candidate, placeholder
	)

	m.catalogEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "guide_catalog_entities",
			Help: "Entities seen by the last catalog audit",
		},
		[]string{"kind"},
	)

	m.catalogViolations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "guide_catalog_violations",
			Help: "Integrity violations found by the last catalog audit",
		},
	)

	m.auditRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guide_catalog_audits_total",
			Help: "Catalog audits by result",
		},
		[]string{"result"}, // result: clean, violations, error
	)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.storeQueriesTotal,
		m.storeErrorsTotal,
		m.storeDuration,
		m.storeRowsReturned,
		m.staleResultsTotal,
		m.httpRequestsTotal,
		m.httpDuration,
		m.imageResolutionsTotal,
		m.catalogEntities,
		m.catalogViolations,
		m.auditRunsTotal,
	}
}

// RecordQuery records one catalog read.
func (m *Metrics) RecordQuery(operation string, rows int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
		m.storeErrorsTotal.WithLabelValues(operation).Inc()
	}
	m.storeQueriesTotal.WithLabelValues(operation, status).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.storeRowsReturned.WithLabelValues(operation).Add(float64(rows))
}

// RecordStale records a discarded fetch result.
func (m *Metrics) RecordStale(kind string) {
	if m == nil {
		return
	}
	m.staleResultsTotal.WithLabelValues(kind).Inc()
}

// RecordHTTP records one served request.
func (m *Metrics) RecordHTTP(method, route, statusCode string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordImageResolution records whether a resolution ended on a real
// candidate or the placeholder.
func (m *Metrics) RecordImageResolution(placeholder bool) {
	if m == nil {
		return
	}
	outcome := "candidate"
	if placeholder {
		outcome = "placeholder"
	}
	m.imageResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordAudit records the outcome of one catalog audit. counts is keyed by
// entity kind; err is the failure that stopped the snapshot, if any.
func (m *Metrics) RecordAudit(counts map[string]int, violations int, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.auditRunsTotal.WithLabelValues("error").Inc()
		return
	case violations > 0:
		m.auditRunsTotal.WithLabelValues("violations").Inc()
	default:
		m.auditRunsTotal.WithLabelValues("clean").Inc()
	}
	for kind, n := range counts {
		m.catalogEntities.WithLabelValues(kind).Set(float64(n))
	}
	m.catalogViolations.Set(float64(violations))
}
