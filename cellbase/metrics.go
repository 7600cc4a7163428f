package cellbase

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records Prometheus metrics for REST calls. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the client metrics on reg. Clients sharing a
// registerer share the collectors registered by the first of them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"category", "subcategory", "resource", "code"}
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cellbase_requests_total",
				Help: "Total number of CellBase REST requests",
			},
			labels,
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cellbase_request_duration_seconds",
				Help:    "Duration of CellBase REST requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			labels,
		),
	}
	if reg == nil {
		return m
	}
	m.requestsTotal = register(reg, m.requestsTotal)
	m.requestDuration = register(reg, m.requestDuration)
	return m
}

// register adds c to reg, returning the collector already registered under
// the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	// Conflicting descriptor: keep c unregistered so requests still count locally.
	return c
}

// observe records one request. status 0 means the request never got a response.
func (m *Metrics) observe(q Query, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(q.Category, q.Subcategory, q.Resource, code).Inc()
	m.requestDuration.WithLabelValues(q.Category, q.Subcategory, q.Resource, code).Observe(d.Seconds())
}
