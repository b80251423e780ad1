// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus collectors for the todo API.

Collectors:

  - Requests: count and latency by method, route pattern and status.
  - Blacklist: revocations, swept entries and failed lookups.

A private registry is used so tests can build independent instances.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "todo"

// Metrics holds every collector and the registry they belong to.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	revocationsTotal  prometheus.Counter
	sweptTotal        prometheus.Counter
	lookupErrorsTotal prometheus.Counter
}

// New builds the collectors and registers them together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled by the dispatcher.",
		}, []string{"method", "route", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		revocationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blacklist",
			Name:      "revocations_total",
			Help:      "Tokens added to the blacklist.",
		}),

		sweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blacklist",
			Name:      "swept_total",
			Help:      "Expired blacklist entries removed by sweeps.",
		}),

		lookupErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blacklist",
			Name:      "lookup_errors_total",
			Help:      "Blacklist lookups that failed and were treated as not revoked.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.revocationsTotal,
		m.sweptTotal,
		m.lookupErrorsTotal,
	)

	return m
}

// # Request Metrics

// ObserveRequest records one dispatched request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// # Blacklist Metrics

// TokenRevoked counts one blacklist insertion.
func (m *Metrics) TokenRevoked() {
	m.revocationsTotal.Inc()
}

// EntriesSwept counts entries removed by a sweep.
func (m *Metrics) EntriesSwept(n int64) {
	if n > 0 {
		m.sweptTotal.Add(float64(n))
	}
}

// LookupFailed counts one failed blacklist lookup.
func (m *Metrics) LookupFailed() {
	m.lookupErrorsTotal.Inc()
}

// # Exposition

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
