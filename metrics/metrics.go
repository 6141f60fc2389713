// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	yafetch "github.com/exah/ya-fetch"
	"github.com/exah/ya-fetch/request"
)

// Handler is an event handler that records Prometheus metrics about
// request executions: a gauge of in-flight calls, counters for
// attempts, attempt timeouts and finished calls, and a histogram of
// call durations. It is safe for concurrent use.
//
// Counters are labeled by request method and target host, and finished
// calls additionally by status code. A call that ended without a
// response (transport error, veto) counts under status "0".
type Handler struct {
	callsInFlight   prometheus.Gauge
	attemptsTotal   *prometheus.CounterVec
	attemptTimeouts *prometheus.CounterVec
	callsTotal      *prometheus.CounterVec
	callDuration    *prometheus.HistogramVec
}

// NewHandler creates a Handler whose collectors are registered on the
// default Prometheus registerer.
func NewHandler() *Handler {
	return NewHandlerWithRegistry(prometheus.DefaultRegisterer)
}

// NewHandlerWithRegistry creates a Handler whose collectors are
// registered on the supplied registerer. Use it to keep the collectors
// out of the global registry, for example in tests.
func NewHandlerWithRegistry(registry prometheus.Registerer) *Handler {
	return &Handler{
		callsInFlight: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "yafetch_calls_in_flight",
				Help: "Number of request executions currently in flight",
			},
		),
		attemptsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "yafetch_attempts_total",
				Help: "Total number of HTTP request attempts sent",
			},
			[]string{"method", "host"},
		),
		attemptTimeouts: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "yafetch_attempt_timeouts_total",
				Help: "Total number of attempts cut short by the attempt deadline",
			},
			[]string{"method", "host"},
		),
		callsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "yafetch_calls_total",
				Help: "Total number of finished request executions",
			},
			[]string{"method", "host", "status"},
		),
		callDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yafetch_call_duration_seconds",
				Help:    "Duration of finished request executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "host", "status"},
		),
	}
}

// Install adds the Handler to the handler group for the events it
// consumes.
func (h *Handler) Install(g *yafetch.HandlerGroup) {
	g.PushBack(yafetch.BeforeExecutionStart, h)
	g.PushBack(yafetch.BeforeAttempt, h)
	g.PushBack(yafetch.AfterAttemptTimeout, h)
	g.PushBack(yafetch.AfterExecutionEnd, h)
}

// Handle records the metrics for one event occurrence.
func (h *Handler) Handle(evt yafetch.Event, e *request.Execution) {
	switch evt {
	case yafetch.BeforeExecutionStart:
		h.callsInFlight.Inc()
	case yafetch.BeforeAttempt:
		h.attemptsTotal.WithLabelValues(e.Plan.Method, e.Plan.URL.Host).Inc()
	case yafetch.AfterAttemptTimeout:
		h.attemptTimeouts.WithLabelValues(e.Plan.Method, e.Plan.URL.Host).Inc()
	case yafetch.AfterExecutionEnd:
		h.callsInFlight.Dec()
		status := strconv.Itoa(e.StatusCode())
		h.callsTotal.WithLabelValues(e.Plan.Method, e.Plan.URL.Host, status).Inc()
		h.callDuration.WithLabelValues(e.Plan.Method, e.Plan.URL.Host, status).Observe(e.Duration().Seconds())
	}
}
