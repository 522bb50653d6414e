// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registerer receives the client's request metrics.
type Registerer = prometheus.Registerer

// telemetry instruments JSON-RPC requests. A nil telemetry records nothing.
type telemetry struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newTelemetry(reg Registerer) *telemetry {
	if reg == nil {
		return nil
	}

	t := &telemetry{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soroban",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Number of JSON-RPC requests, by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soroban",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of JSON-RPC requests, by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(t.requests, t.duration)
	return t
}

func (t *telemetry) observe(method string, elapsed time.Duration, err error) {
	if t == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	t.requests.WithLabelValues(method, outcome).Inc()
	t.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
