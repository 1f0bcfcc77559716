// Package metrics exposes prometheus counters for the request client.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "memo_client"

// Refresh outcomes
const (
	Refreshed = "refreshed"
	NoToken   = "no_token"
	Rejected  = "rejected"
	Failed    = "failed"
)

type Metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
	Retries   prometheus.Counter
}

// Request counts a completed logical call; status 0 denotes a transport failure
func (m *Metrics) Request(method string, status int) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.Requests.WithLabelValues(method, code).Inc()
}

// Refresh counts a refresh attempt by outcome
func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(outcome).Inc()
}

// Retry counts a replay after a successful refresh
func (m *Metrics) Retry() {
	if m == nil {
		return
	}
	m.Retries.Inc()
}

// New creates and registers client metrics, registerer may be nil
func New(registerer prometheus.Registerer) *Metrics {
	ret := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Completed API calls by method and HTTP status.",
		}, []string{"method", "code"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Access token refresh attempts by outcome.",
		}, []string{"outcome"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Requests replayed with a refreshed access token.",
		}),
	}
	if registerer != nil {
		registerer.MustRegister(ret.Requests, ret.Refreshes, ret.Retries)
	}
	return ret
}
