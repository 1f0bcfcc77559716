package transport

import (
	"net/http"

	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
)

type Option func(*RoundTripper)

// WithStore sets session store
func WithStore(store *session.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the transport used for both the call and the refresh exchange
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRefreshURL sets the absolute URL of the token refresh endpoint
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithRefresher overrides the refresher built from WithRefreshURL
func WithRefresher(refresher TokenRefresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithMetrics sets metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *RoundTripper) {
		t.metrics = m
	}
}
