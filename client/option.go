package client

import (
	"net/http"

	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
)

// Option represents option
type Option func(c *Client)

// WithBaseURL sets the origin relative paths are resolved against
func WithBaseURL(URL string) Option {
	return func(c *Client) {
		c.baseURL = URL
	}
}

// WithStore sets session store
func WithStore(store *session.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithTransport sets the network transport wrapped by the auth round tripper
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithCookieJar attaches a cookie jar to every exchange, refresh included
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
