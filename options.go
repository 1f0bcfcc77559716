package memo

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/memo/client"
	"github.com/viant/memo/config"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
)

// Options defines options for assembling a memo client.
type Options struct {
	BaseURL string         `yaml:"base_url" json:"baseURL,omitempty"`
	Session SessionOptions `yaml:"session" json:"session,omitempty"`

	// Logger defaults to a no-op logger
	Logger *zap.Logger `yaml:"-" json:"-"`
	// Registerer receives client metrics, nil leaves them unregistered
	Registerer prometheus.Registerer `yaml:"-" json:"-"`
	// Transport overrides the network transport
	Transport http.RoundTripper `yaml:"-" json:"-"`
	// Storage overrides the storage selected by Session
	Storage session.Storage `yaml:"-" json:"-"`
}

// SessionOptions defines where the session is kept
type SessionOptions struct {
	// URL is an afs location of the session file, in-memory when empty
	URL string `yaml:"url" json:"url,omitempty"`
	// Key is a scy encryption key URL, e.g. blowfish://default
	Key string `yaml:"key" json:"key,omitempty"`
	// Cookies persists backend cookies with the session
	Cookies bool `yaml:"cookies" json:"cookies,omitempty"`
}

func (o *Options) Init() {
	if o.BaseURL == "" {
		o.BaseURL = client.DefaultBaseURL
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Merge fills empty options from cfg; explicitly set options win
func (o *Options) Merge(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if o.BaseURL == "" {
		o.BaseURL = cfg.BaseURL
	}
	if o.Session.URL == "" {
		o.Session.URL = cfg.Session.URL
	}
	if o.Session.Key == "" {
		o.Session.Key = cfg.Session.Key
	}
	if !o.Session.Cookies {
		o.Session.Cookies = cfg.Session.Cookies
	}
}

func (s *SessionOptions) storage(ctx context.Context) (session.Storage, error) {
	switch {
	case s.URL == "":
		return session.NewMemoryStorage(), nil
	case s.Key != "":
		return session.NewSecureStorage(ctx, s.URL, s.Key)
	default:
		return session.NewFileStorage(ctx, s.URL)
	}
}
