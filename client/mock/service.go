package mock

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Backend is a test server that simulates the memo REST backend
type Backend struct {
	mux         sync.Mutex
	Secret      []byte
	Issuer      string
	FrontendURL string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration

	// RotateRefresh makes the refresh endpoint return a new refresh token as well
	RotateRefresh bool

	rejectRefresh bool
	refreshCalls  int
	tokenSeq      int
	expiredUpTo   int
	exchanges     []Exchange

	nextID    int
	accounts  map[int]*account
	posts     []*post
	comments  []*comment
	teams     []*team
	members   map[int]map[int]bool
	teamPosts []*teamPost
	todos     []*todo
}

// Exchange is a request received by the backend
type Exchange struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          string
}

// Option configures Backend
type Option func(b *Backend)

// WithAccessTTL sets the access token lifetime
func WithAccessTTL(ttl time.Duration) Option {
	return func(b *Backend) {
		b.AccessTTL = ttl
	}
}

// WithRotation makes refresh responses carry a new refresh token
func WithRotation() Option {
	return func(b *Backend) {
		b.RotateRefresh = true
	}
}

// NewBackend creates an empty fake backend
func NewBackend(opts ...Option) *Backend {
	ret := &Backend{
		Secret:      []byte("memo-test-secret"),
		Issuer:      "memo-mock",
		FrontendURL: "http://127.0.0.1:5500",
		AccessTTL:   5 * time.Minute,
		RefreshTTL:  24 * time.Hour,
		accounts:    map[int]*account{},
		members:     map[int]map[int]bool{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// ExpireAccessTokens invalidates every access token issued so far
func (b *Backend) ExpireAccessTokens() {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.expiredUpTo = b.tokenSeq
}

// RejectRefresh makes the refresh endpoint answer 401
func (b *Backend) RejectRefresh(reject bool) {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.rejectRefresh = reject
}

// RefreshCalls returns the number of refresh requests received
func (b *Backend) RefreshCalls() int {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.refreshCalls
}

// Exchanges returns a copy of the received requests
func (b *Backend) Exchanges() []Exchange {
	b.mux.Lock()
	defer b.mux.Unlock()
	return append([]Exchange(nil), b.exchanges...)
}

// Paths returns the paths of the received requests in order
func (b *Backend) Paths() []string {
	var ret []string
	for _, e := range b.Exchanges() {
		ret = append(ret, e.Path)
	}
	return ret
}

// Register registers the backend endpoints onto the given ServeMux.
func (b *Backend) Register(mux *http.ServeMux) {
	b.routes(mux)
}

// Handler returns an http.Handler for all backend endpoints, suitable for any HTTP server.
func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()
	b.Register(mux)
	return b.record(mux)
}

// HTTPTestBackend is a Backend served by httptest
type HTTPTestBackend struct {
	*Backend
	Server *httptest.Server
	URL    string
}

// NewHTTPTestBackend starts a backend on a local listener
func NewHTTPTestBackend(opts ...Option) *HTTPTestBackend {
	backend := NewBackend(opts...)
	ret := &HTTPTestBackend{Backend: backend}
	ret.Server = httptest.NewServer(backend.Handler())
	ret.URL = ret.Server.URL
	return ret
}

func (s *HTTPTestBackend) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
