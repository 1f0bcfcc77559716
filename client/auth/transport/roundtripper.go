package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// RoundTripper attaches the session bearer token and runs the single refresh-and-retry
// cycle on 401. Both the refresh exchange and the replay go to the inner transport, never
// back through the RoundTripper, so a second 401 is final.
type RoundTripper struct {
	store      *session.Store
	refreshURL string
	refresher  TokenRefresher
	transport  http.RoundTripper
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = session.New(nil)
	}
	if ret.refresher == nil && ret.refreshURL != "" {
		ret.refresher = NewRefresher(ret.refreshURL, ret.store, ret.transport)
	}
	return ret, nil
}

func (r *RoundTripper) Store() *session.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	auth := useAuth(ctx)
	first, err := clone(req)
	if err != nil {
		return nil, err
	}
	if auth {
		authorize(first, r.store.AccessToken())
	}
	resp, err := r.transport.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || !auth || !retryOn401(ctx) {
		return resp, nil
	}

	token, err := r.refresh(ctx)
	if err != nil {
		// stale tokens must not trigger further attempts; the original 401 is surfaced
		r.store.Clear()
		r.logger.Warn("token refresh failed, session cleared",
			zap.String("url", req.URL.String()), zap.Error(err))
		return resp, nil
	}
	discard(resp)

	retry, err := clone(req)
	if err != nil {
		return nil, err
	}
	authorize(retry, token.AccessToken)
	r.metrics.Retry()
	r.logger.Debug("replaying request with refreshed token", zap.String("url", req.URL.String()))
	return r.transport.RoundTrip(retry)
}

func (r *RoundTripper) refresh(ctx context.Context) (*oauth2.Token, error) {
	if r.refresher == nil {
		r.metrics.Refresh(metrics.NoToken)
		return nil, ErrNoRefreshToken
	}
	token, err := r.refresher.Refresh(ctx)
	if err == nil && (token == nil || token.AccessToken == "") {
		err = ErrNoAccessToken
	}
	switch {
	case err == nil:
		r.metrics.Refresh(metrics.Refreshed)
		r.logger.Info("access token refreshed")
	case errors.Is(err, ErrNoRefreshToken), errors.Is(err, ErrNoAccessToken):
		r.metrics.Refresh(metrics.NoToken)
	case errors.Is(err, ErrRefreshRejected):
		r.metrics.Refresh(metrics.Rejected)
	default:
		r.metrics.Refresh(metrics.Failed)
	}
	return token, err
}
