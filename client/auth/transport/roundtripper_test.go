package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const refreshURL = "http://backend.test" + RefreshPath

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type exchange struct {
	path          string
	authorization string
	body          string
}

// backend records every exchange and answers with handler
type backend struct {
	mux       sync.Mutex
	exchanges []exchange
	handler   func(call int, e exchange) (int, string)
}

func (b *backend) RoundTrip(r *http.Request) (*http.Response, error) {
	e := exchange{path: r.URL.Path, authorization: r.Header.Get("Authorization")}
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		e.body = string(data)
	}
	b.mux.Lock()
	b.exchanges = append(b.exchanges, e)
	call := len(b.exchanges)
	b.mux.Unlock()
	status, body := b.handler(call, e)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}, nil
}

func (b *backend) paths() []string {
	var ret []string
	for _, e := range b.exchanges {
		ret = append(ret, e.path)
	}
	return ret
}

// protected accepts only "Bearer <valid>" and issues refreshed when asked
func protected(valid, refreshed string) func(int, exchange) (int, string) {
	return func(_ int, e exchange) (int, string) {
		if e.path == RefreshPath {
			if refreshed == "" {
				return http.StatusUnauthorized, `{"detail":"Token is invalid or expired"}`
			}
			return http.StatusOK, `{"access":"` + refreshed + `"}`
		}
		if e.authorization == "Bearer "+valid {
			return http.StatusOK, `{"ok":true}`
		}
		return http.StatusUnauthorized, `{"detail":"expired"}`
	}
}

func newRoundTripper(t *testing.T, b *backend, access, refresh string) (*RoundTripper, *session.Store, *metrics.Metrics) {
	store := session.New(nil)
	require.NoError(t, store.SetTokens(access, refresh))
	m := metrics.New(nil)
	rt, err := New(WithStore(store), WithTransport(b), WithRefreshURL(refreshURL), WithMetrics(m))
	require.NoError(t, err)
	return rt, store, m
}

func do(t *testing.T, rt http.RoundTripper, ctx context.Context, method, body string) (int, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, "http://backend.test/api/posts/", reader)
	require.NoError(t, err)
	resp, err := (&http.Client{Transport: rt}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRoundTripper_Bearer(t *testing.T) {
	testCases := []struct {
		description string
		access      string
		auth        bool
		expect      string
	}{
		{description: "token attached", access: "A1", auth: true, expect: "Bearer A1"},
		{description: "auth disabled", access: "A1", auth: false, expect: ""},
		{description: "no token stored", access: "", auth: true, expect: ""},
	}
	for _, testCase := range testCases {
		b := &backend{handler: func(int, exchange) (int, string) { return http.StatusOK, `{}` }}
		rt, _, _ := newRoundTripper(t, b, testCase.access, "")
		status, _ := do(t, rt, WithAuth(context.Background(), testCase.auth), http.MethodGet, "")
		assert.Equal(t, http.StatusOK, status, testCase.description)
		require.Len(t, b.exchanges, 1, testCase.description)
		assert.Equal(t, testCase.expect, b.exchanges[0].authorization, testCase.description)
	}
}

func TestRoundTripper_RefreshAndRetry(t *testing.T) {
	b := &backend{handler: protected("A2", "A2")}
	rt, store, m := newRoundTripper(t, b, "A1", "R1")

	status, body := do(t, rt, context.Background(), http.MethodPost, `{"content":"hello"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, body)

	require.Equal(t, []string{"/api/posts/", RefreshPath, "/api/posts/"}, b.paths())
	assert.Equal(t, "Bearer A1", b.exchanges[0].authorization)
	assert.JSONEq(t, `{"refresh":"R1"}`, b.exchanges[1].body)
	assert.Equal(t, "", b.exchanges[1].authorization)
	assert.Equal(t, "Bearer A2", b.exchanges[2].authorization)
	assert.Equal(t, `{"content":"hello"}`, b.exchanges[2].body, "body replayed")

	assert.Equal(t, "A2", store.AccessToken())
	assert.Equal(t, "R1", store.RefreshToken())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.Refreshed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries))
}

func TestRoundTripper_ConcurrentRefreshesAreIndependent(t *testing.T) {
	var arrived sync.WaitGroup
	arrived.Add(2)
	handler := protected("A2", "A2")
	b := &backend{handler: func(call int, e exchange) (int, string) {
		if e.authorization == "Bearer A1" {
			// both calls are rejected before either refresh completes
			arrived.Done()
			arrived.Wait()
		}
		return handler(call, e)
	}}
	rt, store, m := newRoundTripper(t, b, "A1", "R1")
	httpClient := &http.Client{Transport: rt}

	statuses := make([]int, 2)
	errs := make([]error, 2)
	var done sync.WaitGroup
	for i := range statuses {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			req, err := http.NewRequest(http.MethodPost, "http://backend.test/api/posts/", strings.NewReader("payload"))
			if err != nil {
				errs[i] = err
				return
			}
			resp, err := httpClient.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	done.Wait()

	for i := range statuses {
		require.NoError(t, errs[i])
		assert.Equal(t, http.StatusOK, statuses[i])
	}
	refreshes, replays := 0, 0
	for _, e := range b.exchanges {
		switch {
		case e.path == RefreshPath:
			refreshes++
			assert.JSONEq(t, `{"refresh":"R1"}`, e.body)
		case e.authorization == "Bearer A2":
			replays++
			assert.Equal(t, "payload", e.body)
		}
	}
	assert.Equal(t, 2, refreshes)
	assert.Equal(t, 2, replays)
	assert.Equal(t, "A2", store.AccessToken())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.Refreshed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Retries))
}

func TestRoundTripper_ReplaysOneShotBody(t *testing.T) {
	b := &backend{handler: protected("A2", "A2")}
	rt, _, _ := newRoundTripper(t, b, "A1", "R1")

	req, err := http.NewRequest(http.MethodPut, "http://backend.test/api/posts/", io.NopCloser(strings.NewReader("payload")))
	require.NoError(t, err)
	req.GetBody = nil
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"/api/posts/", RefreshPath, "/api/posts/"}, b.paths())
	assert.Equal(t, "payload", b.exchanges[0].body)
	assert.Equal(t, "Bearer A2", b.exchanges[2].authorization)
	assert.Equal(t, "payload", b.exchanges[2].body, "buffered body replayed")
}

func TestRoundTripper_RetryOutcomeIsFinal(t *testing.T) {
	b := &backend{handler: protected("never", "A2")}
	rt, store, _ := newRoundTripper(t, b, "A1", "R1")

	status, body := do(t, rt, context.Background(), http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"detail":"expired"}`, body)
	assert.Equal(t, []string{"/api/posts/", RefreshPath, "/api/posts/"}, b.paths())
	assert.Equal(t, "A2", store.AccessToken(), "refreshed token kept after failed replay")
}

func TestRoundTripper_NoRefreshToken(t *testing.T) {
	b := &backend{handler: protected("never", "A2")}
	rt, store, m := newRoundTripper(t, b, "A1", "")

	status, body := do(t, rt, context.Background(), http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"detail":"expired"}`, body, "original 401 body intact")
	assert.Equal(t, []string{"/api/posts/"}, b.paths(), "no refresh call")
	assert.False(t, store.Authenticated())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.NoToken)))
}

func TestRoundTripper_RefreshRejected(t *testing.T) {
	b := &backend{handler: protected("never", "")}
	rt, store, m := newRoundTripper(t, b, "A1", "R1")

	status, body := do(t, rt, context.Background(), http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"detail":"expired"}`, body)
	assert.Equal(t, []string{"/api/posts/", RefreshPath}, b.paths())
	assert.Equal(t, "", store.AccessToken())
	assert.Equal(t, "", store.RefreshToken())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.Rejected)))
}

func TestRoundTripper_RetryDisabled(t *testing.T) {
	b := &backend{handler: protected("never", "A2")}
	rt, store, _ := newRoundTripper(t, b, "A1", "R1")

	status, _ := do(t, rt, WithRetryOn401(context.Background(), false), http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, []string{"/api/posts/"}, b.paths())
	assert.Equal(t, "A1", store.AccessToken(), "session untouched")
}

func TestRoundTripper_TransportError(t *testing.T) {
	failure := errors.New("connection refused")
	rt, err := New(WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, failure
	})))
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodGet, "http://backend.test/api/posts/", nil)
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, failure)
}

func TestRefresher_Rotation(t *testing.T) {
	b := &backend{handler: func(int, exchange) (int, string) {
		return http.StatusOK, `{"access":"A2","refresh":"R2"}`
	}}
	store := session.New(nil)
	require.NoError(t, store.SetTokens("A1", "R1"))
	token, err := NewRefresher(refreshURL, store, b).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", token.AccessToken)
	assert.Equal(t, "R2", token.RefreshToken)
	assert.Equal(t, "R2", store.RefreshToken())
}

func TestRefresher_EmptyAccess(t *testing.T) {
	b := &backend{handler: func(int, exchange) (int, string) { return http.StatusOK, `not json` }}
	store := session.New(nil)
	require.NoError(t, store.SetTokens("A1", "R1"))
	_, err := NewRefresher(refreshURL, store, b).Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoAccessToken)
	assert.Equal(t, "A1", store.AccessToken())
}

func TestRoundTripper_RefreshBodyReadFailure(t *testing.T) {
	truncated := errors.New("unexpected EOF")
	store := session.New(nil)
	require.NoError(t, store.SetTokens("A1", "R1"))
	m := metrics.New(nil)
	inner := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path == RefreshPath {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(iotest.ErrReader(truncated)), Request: r}, nil
		}
		return &http.Response{StatusCode: http.StatusUnauthorized, Body: io.NopCloser(strings.NewReader(`{"detail":"expired"}`)), Request: r}, nil
	})

	_, err := NewRefresher(refreshURL, store, inner).Refresh(context.Background())
	assert.ErrorIs(t, err, truncated)
	assert.NotErrorIs(t, err, ErrNoAccessToken)

	rt, err := New(WithStore(store), WithTransport(inner), WithRefreshURL(refreshURL), WithMetrics(m))
	require.NoError(t, err)
	status, _ := do(t, rt, context.Background(), http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.Failed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Refreshes.WithLabelValues(metrics.NoToken)))
}
