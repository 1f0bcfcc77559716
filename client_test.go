package memo

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memo/client/mock"
	"github.com/viant/memo/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_PersistentSession(t *testing.T) {
	backend := mock.NewHTTPTestBackend()
	defer backend.Close()
	backend.AddUser("ann@x.edu.cn", "secret1", "Ann")
	ctx := context.Background()

	testCases := []struct {
		description string
		session     SessionOptions
	}{
		{description: "file storage", session: SessionOptions{URL: "mem://localhost/memo/test/session.json"}},
		{description: "secure storage", session: SessionOptions{URL: "mem://localhost/memo/test/secure.json", Key: "blowfish://default"}},
		{description: "cookies", session: SessionOptions{URL: "mem://localhost/memo/test/cookies.json", Cookies: true}},
	}
	for _, testCase := range testCases {
		first, err := New(ctx, &Options{BaseURL: backend.URL, Session: testCase.session})
		require.NoError(t, err, testCase.description)
		_, err = first.Client.Login(ctx, "ann@x.edu.cn", "secret1")
		require.NoError(t, err, testCase.description)

		second, err := New(ctx, &Options{BaseURL: backend.URL, Session: testCase.session})
		require.NoError(t, err, testCase.description)
		assert.Equal(t, first.Store.AccessToken(), second.Store.AccessToken(), testCase.description)
		me, err := second.Client.Me(ctx, true)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, "Ann", me.Name, testCase.description)

		second.Client.Logout()
		third, err := New(ctx, &Options{BaseURL: backend.URL, Session: testCase.session})
		require.NoError(t, err, testCase.description)
		assert.False(t, third.Store.Authenticated(), testCase.description)
	}
}

func TestNew_MetricsAndLogging(t *testing.T) {
	backend := mock.NewHTTPTestBackend()
	defer backend.Close()
	backend.AddUser("ann@x.edu.cn", "secret1", "Ann")
	ctx := context.Background()

	core, logs := observer.New(zap.DebugLevel)
	registry := prometheus.NewRegistry()
	m, err := New(ctx, &Options{BaseURL: backend.URL, Logger: zap.New(core), Registerer: registry})
	require.NoError(t, err)

	_, err = m.Client.Login(ctx, "ann@x.edu.cn", "secret1")
	require.NoError(t, err)
	backend.ExpireAccessTokens()
	_, err = m.API.ListTodos(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Metrics.Requests.WithLabelValues(http.MethodPost, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Metrics.Requests.WithLabelValues(http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Metrics.Retries))
	assert.Equal(t, 1, logs.FilterMessage("access token refreshed").Len())
	assert.Equal(t, 2, logs.FilterMessage("request completed").Len())
}

func TestOptions_Merge(t *testing.T) {
	options := &Options{BaseURL: "http://override.test"}
	options.Merge(&config.Config{
		BaseURL: "http://config.test",
		Session: config.Session{URL: "/tmp/session.json", Key: "blowfish://default", Cookies: true},
	})
	assert.Equal(t, "http://override.test", options.BaseURL)
	assert.Equal(t, SessionOptions{URL: "/tmp/session.json", Key: "blowfish://default", Cookies: true}, options.Session)

	options = &Options{}
	options.Init()
	assert.Equal(t, "http://127.0.0.1:8000", options.BaseURL)
	assert.NotNil(t, options.Logger)
}
