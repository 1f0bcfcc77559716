package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	authtransport "github.com/viant/memo/client/auth/transport"
	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
)

// DefaultBaseURL is the backend origin used when none is configured
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client performs authenticated calls against the backend
type Client struct {
	baseURL    string
	store      *session.Store
	transport  http.RoundTripper
	jar        http.CookieJar
	logger     *zap.Logger
	metrics    *metrics.Metrics
	httpClient *http.Client
}

// Store returns the session store
func (c *Client) Store() *session.Store {
	return c.store
}

// BaseURL returns the origin relative paths are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path against the base URL, absolute http(s) paths are returned as is
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.baseURL + path
}

// Do performs one logical call. Non-2xx responses and transport failures are returned as *Error.
func (c *Client) Do(ctx context.Context, request *Request) (*Response, error) {
	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	URL := c.URL(request.Path)
	if len(request.Query) > 0 {
		separator := "?"
		if strings.Contains(URL, "?") {
			separator = "&"
		}
		URL += separator + request.Query.Encode()
	}
	body, err := encodeBody(request.Body)
	if err != nil {
		return nil, err
	}
	ctx = authtransport.WithAuth(ctx, !request.NoAuth)
	ctx = authtransport.WithRetryOn401(ctx, !request.NoRetry)
	httpRequest, err := http.NewRequestWithContext(ctx, method, URL, body.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(name, value)
		}
	}
	body.apply(httpRequest.Header)
	requestID := uuid.New().String()
	httpRequest.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(httpRequest)
	if err != nil {
		c.metrics.Request(method, 0)
		c.logger.Debug("request failed", zap.String("method", method), zap.String("url", URL),
			zap.String("requestId", requestID), zap.Error(err))
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	payload := readPayload(resp)
	c.metrics.Request(method, resp.StatusCode)
	c.logger.Debug("request completed", zap.String("method", method), zap.String("url", URL),
		zap.String("requestId", requestID), zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalize(resp.StatusCode, payload)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Payload: payload}, nil
}

// Call performs request and decodes the JSON response into result, result may be nil
func (c *Client) Call(ctx context.Context, request *Request, result any) error {
	resp, err := c.Do(ctx, request)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err = resp.Decode(result); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", request.Path, err)
	}
	return nil
}

// New creates a client
func New(options ...Option) (*Client, error) {
	ret := &Client{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.baseURL = strings.TrimRight(ret.baseURL, "/")
	if ret.store == nil {
		ret.store = session.New(nil, session.WithLogger(ret.logger))
	}
	roundTripper, err := authtransport.New(
		authtransport.WithStore(ret.store),
		authtransport.WithTransport(authtransport.WrapWithCookieJar(ret.transport, ret.jar)),
		authtransport.WithRefreshURL(ret.URL(authtransport.RefreshPath)),
		authtransport.WithLogger(ret.logger),
		authtransport.WithMetrics(ret.metrics),
	)
	if err != nil {
		return nil, err
	}
	ret.httpClient = &http.Client{Transport: roundTripper}
	return ret, nil
}
