package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/viant/memo/session"
	"golang.org/x/oauth2"
)

// RefreshPath is the backend token refresh endpoint
const RefreshPath = "/api/users/token/refresh/"

var (
	// ErrNoRefreshToken is returned without any network call when no refresh token is stored
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrRefreshRejected is returned when the backend refuses the refresh token
	ErrRefreshRejected = errors.New("refresh token rejected")
	// ErrNoAccessToken is returned when a successful refresh response carries no access token
	ErrNoAccessToken = errors.New("refresh response without access token")
)

// TokenRefresher mints a new access token from the stored refresh token.
type TokenRefresher interface {
	Refresh(ctx context.Context) (*oauth2.Token, error)
}

type Refresher struct {
	URL       string
	store     *session.Store
	transport http.RoundTripper
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Refresh exchanges the stored refresh token. A rejected token clears the whole session.
func (r *Refresher) Refresh(ctx context.Context) (*oauth2.Token, error) {
	refresh := r.store.RefreshToken()
	if refresh == "" {
		return nil, ErrNoRefreshToken
	}
	payload, err := json.Marshal(refreshRequest{Refresh: refresh})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Transport: r.transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.store.Clear()
		return nil, fmt.Errorf("%w: HTTP %d", ErrRefreshRejected, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}
	var pair refreshResponse
	_ = json.Unmarshal(data, &pair)
	if pair.Access == "" {
		return nil, ErrNoAccessToken
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	if err = r.store.SetTokens(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("failed to store refreshed token: %w", err)
	}
	return &oauth2.Token{AccessToken: pair.Access, RefreshToken: pair.Refresh, TokenType: "Bearer"}, nil
}

// NewRefresher creates a refresher posting to URL through transport
func NewRefresher(URL string, store *session.Store, transport http.RoundTripper) *Refresher {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Refresher{URL: URL, store: store, transport: transport}
}
