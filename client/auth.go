package client

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	LoginPath    = "/api/users/login/"
	RegisterPath = "/api/users/register/"
	MePath       = "/api/users/me/"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. The token pair is stored only when both
// tokens are returned; the embedded user, when present, replaces the cached identity.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, LoginPath, &credentials{Email: email, Password: password})
}

// Register creates an account; a response carrying tokens signs the new user in
func (c *Client) Register(ctx context.Context, registration *Registration) (*AuthResult, error) {
	return c.authenticate(ctx, RegisterPath, registration)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResult, error) {
	result := &AuthResult{}
	err := c.Call(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, NoAuth: true, NoRetry: true}, result)
	if err != nil {
		return nil, err
	}
	if result.Access != "" && result.Refresh != "" {
		if err = c.store.SetTokens(result.Access, result.Refresh); err != nil {
			return nil, err
		}
	}
	if len(result.User) > 0 && string(result.User) != "null" {
		if err = c.store.SetProfile(result.User); err != nil {
			c.logger.Warn("failed to cache profile", zap.Error(err))
		}
	}
	return result, nil
}

// Me returns the current identity, served from the cache unless force is set or the cache is unreadable
func (c *Client) Me(ctx context.Context, force bool) (*User, error) {
	if !force {
		if cached, ok := c.store.Profile(); ok {
			user := &User{}
			if err := json.Unmarshal(cached, user); err == nil {
				return user, nil
			}
		}
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: MePath})
	if err != nil {
		return nil, err
	}
	return c.cacheProfile(resp)
}

// UpdateProfile edits the current identity and overwrites the cache with the result
func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*User, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodPatch, Path: MePath, Body: update.body()})
	if err != nil {
		return nil, err
	}
	return c.cacheProfile(resp)
}

func (c *Client) cacheProfile(resp *Response) (*User, error) {
	user := &User{}
	if err := resp.Decode(user); err != nil {
		return nil, err
	}
	raw := resp.Raw()
	if raw == nil {
		return user, nil
	}
	if err := c.store.SetProfile(raw); err != nil {
		c.logger.Warn("failed to cache profile", zap.Error(err))
	}
	return user, nil
}

// Logout ends the local session. It never fails and can be called repeatedly.
func (c *Client) Logout() {
	c.store.Clear()
}
