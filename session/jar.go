package session

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CookiesKey holds the persisted cookie index
const CookiesKey = "cookies"

// Jar wraps cookiejar.Jar and mirrors every cookie it accepts into Storage,
// so backend session cookies survive restarts alongside the token pair.
type Jar struct {
	mu      sync.RWMutex
	inner   *cookiejar.Jar
	storage Storage
	index   map[string]persistedCookie
	logger  *zap.Logger
}

type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure"`
	HttpOnly bool      `json:"httpOnly"`
}

func (c persistedCookie) key() string {
	return c.Domain + "|" + c.Path + "|" + c.Name
}

func (c persistedCookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && now.After(c.Expires)
}

func (c persistedCookie) url() *neturl.URL {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	return &neturl.URL{Scheme: scheme, Host: strings.TrimPrefix(c.Domain, "."), Path: c.Path}
}

func (j *Jar) Cookies(u *neturl.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

func (j *Jar) SetCookies(u *neturl.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	now := time.Now()
	for _, c := range cookies {
		pc := persistedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   strings.TrimPrefix(strings.TrimSpace(c.Domain), "."),
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		if pc.Domain == "" {
			pc.Domain = hostOf(u)
		}
		if strings.TrimSpace(pc.Path) == "" {
			pc.Path = "/"
		}
		if c.MaxAge < 0 || pc.expired(now) {
			delete(j.index, pc.key())
			continue
		}
		if c.MaxAge > 0 {
			pc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.index[pc.key()] = pc
	}
	if err := j.save(); err != nil {
		j.logger.Warn("failed to persist cookies", zap.Error(err))
	}
}

func (j *Jar) save() error {
	var cookies []persistedCookie
	for _, c := range j.index {
		cookies = append(cookies, c)
	}
	data, err := json.Marshal(cookies)
	if err != nil {
		return err
	}
	return j.storage.Set(CookiesKey, string(data))
}

func (j *Jar) load() {
	value, ok := j.storage.Get(CookiesKey)
	if !ok || value == "" {
		return
	}
	var cookies []persistedCookie
	if err := json.Unmarshal([]byte(value), &cookies); err != nil {
		j.logger.Warn("ignoring malformed cookie snapshot", zap.Error(err))
		return
	}
	now := time.Now()
	for _, pc := range cookies {
		if pc.expired(now) || pc.Domain == "" {
			continue
		}
		j.index[pc.key()] = pc
		j.inner.SetCookies(pc.url(), []*http.Cookie{{
			Name:     pc.Name,
			Value:    pc.Value,
			Path:     pc.Path,
			Expires:  pc.Expires,
			Secure:   pc.Secure,
			HttpOnly: pc.HttpOnly,
		}})
	}
}

func hostOf(u *neturl.URL) string {
	host := u.Host
	if h, _, err := net.SplitHostPort(host); err == nil && h != "" {
		host = h
	}
	return host
}

// NewJar creates a cookie jar persisted in storage and rehydrates previously stored cookies
func NewJar(storage Storage, logger *zap.Logger) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ret := &Jar{inner: inner, storage: storage, index: map[string]persistedCookie{}, logger: logger}
	ret.load()
	return ret, nil
}
