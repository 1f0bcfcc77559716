package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	ProfileKey      = "me_cache"
)

// Store is the session of one signed-in user.
// Writes are last-write-wins; a read followed by a write is not atomic.
type Store struct {
	storage Storage
	logger  *zap.Logger
}

// Option configures Store
type Option func(s *Store)

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Storage returns the underlying storage
func (s *Store) Storage() Storage {
	return s.storage
}

func (s *Store) AccessToken() string {
	value, _ := s.storage.Get(AccessTokenKey)
	return value
}

func (s *Store) RefreshToken() string {
	value, _ := s.storage.Get(RefreshTokenKey)
	return value
}

// Authenticated reports whether a non-empty access token is present
func (s *Store) Authenticated() bool {
	return s.AccessToken() != ""
}

// SetTokens stores non-empty tokens, an empty value leaves the stored one untouched.
func (s *Store) SetTokens(access, refresh string) error {
	if access != "" {
		if err := s.storage.Set(AccessTokenKey, access); err != nil {
			return err
		}
	}
	if refresh != "" {
		if err := s.storage.Set(RefreshTokenKey, refresh); err != nil {
			return err
		}
	}
	return nil
}

// Token returns an oauth2 view of the stored pair or nil when there is no access token.
// Expiry comes from the unverified exp claim; it is zero for opaque tokens.
func (s *Store) Token() *oauth2.Token {
	access := s.AccessToken()
	if access == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: s.RefreshToken(),
		TokenType:    "Bearer",
		Expiry:       expiryOf(access),
	}
}

// Profile returns the cached identity
func (s *Store) Profile() (json.RawMessage, bool) {
	value, ok := s.storage.Get(ProfileKey)
	if !ok || value == "" {
		return nil, false
	}
	return json.RawMessage(value), true
}

// SetProfile overwrites the cached identity
func (s *Store) SetProfile(profile json.RawMessage) error {
	return s.storage.Set(ProfileKey, string(profile))
}

// Clear drops tokens and the cached identity. It never fails: storage errors are logged.
func (s *Store) Clear() {
	if err := s.storage.Remove(AccessTokenKey, RefreshTokenKey, ProfileKey); err != nil {
		s.logger.Warn("failed to clear session", zap.Error(err))
	}
}

func expiryOf(access string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// New creates a session store, memory storage is used when storage is nil
func New(storage Storage, options ...Option) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	ret := &Store{storage: storage, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
