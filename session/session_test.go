package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingStorage struct {
	Storage
}

func (f *failingStorage) Remove(keys ...string) error {
	return errors.New("disk full")
}

func TestStore_Tokens(t *testing.T) {
	testCases := []struct {
		description   string
		writes        [][2]string
		expectAccess  string
		expectRefresh string
	}{
		{
			description:   "login stores both tokens",
			writes:        [][2]string{{"A1", "R1"}},
			expectAccess:  "A1",
			expectRefresh: "R1",
		},
		{
			description:   "access-only refresh keeps refresh token",
			writes:        [][2]string{{"A1", "R1"}, {"A2", ""}},
			expectAccess:  "A2",
			expectRefresh: "R1",
		},
		{
			description:   "rotated refresh token",
			writes:        [][2]string{{"A1", "R1"}, {"A2", "R2"}},
			expectAccess:  "A2",
			expectRefresh: "R2",
		},
		{
			description: "empty writes store nothing",
			writes:      [][2]string{{"", ""}},
		},
	}
	for _, testCase := range testCases {
		store := New(nil)
		for _, w := range testCase.writes {
			require.NoError(t, store.SetTokens(w[0], w[1]), testCase.description)
		}
		assert.Equal(t, testCase.expectAccess, store.AccessToken(), testCase.description)
		assert.Equal(t, testCase.expectRefresh, store.RefreshToken(), testCase.description)
		assert.Equal(t, testCase.expectAccess != "", store.Authenticated(), testCase.description)
	}
}

func TestStore_Token(t *testing.T) {
	store := New(nil)
	assert.Nil(t, store.Token())

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": expiry.Unix()}).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, store.SetTokens(access, "R1"))

	token := store.Token()
	require.NotNil(t, token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "R1", token.RefreshToken)
	assert.True(t, token.Expiry.Equal(expiry))
	assert.True(t, token.Valid())

	require.NoError(t, store.SetTokens("opaque", ""))
	assert.True(t, store.Token().Expiry.IsZero())
}

func TestStore_Profile(t *testing.T) {
	store := New(nil)
	_, ok := store.Profile()
	assert.False(t, ok)

	require.NoError(t, store.SetProfile(json.RawMessage(`{"id":1}`)))
	profile, ok := store.Profile()
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(profile))
}

func TestStore_Clear(t *testing.T) {
	store := New(nil)
	require.NoError(t, store.SetTokens("A1", "R1"))
	require.NoError(t, store.SetProfile(json.RawMessage(`{"id":1}`)))

	for i := 0; i < 2; i++ {
		store.Clear()
		assert.Equal(t, "", store.AccessToken())
		assert.Equal(t, "", store.RefreshToken())
		_, ok := store.Profile()
		assert.False(t, ok)
	}
}

func TestStore_ClearSwallowsStorageError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := New(&failingStorage{Storage: NewMemoryStorage()}, WithLogger(zap.New(core)))
	assert.NotPanics(t, store.Clear)
	assert.Equal(t, 1, logs.FilterMessage("failed to clear session").Len())
}
