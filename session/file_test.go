package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/memo/file_test/session.json"
	fs := afs.New()
	_ = fs.Delete(ctx, URL)

	storage, err := NewFileStorage(ctx, URL)
	require.NoError(t, err)
	_, ok := storage.Get(AccessTokenKey)
	assert.False(t, ok)

	store := New(storage)
	require.NoError(t, store.SetTokens("A1", "R1"))

	reloaded, err := NewFileStorage(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "A1", New(reloaded).AccessToken())
	assert.Equal(t, "R1", New(reloaded).RefreshToken())

	New(reloaded).Clear()
	again, err := NewFileStorage(ctx, URL)
	require.NoError(t, err)
	assert.False(t, New(again).Authenticated())
}

func TestFileStorage_Malformed(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/memo/file_test/malformed.json"
	require.NoError(t, afs.New().Upload(ctx, URL, 0o600, stringReader("{not json")))
	_, err := NewFileStorage(ctx, URL)
	assert.Error(t, err)
}

func TestSecureStorage(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/memo/secure_test/session.json"
	_ = afs.New().Delete(ctx, URL)

	storage, err := NewSecureStorage(ctx, URL, "")
	require.NoError(t, err)
	require.NoError(t, New(storage).SetTokens("A1", "R1"))

	raw, err := afs.New().DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "R1")

	reloaded, err := NewSecureStorage(ctx, URL, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "A1", New(reloaded).AccessToken())
	assert.Equal(t, "R1", New(reloaded).RefreshToken())
}

type flakyBackend struct {
	data []byte
	fail bool
}

func (f *flakyBackend) read(context.Context) ([]byte, error) {
	return f.data, nil
}

func (f *flakyBackend) write(_ context.Context, data []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.data = data
	return nil
}

func TestPersistentStorage_FailedWriteKeepsMemory(t *testing.T) {
	b := &flakyBackend{}
	storage, err := newPersistentStorage(context.Background(), "mem://localhost/memo/flaky.json", b)
	require.NoError(t, err)
	require.NoError(t, storage.Set(AccessTokenKey, "A1"))

	b.fail = true
	assert.Error(t, storage.Set(AccessTokenKey, "A2"))
	value, ok := storage.Get(AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "A1", value, "previous value restored")

	assert.Error(t, storage.Set(RefreshTokenKey, "R1"))
	_, ok = storage.Get(RefreshTokenKey)
	assert.False(t, ok, "absent key stays absent")

	assert.Error(t, storage.Remove(AccessTokenKey, RefreshTokenKey))
	value, ok = storage.Get(AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "A1", value, "removed key restored")

	b.fail = false
	require.NoError(t, storage.Remove(AccessTokenKey))
	reloaded, err := newPersistentStorage(context.Background(), "mem://localhost/memo/flaky.json", b)
	require.NoError(t, err)
	_, ok = reloaded.Get(AccessTokenKey)
	assert.False(t, ok)
}
