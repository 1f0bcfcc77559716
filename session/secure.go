package session

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultKey encrypts with the scy built-in blowfish key.
const DefaultKey = "blowfish://default"

type secureBackend struct {
	fs      afs.Service
	secrets *scy.Service
	URL     string
	key     string
}

func (s *secureBackend) resource() *scy.Resource {
	return scy.NewResource("", s.URL, s.key)
}

func (s *secureBackend) read(ctx context.Context) ([]byte, error) {
	ok, err := s.fs.Exists(ctx, s.URL)
	if err != nil || !ok {
		return nil, err
	}
	secret, err := s.secrets.Load(ctx, s.resource())
	if err != nil {
		return nil, err
	}
	return []byte(secret.String()), nil
}

func (s *secureBackend) write(ctx context.Context, data []byte) error {
	return s.secrets.Store(ctx, scy.NewSecret(string(data), s.resource()))
}

// NewSecureStorage creates storage encrypted at rest with scy, key is a kms URL (DefaultKey when empty).
func NewSecureStorage(ctx context.Context, URL, key string) (*PersistentStorage, error) {
	if key == "" {
		key = DefaultKey
	}
	b := &secureBackend{fs: afs.New(), secrets: scy.New(), URL: URL, key: key}
	return newPersistentStorage(ctx, URL, b)
}
