package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/memo/internal/collection"
)

// backend reads and writes the raw snapshot document.
type backend interface {
	read(ctx context.Context) ([]byte, error)
	write(ctx context.Context, data []byte) error
}

// PersistentStorage keeps entries in memory and rewrites the whole snapshot on every
// mutation, so the file always reflects the last successful write.
type PersistentStorage struct {
	mux     sync.Mutex
	URL     string
	entries *collection.SyncMap[string, string]
	backend backend
}

type snapshot struct {
	Entries map[string]string `json:"entries"`
}

func (p *PersistentStorage) Get(key string) (string, bool) {
	return p.entries.Get(key)
}

func (p *PersistentStorage) Set(key, value string) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	prev, existed := p.entries.Get(key)
	if existed && prev == value {
		return nil
	}
	p.entries.Put(key, value)
	if err := p.save(context.Background()); err != nil {
		if existed {
			p.entries.Put(key, prev)
		} else {
			p.entries.Delete(key)
		}
		return err
	}
	return nil
}

func (p *PersistentStorage) Remove(keys ...string) error {
	p.mux.Lock()
	defer p.mux.Unlock()
	removed := map[string]string{}
	for _, key := range keys {
		if value, ok := p.entries.Get(key); ok {
			removed[key] = value
		}
	}
	if !p.entries.Delete(keys...) {
		return nil
	}
	if err := p.save(context.Background()); err != nil {
		for key, value := range removed {
			p.entries.Put(key, value)
		}
		return err
	}
	return nil
}

func (p *PersistentStorage) save(ctx context.Context) error {
	data, err := json.MarshalIndent(snapshot{Entries: p.entries.Snapshot()}, "", "  ")
	if err != nil {
		return err
	}
	if err = p.backend.write(ctx, data); err != nil {
		return fmt.Errorf("failed to persist session %v: %w", p.URL, err)
	}
	return nil
}

func (p *PersistentStorage) load(ctx context.Context) error {
	data, err := p.backend.read(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session %v: %w", p.URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var snap snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode session %v: %w", p.URL, err)
	}
	for k, v := range snap.Entries {
		p.entries.Put(k, v)
	}
	return nil
}

type fileBackend struct {
	fs  afs.Service
	URL string
}

func (f *fileBackend) read(ctx context.Context) ([]byte, error) {
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil || !ok {
		return nil, err
	}
	return f.fs.DownloadWithURL(ctx, f.URL)
}

func (f *fileBackend) write(ctx context.Context, data []byte) error {
	return f.fs.Upload(ctx, f.URL, 0o600, bytes.NewReader(data))
}

func newPersistentStorage(ctx context.Context, URL string, b backend) (*PersistentStorage, error) {
	ret := &PersistentStorage{
		URL:     URL,
		entries: collection.NewSyncMap[string, string](),
		backend: b,
	}
	if err := ret.load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFileStorage creates storage persisted as JSON at any afs URL (local path, file://, mem://).
func NewFileStorage(ctx context.Context, URL string) (*PersistentStorage, error) {
	return newPersistentStorage(ctx, URL, &fileBackend{fs: afs.New(), URL: URL})
}
