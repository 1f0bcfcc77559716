package session

import (
	"github.com/viant/memo/internal/collection"
)

// Storage is a string keyed persistent storage.
type Storage interface {
	// Get returns the value for key, ok is false when the key is absent
	Get(key string) (string, bool)
	// Set stores value under key
	Set(key, value string) error
	// Remove deletes keys, removing an absent key is not an error
	Remove(keys ...string) error
}

type memoryStorage struct {
	entries *collection.SyncMap[string, string]
}

func (m *memoryStorage) Get(key string) (string, bool) {
	return m.entries.Get(key)
}

func (m *memoryStorage) Set(key, value string) error {
	m.entries.Put(key, value)
	return nil
}

func (m *memoryStorage) Remove(keys ...string) error {
	m.entries.Delete(keys...)
	return nil
}

// NewMemoryStorage creates process local storage
func NewMemoryStorage() Storage {
	return &memoryStorage{entries: collection.NewSyncMap[string, string]()}
}
