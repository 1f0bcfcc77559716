package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMap(t *testing.T) {
	m := NewSyncMap[string, string]()
	m.Put("a", "1")
	m.Put("b", "2")

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 2, m.Len())

	assert.True(t, m.Delete("a", "missing"))
	assert.False(t, m.Delete("a"))
	_, ok = m.Get("a")
	assert.False(t, ok)

	// Range over a snapshot allows mutation from the callback.
	m.Range(func(key, value string) bool {
		m.Put(key+"x", value)
		return true
	})
	assert.Equal(t, map[string]string{"b": "2", "bx": "2"}, m.Snapshot())
}
