package session

import (
	"net/http"
	neturl "net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestJar_Persists(t *testing.T) {
	storage := NewMemoryStorage()
	jar, err := NewJar(storage, nil)
	require.NoError(t, err)

	u, _ := neturl.Parse("http://127.0.0.1:8000/api/todos/")
	jar.SetCookies(u, []*http.Cookie{
		{Name: "sessionid", Value: "s1", Path: "/", Expires: time.Now().Add(time.Hour)},
		{Name: "csrftoken", Value: "c1"},
	})
	assert.Len(t, jar.Cookies(u), 2)

	rehydrated, err := NewJar(storage, nil)
	require.NoError(t, err)
	names := map[string]string{}
	for _, c := range rehydrated.Cookies(u) {
		names[c.Name] = c.Value
	}
	assert.Equal(t, map[string]string{"sessionid": "s1", "csrftoken": "c1"}, names)
}

func TestJar_Expired(t *testing.T) {
	storage := NewMemoryStorage()
	jar, err := NewJar(storage, nil)
	require.NoError(t, err)

	u, _ := neturl.Parse("http://localhost/")
	jar.SetCookies(u, []*http.Cookie{{Name: "sessionid", Value: "s1"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "sessionid", Value: "", MaxAge: -1}})

	rehydrated, err := NewJar(storage, nil)
	require.NoError(t, err)
	assert.Empty(t, rehydrated.Cookies(u))
}
