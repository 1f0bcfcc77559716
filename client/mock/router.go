package mock

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

func (b *Backend) routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/login/{$}", b.login)
	mux.HandleFunc("POST /api/users/register/{$}", b.register)
	mux.HandleFunc("POST /api/users/token/refresh/{$}", b.refresh)
	mux.HandleFunc("POST /api/users/logout/{$}", b.authenticated(b.logout))
	mux.HandleFunc("GET /api/users/me/{$}", b.authenticated(b.me))
	mux.HandleFunc("PATCH /api/users/me/{$}", b.authenticated(b.updateMe))

	mux.HandleFunc("GET /api/posts/{$}", b.optional(b.listPosts))
	mux.HandleFunc("POST /api/posts/{$}", b.authenticated(b.createPost))
	mux.HandleFunc("GET /api/posts/{id}/comments/{$}", b.listComments)
	mux.HandleFunc("POST /api/posts/{id}/comments/new/{$}", b.authenticated(b.createComment))
	mux.HandleFunc("POST /api/posts/{id}/like-toggle/{$}", b.authenticated(b.toggleLike))
	mux.HandleFunc("POST /api/posts/{id}/checklist/toggle/{$}", b.authenticated(b.toggleChecklist))

	mux.HandleFunc("GET /api/teams/{$}", b.authenticated(b.listTeams))
	mux.HandleFunc("POST /api/teams/{$}", b.authenticated(b.createTeam))
	mux.HandleFunc("POST /api/teams/join/{$}", b.authenticated(b.joinTeam))
	mux.HandleFunc("GET /api/teams/{id}/posts/{$}", b.authenticated(b.listTeamPosts))
	mux.HandleFunc("POST /api/teams/{id}/posts/{$}", b.authenticated(b.createTeamPost))

	mux.HandleFunc("GET /api/todos/{$}", b.authenticated(b.listTodos))
	mux.HandleFunc("POST /api/todos/{$}", b.authenticated(b.createTodo))
	mux.HandleFunc("PATCH /api/todos/{id}/{$}", b.authenticated(b.updateTodo))
	mux.HandleFunc("DELETE /api/todos/{id}/{$}", b.authenticated(b.deleteTodo))

	mux.HandleFunc("GET /api/stats/calendar/{$}", b.authenticated(b.calendar))
}

// record captures every exchange before dispatching it
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		exchange := Exchange{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-Id"),
		}
		if !strings.HasPrefix(exchange.ContentType, "multipart/") {
			exchange.Body = string(body)
		}
		b.mux.Lock()
		b.exchanges = append(b.exchanges, exchange)
		b.mux.Unlock()
		next.ServeHTTP(w, r)
	})
}
