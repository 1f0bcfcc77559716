package mock

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type userHandler func(w http.ResponseWriter, r *http.Request, userID int)

// authenticated guards a protected resource with the bearer access token
func (b *Backend) authenticated(handler userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, status, message := b.bearer(r)
		if status != 0 {
			writeJSON(w, status, map[string]any{"detail": message})
			return
		}
		handler(w, r, userID)
	}
}

// optional resolves the user when a valid bearer token is sent, anonymous otherwise
func (b *Backend) optional(handler userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, status, message := b.bearer(r)
		if status != 0 && r.Header.Get("Authorization") != "" {
			writeJSON(w, status, map[string]any{"detail": message})
			return
		}
		handler(w, r, userID)
	}
}

func (b *Backend) bearer(r *http.Request) (int, int, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, http.StatusUnauthorized, "Authentication credentials were not provided."
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, http.StatusUnauthorized, "Authorization header must contain two space-delimited values"
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	userID, err := b.verifyJWT(parts[1], accessTokenType)
	if err != nil {
		return 0, http.StatusUnauthorized, "Given token not valid for any token type"
	}
	return userID, 0, ""
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func readJSON(r *http.Request) (map[string]any, bool) {
	ret := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&ret); err != nil {
		return nil, false
	}
	return ret, true
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

func text(data map[string]any, key string) string {
	value, _ := data[key].(string)
	return strings.TrimSpace(value)
}
