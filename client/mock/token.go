package mock

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const passwordMinLength = 6

// AddUser seeds an account and returns its id
func (b *Backend) AddUser(email, password, name string) int {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.addUser(strings.ToLower(email), password, "", name)
}

// addUser creates an account; caller holds the lock
func (b *Backend) addUser(email, password, username, name string) int {
	if username == "" {
		base := strings.Split(email, "@")[0]
		username = base
		for i := 2; b.usernameTaken(username); i++ {
			username = fmt.Sprintf("%s%d", base, i)
		}
	}
	id := b.id()
	b.accounts[id] = &account{
		id:         id,
		username:   username,
		email:      email,
		password:   password,
		name:       name,
		dateJoined: time.Now().UTC(),
	}
	return id
}

func (b *Backend) usernameTaken(username string) bool {
	for _, a := range b.accounts {
		if a.username == username {
			return true
		}
	}
	return false
}

func (b *Backend) findByEmail(email string) *account {
	for _, a := range b.accounts {
		if strings.EqualFold(a.email, email) {
			return a
		}
	}
	return nil
}

func baseURL(r *http.Request) string {
	return "http://" + r.Host
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	data, ok := readJSON(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "JSON parse error"})
		return
	}
	email, password := strings.ToLower(text(data, "email")), text(data, "password")
	if email == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email and password are required"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	user := b.findByEmail(email)
	if user == nil || user.password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid credentials"})
		return
	}
	b.writeSession(w, r, http.StatusOK, user, "login succeeded")
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	data, ok := readJSON(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "JSON parse error"})
		return
	}
	email, password := strings.ToLower(text(data, "email")), text(data, "password")
	switch {
	case email == "" || password == "":
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email and password are required"})
		return
	case len(password) < passwordMinLength:
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": fmt.Sprintf("password must have at least %d characters", passwordMinLength)})
		return
	case !strings.Contains(email, "@"):
		writeJSON(w, http.StatusBadRequest, map[string]any{"email": []string{"Enter a valid email address."}})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	if b.findByEmail(email) != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email already registered"})
		return
	}
	id := b.addUser(email, password, text(data, "username"), text(data, "name"))
	b.writeSession(w, r, http.StatusCreated, b.accounts[id], "registration succeeded")
}

// writeSession answers with a token pair and the user; caller holds the lock
func (b *Backend) writeSession(w http.ResponseWriter, r *http.Request, status int, user *account, message string) {
	tokens, err := b.issueTokens(user.id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
		return
	}
	tokens["message"] = message
	tokens["user"] = user.toMap(baseURL(r))
	writeJSON(w, status, tokens)
}

func (b *Backend) refresh(w http.ResponseWriter, r *http.Request) {
	data, _ := readJSON(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	b.refreshCalls++
	refresh := text(data, "refresh")
	if refresh == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"refresh": []string{"This field is required."}})
		return
	}
	if b.rejectRefresh {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	userID, err := b.verifyJWT(refresh, refreshTokenType)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	access, err := b.createJWT(userID, accessTokenType, b.AccessTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
		return
	}
	response := map[string]any{"access": access}
	if b.RotateRefresh {
		if response["refresh"], err = b.createJWT(userID, refreshTokenType, b.RefreshTTL); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (b *Backend) logout(w http.ResponseWriter, _ *http.Request, _ int) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}
