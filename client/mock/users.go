package mock

import (
	"net/http"
	"strings"
)

var profileFields = []string{"name", "bio", "location", "gender", "contact", "theme_color"}

func (b *Backend) me(w http.ResponseWriter, r *http.Request, userID int) {
	b.mux.Lock()
	defer b.mux.Unlock()
	writeJSON(w, http.StatusOK, b.accounts[userID].toMap(baseURL(r)))
}

func (b *Backend) updateMe(w http.ResponseWriter, r *http.Request, userID int) {
	values := map[string]string{}
	files := map[string]string{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Multipart form parse error - " + err.Error()})
			return
		}
		for _, field := range profileFields {
			if v, ok := r.MultipartForm.Value[field]; ok && len(v) > 0 {
				values[field] = v[0]
			}
		}
		for _, field := range []string{"avatar", "cover"} {
			if headers := r.MultipartForm.File[field]; len(headers) > 0 {
				files[field] = headers[0].Filename
			}
		}
	} else {
		data, ok := readJSON(r)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "JSON parse error"})
			return
		}
		for _, field := range profileFields {
			if _, ok := data[field]; ok {
				values[field] = text(data, field)
			}
		}
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	user := b.accounts[userID]
	for field, value := range values {
		switch field {
		case "name":
			user.name = value
		case "bio":
			user.bio = value
		case "location":
			user.location = value
		case "gender":
			user.gender = value
		case "contact":
			user.contact = value
		case "theme_color":
			user.themeColor = value
		}
	}
	if name, ok := files["avatar"]; ok {
		user.avatar = "avatars/" + name
	}
	if name, ok := files["cover"]; ok {
		user.cover = "covers/" + name
	}
	writeJSON(w, http.StatusOK, user.toMap(baseURL(r)))
}
