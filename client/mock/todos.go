package mock

import (
	"net/http"
	"time"
)

func parseDue(value any) (*time.Time, bool) {
	text, _ := value.(string)
	if text == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// findTodo returns the todo of owner by id; caller holds the lock
func (b *Backend) findTodo(id, owner int) (int, *todo) {
	for i, t := range b.todos {
		if t.id == id && t.owner == owner {
			return i, t
		}
	}
	return -1, nil
}

func (b *Backend) listTodos(w http.ResponseWriter, _ *http.Request, userID int) {
	b.mux.Lock()
	defer b.mux.Unlock()
	ret := []map[string]any{}
	for _, t := range b.todos {
		if t.owner == userID {
			ret = append(ret, t.toMap())
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ret})
}

func (b *Backend) createTodo(w http.ResponseWriter, r *http.Request, userID int) {
	data, ok := readJSON(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed JSON"})
		return
	}
	title := text(data, "title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "title must not be empty"})
		return
	}
	due, ok := parseDue(data["due_at"])
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid due_at"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	t := &todo{id: b.id(), owner: userID, title: title, dueAt: due, createdAt: time.Now().UTC()}
	b.todos = append(b.todos, t)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "created", "id": t.id})
}

func (b *Backend) updateTodo(w http.ResponseWriter, r *http.Request, userID int) {
	id, _ := pathID(r)
	data, ok := readJSON(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed JSON"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	_, t := b.findTodo(id, userID)
	if t == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	if _, ok := data["title"]; ok {
		t.title = text(data, "title")
	}
	if value, ok := data["due_at"]; ok {
		due, valid := parseDue(value)
		if !valid {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid due_at"})
			return
		}
		t.dueAt = due
	}
	if value, ok := data["done"]; ok {
		done, _ := value.(bool)
		switch {
		case done && !t.done:
			now := time.Now().UTC()
			t.done, t.completedAt = true, &now
		case !done && t.done:
			t.done, t.completedAt = false, nil
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "updated"})
}

func (b *Backend) deleteTodo(w http.ResponseWriter, r *http.Request, userID int) {
	id, _ := pathID(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	i, t := b.findTodo(id, userID)
	if t == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
		return
	}
	b.todos = append(b.todos[:i], b.todos[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
}
