package mock

import (
	"encoding/json"
	"net/http"
	"time"
)

func (b *Backend) postMap(p *post, userID int) map[string]any {
	items := p.checklist
	if items == nil {
		items = []checklistItem{}
	}
	return map[string]any{
		"id":              p.id,
		"content":         p.content,
		"tags":            p.tags,
		"type":            p.kind,
		"checklist_items": items,
		"created_at":      p.createdAt.Format(time.RFC3339),
		"author":          b.accounts[p.author].author(),
		"like_count":      len(p.likes),
		"liked_by_me":     userID != 0 && p.likes[userID],
	}
}

// findPost returns the post by id; caller holds the lock
func (b *Backend) findPost(id int) *post {
	for _, p := range b.posts {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (b *Backend) listPosts(w http.ResponseWriter, _ *http.Request, userID int) {
	b.mux.Lock()
	defer b.mux.Unlock()
	ret := make([]map[string]any, 0, len(b.posts))
	for i := len(b.posts) - 1; i >= 0; i-- {
		ret = append(ret, b.postMap(b.posts[i], userID))
	}
	writeJSON(w, http.StatusOK, ret)
}

func (b *Backend) createPost(w http.ResponseWriter, r *http.Request, userID int) {
	data, ok := readJSON(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "JSON parse error"})
		return
	}
	content := text(data, "content")
	if content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "content must not be empty"})
		return
	}
	p := &post{content: content, tags: text(data, "tags"), kind: "text", createdAt: time.Now().UTC(), likes: map[int]bool{}}
	if raw, ok := data["checklist_items"]; ok {
		encoded, _ := json.Marshal(raw)
		if err := json.Unmarshal(encoded, &p.checklist); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"checklist_items": []string{"Invalid checklist."}})
			return
		}
		p.kind = "checklist"
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	p.id = b.id()
	p.author = userID
	b.posts = append(b.posts, p)
	writeJSON(w, http.StatusCreated, b.postMap(p, userID))
}

func (b *Backend) listComments(w http.ResponseWriter, r *http.Request) {
	postID, _ := pathID(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	ret := []map[string]any{}
	for _, c := range b.comments {
		if c.post == postID {
			ret = append(ret, b.commentMap(c))
		}
	}
	writeJSON(w, http.StatusOK, ret)
}

func (b *Backend) commentMap(c *comment) map[string]any {
	return map[string]any{
		"id":         c.id,
		"post":       c.post,
		"content":    c.content,
		"created_at": c.createdAt.Format(time.RFC3339),
		"author":     b.accounts[c.author].author(),
	}
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request, userID int) {
	postID, _ := pathID(r)
	data, _ := readJSON(r)
	content := text(data, "content")
	if content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "comment must not be empty"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	if b.findPost(postID) == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "post not found"})
		return
	}
	c := &comment{id: b.id(), post: postID, author: userID, content: content, createdAt: time.Now().UTC()}
	b.comments = append(b.comments, c)
	writeJSON(w, http.StatusCreated, b.commentMap(c))
}

func (b *Backend) toggleLike(w http.ResponseWriter, r *http.Request, userID int) {
	postID, _ := pathID(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	p := b.findPost(postID)
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "post not found"})
		return
	}
	liked := !p.likes[userID]
	if liked {
		p.likes[userID] = true
	} else {
		delete(p.likes, userID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"post_id": postID, "liked": liked, "like_count": len(p.likes)})
}

func (b *Backend) toggleChecklist(w http.ResponseWriter, r *http.Request, userID int) {
	postID, _ := pathID(r)
	data, _ := readJSON(r)
	index, ok := data["index"].(float64)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "index is required"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	p := b.findPost(postID)
	switch {
	case p == nil:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "post not found"})
		return
	case p.author != userID:
		writeJSON(w, http.StatusForbidden, map[string]any{"detail": "You do not have permission to perform this action."})
		return
	case int(index) < 0 || int(index) >= len(p.checklist):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "index out of range"})
		return
	}
	p.checklist[int(index)].Done = !p.checklist[int(index)].Done
	writeJSON(w, http.StatusOK, map[string]any{"checklist_items": p.checklist})
}
