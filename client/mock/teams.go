package mock

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (b *Backend) teamMap(t *team) map[string]any {
	return map[string]any{
		"id":           t.id,
		"name":         t.name,
		"description":  t.description,
		"invite_code":  t.inviteCode,
		"owner":        t.owner,
		"owner_name":   b.accounts[t.owner].username,
		"member_count": len(b.members[t.id]),
		"share_url":    b.FrontendURL + "/join-team?code=" + t.inviteCode,
		"created_at":   t.createdAt.Format(time.RFC3339),
	}
}

func (b *Backend) teamPostMap(p *teamPost) map[string]any {
	return map[string]any{
		"id":          p.id,
		"team":        p.team,
		"author":      p.author,
		"author_name": b.accounts[p.author].username,
		"title":       p.title,
		"content":     p.content,
		"meta":        p.meta,
		"created_at":  p.createdAt.Format(time.RFC3339),
	}
}

func (b *Backend) listTeams(w http.ResponseWriter, _ *http.Request, userID int) {
	b.mux.Lock()
	defer b.mux.Unlock()
	ret := []map[string]any{}
	for _, t := range b.teams {
		if b.members[t.id][userID] {
			ret = append(ret, b.teamMap(t))
		}
	}
	writeJSON(w, http.StatusOK, ret)
}

func (b *Backend) createTeam(w http.ResponseWriter, r *http.Request, userID int) {
	data, _ := readJSON(r)
	name := text(data, "name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"name": []string{"This field is required."}})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	t := &team{id: b.id(), name: name, description: text(data, "description"), inviteCode: code, owner: userID, createdAt: time.Now().UTC()}
	b.teams = append(b.teams, t)
	b.members[t.id] = map[int]bool{userID: true}
	writeJSON(w, http.StatusCreated, b.teamMap(t))
}

func (b *Backend) joinTeam(w http.ResponseWriter, r *http.Request, userID int) {
	data, _ := readJSON(r)
	code := strings.ToUpper(text(data, "invite_code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invite code is required"})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	for _, t := range b.teams {
		if t.inviteCode != code {
			continue
		}
		if b.members[t.id][userID] {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "already a member of this team"})
			return
		}
		b.members[t.id][userID] = true
		writeJSON(w, http.StatusOK, map[string]any{"message": "joined team: " + t.name})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid invite code"})
}

func (b *Backend) listTeamPosts(w http.ResponseWriter, r *http.Request, userID int) {
	teamID, _ := pathID(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	if !b.members[teamID][userID] {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "not a member of this team"})
		return
	}
	ret := []map[string]any{}
	for _, p := range b.teamPosts {
		if p.team == teamID {
			ret = append(ret, b.teamPostMap(p))
		}
	}
	writeJSON(w, http.StatusOK, ret)
}

func (b *Backend) createTeamPost(w http.ResponseWriter, r *http.Request, userID int) {
	teamID, _ := pathID(r)
	data, _ := readJSON(r)
	b.mux.Lock()
	defer b.mux.Unlock()
	if _, ok := b.members[teamID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "No Team matches the given query."})
		return
	}
	if !b.members[teamID][userID] {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "not a member of this team"})
		return
	}
	title := text(data, "title")
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"title": []string{"This field is required."}})
		return
	}
	meta := data["meta"]
	if meta == nil {
		meta = map[string]any{}
	}
	p := &teamPost{id: b.id(), team: teamID, author: userID, title: title, content: text(data, "content"), meta: meta, createdAt: time.Now().UTC()}
	b.teamPosts = append(b.teamPosts, p)
	writeJSON(w, http.StatusCreated, b.teamPostMap(p))
}
