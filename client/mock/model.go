package mock

import (
	"time"
)

type account struct {
	id         int
	username   string
	email      string
	password   string
	name       string
	bio        string
	location   string
	gender     string
	contact    string
	themeColor string
	avatar     string
	cover      string
	dateJoined time.Time
}

func (a *account) toMap(base string) map[string]any {
	return map[string]any{
		"id":           a.id,
		"username":     a.username,
		"email":        a.email,
		"name":         a.name,
		"bio":          a.bio,
		"location":     a.location,
		"gender":       a.gender,
		"contact":      a.contact,
		"theme_color":  a.themeColor,
		"avatar_url":   mediaURL(base, a.avatar),
		"cover_url":    mediaURL(base, a.cover),
		"date_joined":  a.dateJoined.Format(time.RFC3339),
		"is_staff":     false,
		"is_superuser": false,
	}
}

func (a *account) author() map[string]any {
	return map[string]any{"id": a.id, "username": a.username, "email": a.email, "name": a.name}
}

func mediaURL(base, name string) any {
	if name == "" {
		return nil
	}
	return base + "/media/" + name
}

type checklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type post struct {
	id        int
	author    int
	content   string
	tags      string
	kind      string
	checklist []checklistItem
	createdAt time.Time
	likes     map[int]bool
}

type comment struct {
	id        int
	post      int
	author    int
	content   string
	createdAt time.Time
}

type team struct {
	id          int
	name        string
	description string
	inviteCode  string
	owner       int
	createdAt   time.Time
}

type teamPost struct {
	id        int
	team      int
	author    int
	title     string
	content   string
	meta      any
	createdAt time.Time
}

type todo struct {
	id          int
	owner       int
	title       string
	done        bool
	dueAt       *time.Time
	completedAt *time.Time
	createdAt   time.Time
}

func (t *todo) toMap() map[string]any {
	return map[string]any{
		"id":           t.id,
		"title":        t.title,
		"done":         t.done,
		"due_at":       formatTime(t.dueAt),
		"completed_at": formatTime(t.completedAt),
		"created_at":   t.createdAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// id allocates the next identifier; caller holds the lock
func (b *Backend) id() int {
	b.nextID++
	return b.nextID
}
