package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Author is the embedded post and comment author
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// ChecklistItem is one entry of a checklist post
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Post struct {
	ID             int             `json:"id"`
	Content        string          `json:"content"`
	Tags           string          `json:"tags"`
	Type           string          `json:"type,omitempty"`
	ChecklistItems []ChecklistItem `json:"checklist_items,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Author         Author          `json:"author"`
	LikeCount      int             `json:"like_count"`
	LikedByMe      bool            `json:"liked_by_me"`
}

// NewPost is the post creation input
type NewPost struct {
	Content        string          `json:"content"`
	Tags           string          `json:"tags,omitempty"`
	ChecklistItems []ChecklistItem `json:"checklist_items,omitempty"`
}

type Comment struct {
	ID        int       `json:"id"`
	Post      int       `json:"post"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
}

// Like is the like toggle outcome
type Like struct {
	PostID    int  `json:"post_id"`
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

type Team struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `json:"invite_code"`
	Owner       int       `json:"owner"`
	OwnerName   string    `json:"owner_name"`
	MemberCount int       `json:"member_count"`
	ShareURL    string    `json:"share_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTeam is the team creation input
type NewTeam struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type TeamPost struct {
	ID         int             `json:"id"`
	Team       int             `json:"team"`
	Author     int             `json:"author"`
	AuthorName string          `json:"author_name"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Meta       json.RawMessage `json:"meta,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewTeamPost is the team post creation input
type NewTeamPost struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

type Todo struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Done        bool       `json:"done"`
	DueAt       *time.Time `json:"due_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTodo is the todo creation input, DueAt is optional
type NewTodo struct {
	Title string     `json:"title"`
	DueAt *time.Time `json:"due_at,omitempty"`
}

// TodoUpdate carries the todo fields to change; nil fields are left unchanged and
// ClearDue removes the due date.
type TodoUpdate struct {
	Title    *string
	Done     *bool
	DueAt    *time.Time
	ClearDue bool
}

func (u *TodoUpdate) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if u.Title != nil {
		body["title"] = *u.Title
	}
	if u.Done != nil {
		body["done"] = *u.Done
	}
	switch {
	case u.ClearDue:
		body["due_at"] = nil
	case u.DueAt != nil:
		body["due_at"] = u.DueAt.Format(time.RFC3339)
	}
	return json.Marshal(body)
}

// DayCount is one day of a calendar series
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// UnmarshalJSON decodes the ["YYYY-MM-DD", n] pair form
func (d *DayCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid day count: %s", data)
	}
	if err := json.Unmarshal(pair[0], &d.Day); err != nil {
		return fmt.Errorf("invalid day: %w", err)
	}
	var count float64
	if err := json.Unmarshal(pair[1], &count); err != nil {
		return fmt.Errorf("invalid count: %w", err)
	}
	d.Count = int(count)
	return nil
}

// Calendar is the per-day activity and checklist completion of the current user
type Calendar struct {
	Activity   []DayCount        `json:"activity"`
	Completion []DayCount        `json:"completion"`
	Meta       map[string]string `json:"meta,omitempty"`
}
