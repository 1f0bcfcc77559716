package api

import (
	"context"
	"net/http"
)

// ListPosts returns the public feed, liked_by_me is set for a signed-in user
func (s *Service) ListPosts(ctx context.Context) ([]*Post, error) {
	var ret []*Post
	return ret, s.get(ctx, PostsPath, nil, &ret)
}

func (s *Service) CreatePost(ctx context.Context, post *NewPost) (*Post, error) {
	ret := &Post{}
	return ret, s.send(ctx, http.MethodPost, PostsPath, post, ret)
}

func (s *Service) ListComments(ctx context.Context, postID int) ([]*Comment, error) {
	var ret []*Comment
	return ret, s.get(ctx, postPath(postID, "comments/"), nil, &ret)
}

func (s *Service) AddComment(ctx context.Context, postID int, content string) (*Comment, error) {
	ret := &Comment{}
	body := map[string]string{"content": content}
	return ret, s.send(ctx, http.MethodPost, postPath(postID, "comments/new/"), body, ret)
}

// ToggleLike likes or unlikes the post
func (s *Service) ToggleLike(ctx context.Context, postID int) (*Like, error) {
	ret := &Like{}
	return ret, s.send(ctx, http.MethodPost, postPath(postID, "like-toggle/"), nil, ret)
}

// ToggleChecklist flips the done flag of the checklist item at index and returns the updated list
func (s *Service) ToggleChecklist(ctx context.Context, postID, index int) ([]ChecklistItem, error) {
	var result struct {
		ChecklistItems []ChecklistItem `json:"checklist_items"`
	}
	body := map[string]int{"index": index}
	if err := s.send(ctx, http.MethodPost, postPath(postID, "checklist/toggle/"), body, &result); err != nil {
		return nil, err
	}
	return result.ChecklistItems, nil
}
