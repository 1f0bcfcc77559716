// Package api exposes the memo backend resources (posts, teams, todos and calendar stats)
// as typed calls on top of the authenticated request client.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/viant/memo/client"
)

const (
	PostsPath    = "/api/posts/"
	TeamsPath    = "/api/teams/"
	JoinTeamPath = "/api/teams/join/"
	TodosPath    = "/api/todos/"
	CalendarPath = "/api/stats/calendar/"
)

// Service represents backend resources
type Service struct {
	client *client.Client
}

// Client returns the underlying request client
func (s *Service) Client() *client.Client {
	return s.client
}

func (s *Service) get(ctx context.Context, path string, query url.Values, result any) error {
	return s.client.Call(ctx, &client.Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

func (s *Service) send(ctx context.Context, method, path string, body any, result any) error {
	return s.client.Call(ctx, &client.Request{Method: method, Path: path, Body: body}, result)
}

func postPath(postID int, suffix string) string {
	return fmt.Sprintf("%s%d/%s", PostsPath, postID, suffix)
}

func teamPath(teamID int, suffix string) string {
	return fmt.Sprintf("%s%d/%s", TeamsPath, teamID, suffix)
}

func todoPath(todoID int) string {
	return fmt.Sprintf("%s%d/", TodosPath, todoID)
}

// New creates a service
func New(client *client.Client) *Service {
	return &Service{client: client}
}
