package api

import (
	"context"
	"net/http"
	"strings"
)

// ListTeams returns teams the current user is a member of
func (s *Service) ListTeams(ctx context.Context) ([]*Team, error) {
	var ret []*Team
	return ret, s.get(ctx, TeamsPath, nil, &ret)
}

// CreateTeam creates a team owned by the current user
func (s *Service) CreateTeam(ctx context.Context, team *NewTeam) (*Team, error) {
	ret := &Team{}
	return ret, s.send(ctx, http.MethodPost, TeamsPath, team, ret)
}

// JoinTeam joins a team by invite code and returns the backend confirmation
func (s *Service) JoinTeam(ctx context.Context, inviteCode string) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	body := map[string]string{"invite_code": strings.ToUpper(strings.TrimSpace(inviteCode))}
	if err := s.send(ctx, http.MethodPost, JoinTeamPath, body, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

func (s *Service) ListTeamPosts(ctx context.Context, teamID int) ([]*TeamPost, error) {
	var ret []*TeamPost
	return ret, s.get(ctx, teamPath(teamID, "posts/"), nil, &ret)
}

func (s *Service) CreateTeamPost(ctx context.Context, teamID int, post *NewTeamPost) (*TeamPost, error) {
	ret := &TeamPost{}
	return ret, s.send(ctx, http.MethodPost, teamPath(teamID, "posts/"), post, ret)
}
