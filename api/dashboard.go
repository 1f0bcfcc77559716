package api

import (
	"context"
	"fmt"

	"github.com/viant/memo/client"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the signed-in landing view
type Dashboard struct {
	Me    *client.User `json:"me"`
	Posts []*Post      `json:"posts"`
	Teams []*Team      `json:"teams"`
	Todos []*Todo      `json:"todos"`
}

// Dashboard loads profile, feed, teams and todos concurrently; the first failure cancels the rest
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	ret := &Dashboard{}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		if ret.Me, err = s.client.Me(ctx, false); err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		if ret.Posts, err = s.ListPosts(ctx); err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		if ret.Teams, err = s.ListTeams(ctx); err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})
	group.Go(func() (err error) {
		if ret.Todos, err = s.ListTodos(ctx); err != nil {
			return fmt.Errorf("failed to load todos: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
