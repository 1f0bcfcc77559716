package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/memo/api"
)

type teamsCommand struct {
	app *App
}

func (c *teamsCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	teams, err := m.API.ListTeams(ctx)
	if err != nil {
		return err
	}
	return c.app.print(teams)
}

type teamCreateCommand struct {
	app         *App
	Name        string `short:"n" long:"name" description:"team name" required:"yes"`
	Description string `short:"d" long:"description" description:"team description"`
}

func (c *teamCreateCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	team, err := m.API.CreateTeam(ctx, &api.NewTeam{Name: c.Name, Description: c.Description})
	if err != nil {
		return err
	}
	return c.app.print(team)
}

type teamJoinCommand struct {
	app  *App
	Args struct {
		Code string `positional-arg-name:"invite-code"`
	} `positional-args:"yes" required:"yes"`
}

func (c *teamJoinCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	message, err := m.API.JoinTeam(ctx, c.Args.Code)
	if err != nil {
		return err
	}
	return c.app.print(map[string]string{"message": message})
}

type teamArg struct {
	TeamID int `positional-arg-name:"team-id"`
}

type teamPostsCommand struct {
	app  *App
	Args teamArg `positional-args:"yes" required:"yes"`
}

func (c *teamPostsCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	posts, err := m.API.ListTeamPosts(ctx, c.Args.TeamID)
	if err != nil {
		return err
	}
	return c.app.print(posts)
}

type teamPostCommand struct {
	app     *App
	Title   string  `short:"t" long:"title" description:"post title" required:"yes"`
	Content string  `short:"m" long:"content" description:"post content"`
	Meta    string  `long:"meta" description:"JSON metadata"`
	Args    teamArg `positional-args:"yes" required:"yes"`
}

func (c *teamPostCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	post := &api.NewTeamPost{Title: c.Title, Content: c.Content}
	if c.Meta != "" {
		if !json.Valid([]byte(c.Meta)) {
			return fmt.Errorf("invalid JSON meta: %v", c.Meta)
		}
		post.Meta = json.RawMessage(c.Meta)
	}
	created, err := m.API.CreateTeamPost(ctx, c.Args.TeamID, post)
	if err != nil {
		return err
	}
	return c.app.print(created)
}
