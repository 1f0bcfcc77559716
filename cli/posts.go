package cli

import (
	"context"

	"github.com/viant/memo/api"
)

type postsCommand struct {
	app *App
}

func (c *postsCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	posts, err := m.API.ListPosts(ctx)
	if err != nil {
		return err
	}
	return c.app.print(posts)
}

type postCommand struct {
	app     *App
	Content string   `short:"m" long:"content" description:"memo content" required:"yes"`
	Tags    string   `short:"t" long:"tags" description:"comma separated tags"`
	Items   []string `short:"i" long:"item" description:"checklist item, repeat for more"`
}

func (c *postCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	post := &api.NewPost{Content: c.Content, Tags: c.Tags}
	for _, item := range c.Items {
		post.ChecklistItems = append(post.ChecklistItems, api.ChecklistItem{Text: item})
	}
	created, err := m.API.CreatePost(ctx, post)
	if err != nil {
		return err
	}
	return c.app.print(created)
}

type postArg struct {
	PostID int `positional-arg-name:"post-id"`
}

type commentsCommand struct {
	app  *App
	Args postArg `positional-args:"yes" required:"yes"`
}

func (c *commentsCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	comments, err := m.API.ListComments(ctx, c.Args.PostID)
	if err != nil {
		return err
	}
	return c.app.print(comments)
}

type commentCommand struct {
	app  *App
	Args struct {
		PostID  int    `positional-arg-name:"post-id"`
		Content string `positional-arg-name:"content"`
	} `positional-args:"yes" required:"yes"`
}

func (c *commentCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	comment, err := m.API.AddComment(ctx, c.Args.PostID, c.Args.Content)
	if err != nil {
		return err
	}
	return c.app.print(comment)
}

type likeCommand struct {
	app  *App
	Args postArg `positional-args:"yes" required:"yes"`
}

func (c *likeCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	like, err := m.API.ToggleLike(ctx, c.Args.PostID)
	if err != nil {
		return err
	}
	return c.app.print(like)
}

type checkCommand struct {
	app  *App
	Args struct {
		PostID int `positional-arg-name:"post-id"`
		Index  int `positional-arg-name:"index"`
	} `positional-args:"yes" required:"yes"`
}

func (c *checkCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	items, err := m.API.ToggleChecklist(ctx, c.Args.PostID, c.Args.Index)
	if err != nil {
		return err
	}
	return c.app.print(items)
}
