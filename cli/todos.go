package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/memo/api"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", api.DateLayout}

func parseTime(value string) (*time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time %q, expected RFC3339 or YYYY-MM-DD[THH:MM]", value)
}

type todosCommand struct {
	app *App
}

func (c *todosCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	todos, err := m.API.ListTodos(ctx)
	if err != nil {
		return err
	}
	return c.app.print(todos)
}

type todoAddCommand struct {
	app   *App
	Title string `short:"t" long:"title" description:"todo title" required:"yes"`
	Due   string `long:"due" description:"due time, RFC3339 or YYYY-MM-DD[THH:MM]"`
}

func (c *todoAddCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	todo := &api.NewTodo{Title: c.Title}
	if c.Due != "" {
		if todo.DueAt, err = parseTime(c.Due); err != nil {
			return err
		}
	}
	id, err := m.API.CreateTodo(ctx, todo)
	if err != nil {
		return err
	}
	return c.app.print(map[string]int{"id": id})
}

type todoArg struct {
	TodoID int `positional-arg-name:"todo-id"`
}

type todoUpdateCommand struct {
	app      *App
	Title    *string `short:"t" long:"title" description:"new title"`
	Done     bool    `long:"done" description:"mark as done"`
	Undone   bool    `long:"undone" description:"mark as not done"`
	Due      string  `long:"due" description:"new due time"`
	ClearDue bool    `long:"clear-due" description:"remove the due time"`
	Args     todoArg `positional-args:"yes" required:"yes"`
}

func (c *todoUpdateCommand) Execute(_ []string) error {
	if c.Done && c.Undone {
		return fmt.Errorf("--done and --undone are mutually exclusive")
	}
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	update := &api.TodoUpdate{Title: c.Title, ClearDue: c.ClearDue}
	if c.Done || c.Undone {
		done := c.Done
		update.Done = &done
	}
	if c.Due != "" {
		if update.DueAt, err = parseTime(c.Due); err != nil {
			return err
		}
	}
	if err = m.API.UpdateTodo(ctx, c.Args.TodoID, update); err != nil {
		return err
	}
	return c.app.print(map[string]any{"id": c.Args.TodoID, "updated": true})
}

type todoRemoveCommand struct {
	app  *App
	Args todoArg `positional-args:"yes" required:"yes"`
}

func (c *todoRemoveCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	if err = m.API.DeleteTodo(ctx, c.Args.TodoID); err != nil {
		return err
	}
	return c.app.print(map[string]any{"id": c.Args.TodoID, "deleted": true})
}
