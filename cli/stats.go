package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/memo/api"
)

type calendarCommand struct {
	app  *App
	From string `long:"from" description:"first day YYYY-MM-DD, defaults to 30 days ago"`
	To   string `long:"to" description:"last day YYYY-MM-DD, defaults to today"`
}

func (c *calendarCommand) Execute(_ []string) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	var err error
	if c.To != "" {
		if to, err = time.Parse(api.DateLayout, c.To); err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
	}
	if c.From != "" {
		if from, err = time.Parse(api.DateLayout, c.From); err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
	}
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	calendar, err := m.API.Calendar(ctx, from, to)
	if err != nil {
		return err
	}
	return c.app.print(calendar)
}

type dashboardCommand struct {
	app *App
}

func (c *dashboardCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	dashboard, err := m.API.Dashboard(ctx)
	if err != nil {
		return err
	}
	return c.app.print(dashboard)
}
