package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/memo/client"
)

type requestCommand struct {
	app     *App
	Data    string `short:"d" long:"data" description:"JSON request body"`
	NoAuth  bool   `long:"no-auth" description:"do not attach the bearer token"`
	NoRetry bool   `long:"no-retry" description:"do not refresh and retry on 401"`
	Args    struct {
		Method string `positional-arg-name:"method" description:"HTTP method"`
		Path   string `positional-arg-name:"path" description:"absolute URL or path relative to the base URL"`
	} `positional-args:"yes" required:"yes"`
}

func (c *requestCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	request := &client.Request{
		Method:  strings.ToUpper(c.Args.Method),
		Path:    c.Args.Path,
		NoAuth:  c.NoAuth,
		NoRetry: c.NoRetry,
	}
	if c.Data != "" {
		if !json.Valid([]byte(c.Data)) {
			return fmt.Errorf("invalid JSON data: %v", c.Data)
		}
		request.Body = json.RawMessage(c.Data)
	}
	resp, err := m.Client.Do(ctx, request)
	if err != nil {
		return err
	}
	if !resp.IsJSON() {
		_, err = fmt.Fprintln(c.app.out, resp.Text())
		return err
	}
	return c.app.print(resp.Value)
}
