package cli

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/viant/afs"
	"github.com/viant/memo/client"
)

type loginCommand struct {
	app      *App
	Email    string `short:"e" long:"email" description:"account email" required:"yes"`
	Password string `short:"p" long:"password" description:"account password" env:"MEMO_PASSWORD" required:"yes"`
}

func (c *loginCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	result, err := m.Client.Login(ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	user, err := result.Profile()
	if err != nil {
		return err
	}
	return c.app.print(map[string]any{"message": result.Message, "user": user})
}

type registerCommand struct {
	app      *App
	Email    string `short:"e" long:"email" description:"account email" required:"yes"`
	Password string `short:"p" long:"password" description:"account password" env:"MEMO_PASSWORD" required:"yes"`
	Username string `long:"username" description:"username, derived from the email when empty"`
	Name     string `short:"n" long:"name" description:"display name"`
}

func (c *registerCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	result, err := m.Client.Register(ctx, &client.Registration{Email: c.Email, Password: c.Password, Username: c.Username, Name: c.Name})
	if err != nil {
		return err
	}
	user, err := result.Profile()
	if err != nil {
		return err
	}
	return c.app.print(map[string]any{"message": result.Message, "user": user})
}

type logoutCommand struct {
	app *App
}

func (c *logoutCommand) Execute(_ []string) error {
	m, err := c.app.client(context.Background())
	if err != nil {
		return err
	}
	m.Client.Logout()
	return c.app.print(map[string]any{"authenticated": false})
}

type meCommand struct {
	app   *App
	Force bool `short:"f" long:"force" description:"bypass the cached identity"`
}

func (c *meCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	user, err := m.Client.Me(ctx, c.Force)
	if err != nil {
		return err
	}
	return c.app.print(user)
}

type profileCommand struct {
	app        *App
	Name       *string `long:"name" description:"display name"`
	Bio        *string `long:"bio" description:"bio"`
	Location   *string `long:"location" description:"location"`
	Gender     *string `long:"gender" description:"gender"`
	Contact    *string `long:"contact" description:"contact"`
	ThemeColor *string `long:"theme-color" description:"theme color"`
	Avatar     string  `long:"avatar" description:"avatar image URL or path"`
	Cover      string  `long:"cover" description:"cover image URL or path"`
}

func (c *profileCommand) Execute(_ []string) error {
	ctx := context.Background()
	m, err := c.app.client(ctx)
	if err != nil {
		return err
	}
	update := &client.ProfileUpdate{
		Name:       c.Name,
		Bio:        c.Bio,
		Location:   c.Location,
		Gender:     c.Gender,
		Contact:    c.Contact,
		ThemeColor: c.ThemeColor,
	}
	fs := afs.New()
	if update.Avatar, err = formFile(ctx, fs, c.Avatar); err != nil {
		return err
	}
	if update.Cover, err = formFile(ctx, fs, c.Cover); err != nil {
		return err
	}
	user, err := m.Client.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	return c.app.print(user)
}

func formFile(ctx context.Context, fs afs.Service, URL string) (*client.FormFile, error) {
	if URL == "" {
		return nil, nil
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return &client.FormFile{Name: path.Base(URL), Content: bytes.NewReader(data)}, nil
}

type statusCommand struct {
	app *App
}

type status struct {
	BaseURL       string     `json:"baseURL"`
	Authenticated bool       `json:"authenticated"`
	HasRefresh    bool       `json:"hasRefreshToken"`
	Expiry        *time.Time `json:"expiry,omitempty"`
	Expired       bool       `json:"expired,omitempty"`
	User          string     `json:"user,omitempty"`
}

func (c *statusCommand) Execute(_ []string) error {
	m, err := c.app.client(context.Background())
	if err != nil {
		return err
	}
	ret := &status{BaseURL: m.Client.BaseURL(), HasRefresh: m.Store.RefreshToken() != ""}
	if token := m.Store.Token(); token != nil {
		ret.Authenticated = true
		if !token.Expiry.IsZero() {
			ret.Expiry = &token.Expiry
			ret.Expired = !token.Valid()
		}
	}
	if _, ok := m.Store.Profile(); ok {
		if user, err := m.Client.Me(context.Background(), false); err == nil {
			ret.User = user.Email
		}
	}
	return c.app.print(ret)
}
