// Package cli implements the memo command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/viant/memo"
	"github.com/viant/memo/config"
	"go.uber.org/zap"
)

// Options defines global flags
type Options struct {
	Config     string `short:"c" long:"config" description:"config file, defaults to MEMO_CONFIG or ./memo.yaml"`
	URL        string `short:"u" long:"url" description:"backend base URL"`
	SessionURL string `short:"s" long:"session" description:"session file URL, defaults to ~/.memo/session.json"`
	Key        string `short:"k" long:"key" description:"scy encryption key URL for the session file, e.g. blowfish://default"`
	Cookies    bool   `long:"cookies" description:"persist backend cookies with the session"`
	Verbose    bool   `short:"v" long:"verbose" description:"development logging at debug level"`
}

// App holds global options and the lazily assembled client shared by all commands
type App struct {
	Options *Options
	out     io.Writer
	memo    *memo.Memo
}

func (a *App) client(ctx context.Context) (*memo.Memo, error) {
	if a.memo != nil {
		return a.memo, nil
	}
	cfg, err := config.Load(a.Options.Config)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg, a.Options.Verbose)
	if err != nil {
		return nil, err
	}
	options := &memo.Options{
		BaseURL: a.Options.URL,
		Session: memo.SessionOptions{URL: a.Options.SessionURL, Key: a.Options.Key, Cookies: a.Options.Cookies},
		Logger:  logger,
	}
	options.Merge(cfg)
	if options.Session.URL == "" {
		if options.Session.URL, err = defaultSessionURL(); err != nil {
			return nil, err
		}
	}
	if a.memo, err = memo.New(ctx, options); err != nil {
		return nil, err
	}
	return a.memo, nil
}

func defaultSessionURL() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".memo", "session.json"), nil
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if verbose || cfg.Log.Development {
		zapConfig := zap.NewDevelopmentConfig()
		if !verbose {
			level, err := cfg.Log.ZapLevel()
			if err != nil {
				return nil, err
			}
			zapConfig.Level = zap.NewAtomicLevelAt(level)
		}
		return zapConfig.Build()
	}
	level, err := cfg.Log.ZapLevel()
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

func (a *App) print(value any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func (a *App) parser() *flags.Parser {
	parser := flags.NewParser(a.Options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "memo"
	for _, cmd := range a.commands() {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.short, cmd.data); err != nil {
			panic(err)
		}
	}
	return parser
}

type command struct {
	name  string
	short string
	data  any
}

func (a *App) commands() []command {
	return []command{
		{"login", "sign in with email and password", &loginCommand{app: a}},
		{"register", "create an account", &registerCommand{app: a}},
		{"logout", "clear the local session", &logoutCommand{app: a}},
		{"me", "show the current user", &meCommand{app: a}},
		{"profile", "edit the current user profile", &profileCommand{app: a}},
		{"status", "show session state", &statusCommand{app: a}},
		{"request", "send an arbitrary API request", &requestCommand{app: a}},
		{"posts", "list the feed", &postsCommand{app: a}},
		{"post", "publish a memo", &postCommand{app: a}},
		{"comments", "list comments of a post", &commentsCommand{app: a}},
		{"comment", "comment on a post", &commentCommand{app: a}},
		{"like", "like or unlike a post", &likeCommand{app: a}},
		{"check", "toggle a checklist item", &checkCommand{app: a}},
		{"teams", "list your teams", &teamsCommand{app: a}},
		{"team-create", "create a team", &teamCreateCommand{app: a}},
		{"team-join", "join a team by invite code", &teamJoinCommand{app: a}},
		{"team-posts", "list team posts", &teamPostsCommand{app: a}},
		{"team-post", "publish a team post", &teamPostCommand{app: a}},
		{"todos", "list todos", &todosCommand{app: a}},
		{"todo-add", "create a todo", &todoAddCommand{app: a}},
		{"todo-update", "update a todo", &todoUpdateCommand{app: a}},
		{"todo-rm", "delete a todo", &todoRemoveCommand{app: a}},
		{"calendar", "show per-day activity and completion", &calendarCommand{app: a}},
		{"dashboard", "load profile, feed, teams and todos at once", &dashboardCommand{app: a}},
	}
}

// Run parses args and executes the selected command, writing results to stdout
func Run(args []string) error {
	return RunWithOutput(args, os.Stdout)
}

// RunWithOutput parses args and executes the selected command, writing results to out
func RunWithOutput(args []string, out io.Writer) error {
	app := &App{Options: &Options{}, out: out}
	_, err := app.parser().ParseArgs(args)
	if app.memo != nil {
		_ = app.memo.Logger.Sync()
	}
	return err
}
