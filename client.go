package memo

import (
	"context"

	"github.com/viant/memo/api"
	"github.com/viant/memo/client"
	"github.com/viant/memo/metrics"
	"github.com/viant/memo/session"
	"go.uber.org/zap"
)

// Memo is an assembled backend client
type Memo struct {
	Client  *client.Client
	API     *api.Service
	Store   *session.Store
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// New creates a memo client with session storage, transport and metrics configured via Options.
func New(ctx context.Context, options *Options) (*Memo, error) {
	options.Init()
	storage := options.Storage
	if storage == nil {
		var err error
		if storage, err = options.Session.storage(ctx); err != nil {
			return nil, err
		}
	}
	store := session.New(storage, session.WithLogger(options.Logger))
	m := metrics.New(options.Registerer)
	opts := []client.Option{
		client.WithBaseURL(options.BaseURL),
		client.WithStore(store),
		client.WithLogger(options.Logger),
		client.WithMetrics(m),
	}
	if options.Transport != nil {
		opts = append(opts, client.WithTransport(options.Transport))
	}
	if options.Session.Cookies {
		jar, err := session.NewJar(storage, options.Logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithCookieJar(jar))
	}
	cli, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Memo{
		Client:  cli,
		API:     api.New(cli),
		Store:   store,
		Metrics: m,
		Logger:  options.Logger,
	}, nil
}
