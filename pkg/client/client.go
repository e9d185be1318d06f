// Package client builds the Directus client selected by a configuration.
//
// Applications construct one client at startup and pass it to the code that
// needs it:
//
//	cfg, err := config.Load(nil, "directus.hcl")
//	...
//	c, err := client.New(ctx, cfg, log)
//	...
//	defer c.Close()
//	entries, err := c.GetEntries(ctx, "articles", nil)
package client

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/directus/directus-sdk-go/pkg/config"
	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/directus/adapters/local"
	"github.com/directus/directus-sdk-go/pkg/directus/adapters/remote"
	"github.com/directus/directus-sdk-go/pkg/fieldproc"
	"github.com/directus/directus-sdk-go/pkg/file"
)

// Client is a Directus client that holds resources until closed.
type Client interface {
	directus.Requests
	io.Closer
}

type options struct {
	fs         afero.Fs
	httpClient *http.Client
}

// Option configures New.
type Option func(*options)

// WithFs sets the filesystem used for file references and local storage.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithHTTPClient replaces the HTTP client of a remote client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// New returns the remote or local client configured by cfg.
func New(ctx context.Context, cfg *config.Config, log hclog.Logger, opts ...Option) (Client, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Mode() == config.ModeLocal {
		log.Debug("creating local client")
		c, err := local.Open(ctx, *cfg.Local, o.fs, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	log.Debug("creating remote client")
	popts := []fieldproc.Option{
		fieldproc.WithFileBuilder(file.NewBuilder(o.fs)),
		fieldproc.WithLogger(log),
	}
	if cfg.Remote.PasswordCost > 0 {
		popts = append(popts, fieldproc.WithPasswordCost(cfg.Remote.PasswordCost))
	}

	ropts := []remote.Option{
		remote.WithLogger(log),
		remote.WithProcessor(fieldproc.New(popts...)),
	}
	if o.httpClient != nil {
		ropts = append(ropts, remote.WithHTTPClient(o.httpClient))
	}
	c, err := remote.New(*cfg.Remote, ropts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
