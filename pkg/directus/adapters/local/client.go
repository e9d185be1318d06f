// Package local implements the Directus client directly against the
// database and file storage of an installation.
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/directus/directus-sdk-go/pkg/database"
	"github.com/directus/directus-sdk-go/pkg/directus"
	"github.com/directus/directus-sdk-go/pkg/fieldproc"
	"github.com/directus/directus-sdk-go/pkg/file"
	"github.com/directus/directus-sdk-go/pkg/gateway"
	"github.com/directus/directus-sdk-go/pkg/models"
	"github.com/directus/directus-sdk-go/pkg/response"
	"github.com/directus/directus-sdk-go/pkg/storage"
)

// AdminGroupName is the name of the group created by Bootstrap.
const AdminGroupName = "Administrator"

// Client reads and writes a Directus installation without going through
// its API.
type Client struct {
	gw        *gateway.Gateway
	store     storage.Storage
	files     storage.Config
	processor *fieldproc.Processor

	userID  int
	groupID int

	logger hclog.Logger
	now    func() time.Time
}

var _ directus.Requests = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithProcessor sets the field processor applied to written data.
func WithProcessor(p *fieldproc.Processor) Option {
	return func(c *Client) {
		c.processor = p
	}
}

// WithActingUser sets the user and group the client acts as.
func WithActingUser(userID, groupID int) Option {
	return func(c *Client) {
		c.userID = userID
		c.groupID = groupID
	}
}

// WithFilesystem sets the filesystem block used to build file URLs.
func WithFilesystem(cfg storage.Config) Option {
	return func(c *Client) {
		c.files = cfg
	}
}

// WithClock replaces time.Now for recorded timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a local client over an existing gateway and storage.
func New(gw *gateway.Gateway, store storage.Storage, opts ...Option) *Client {
	c := &Client{
		gw:      gw,
		store:   store,
		userID:  DefaultUserID,
		groupID: directus.AdminGroupID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.files.SetDefaults()
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	c.logger = c.logger.Named("local")
	if c.processor == nil {
		c.processor = fieldproc.New(fieldproc.WithLogger(c.logger))
	}
	return c
}

// Open connects to the configured database and storage. fs backs the local
// storage adapter and file references; nil means the OS filesystem. opts
// are applied after the configuration.
func Open(ctx context.Context, cfg Config, fs afero.Fs, log hclog.Logger, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid local config: %w", err)
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, *cfg.Filesystem, fs, log)
	if err != nil {
		return nil, err
	}

	popts := []fieldproc.Option{
		fieldproc.WithFileBuilder(file.NewBuilder(fs)),
		fieldproc.WithLogger(log),
	}
	if cfg.PasswordCost > 0 {
		popts = append(popts, fieldproc.WithPasswordCost(cfg.PasswordCost))
	}

	gw := gateway.New(db, gateway.WithStatus(*cfg.Status), gateway.WithLogger(log))
	base := []Option{
		WithLogger(log),
		WithActingUser(cfg.UserID, cfg.GroupID),
		WithFilesystem(*cfg.Filesystem),
		WithProcessor(fieldproc.New(popts...)),
	}
	return New(gw, store, append(base, opts...)...), nil
}

// Gateway returns the gateway the client writes through.
func (c *Client) Gateway() *gateway.Gateway { return c.gw }

// Storage returns the file storage.
func (c *Client) Storage() storage.Storage { return c.store }

// UserID returns the acting user.
func (c *Client) UserID() int { return c.userID }

// GroupID returns the acting group.
func (c *Client) GroupID() int { return c.groupID }

// Close releases the database connection.
func (c *Client) Close() error {
	sqlDB, err := c.gw.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Bootstrap creates the system tables and the administrators group.
func (c *Client) Bootstrap(ctx context.Context) error {
	db := c.gw.DB().WithContext(ctx)
	if err := db.AutoMigrate(models.ModelsToAutoMigrate()...); err != nil {
		return fmt.Errorf("error migrating system tables: %w", err)
	}

	admin := models.Group{ID: uint(c.groupID), Name: AdminGroupName}
	err := db.Where(models.Group{ID: admin.ID}).FirstOrCreate(&admin).Error
	if err != nil {
		return fmt.Errorf("error creating administrators group: %w", err)
	}

	c.logger.Info("bootstrapped system tables", "group", admin.ID)
	return nil
}

// entryResponse wraps a record in the envelope the API returns for single
// system records.
func entryResponse(table string, record map[string]any) (response.Response, error) {
	return response.Classify(map[string]any{
		response.MetaKey: map[string]any{"type": "entry", "table": table},
		response.DataKey: record,
	})
}

// resultResponse reports the outcome of a schema change.
func resultResponse(err error, message string) response.Response {
	payload := map[string]any{"success": err == nil}
	if err != nil {
		payload["error"] = map[string]any{"message": message}
	}
	return response.NewEntry(payload, nil)
}

func rowsAsAny(rows []gateway.Row) []any {
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}
