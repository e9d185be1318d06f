// Package storage stores uploaded file contents for the local client.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// Adapter names.
const (
	AdapterLocal = "local"
	AdapterS3    = "s3"
)

// Defaults for the filesystem block.
const (
	DefaultRoot         = "/storage/uploads"
	DefaultRootURL      = "/storage/uploads"
	DefaultRootThumbURL = "/storage/uploads/thumbs"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// Storage persists file contents by name.
type Storage interface {
	Put(ctx context.Context, name string, content []byte, contentType string) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)

	// Adapter returns the adapter name recorded in directus_files.storage_adapter.
	Adapter() string
}

// Config is the filesystem configuration block.
type Config struct {
	Adapter      string    `hcl:"adapter,optional" yaml:"adapter"`
	Root         string    `hcl:"root,optional" yaml:"root"`
	RootURL      string    `hcl:"root_url,optional" yaml:"root_url"`
	RootThumbURL string    `hcl:"root_thumb_url,optional" yaml:"root_thumb_url"`
	S3           *S3Config `hcl:"s3,block" yaml:"s3"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Adapter == "" {
		c.Adapter = AdapterLocal
	}
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.RootURL == "" {
		c.RootURL = DefaultRootURL
	}
	if c.RootThumbURL == "" {
		c.RootThumbURL = DefaultRootThumbURL
	}
}

// Validate checks the adapter selection.
func (c *Config) Validate() error {
	switch c.Adapter {
	case AdapterLocal:
		return nil
	case AdapterS3:
		if c.S3 == nil {
			return errors.New("s3 block is required when adapter is \"s3\"")
		}
		return c.S3.Validate()
	default:
		return fmt.Errorf("unsupported filesystem adapter: %q (supported: local, s3)", c.Adapter)
	}
}

// thumbnailAsJPEG lists extensions whose thumbnails are rendered as jpg.
var thumbnailAsJPEG = map[string]bool{
	"tif":  true,
	"tiff": true,
	"psd":  true,
	"pdf":  true,
}

// FileURL returns the public URL of a stored file.
func (c *Config) FileURL(name string) string {
	return strings.TrimSuffix(c.RootURL, "/") + "/" + name
}

// ThumbnailURL returns the public URL of the thumbnail of file id, which is
// named after the id and keeps the file extension.
func (c *Config) ThumbnailURL(id any, name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if thumbnailAsJPEG[strings.ToLower(ext)] {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%v.%s", strings.TrimSuffix(c.RootThumbURL, "/"), id, ext)
}

// New creates the storage selected by cfg. fs backs the local adapter; nil
// means the operating system filesystem.
func New(ctx context.Context, cfg Config, fs afero.Fs, log hclog.Logger) (Storage, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filesystem config: %w", err)
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	switch cfg.Adapter {
	case AdapterS3:
		return NewS3(ctx, cfg.S3, log)
	default:
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewLocal(fs, cfg.Root, log), nil
	}
}
