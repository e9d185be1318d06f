package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// Local stores files below a root directory of an afero filesystem.
type Local struct {
	fs     afero.Fs
	root   string
	logger hclog.Logger
}

var _ Storage = (*Local)(nil)

// NewLocal creates a local storage rooted at root.
func NewLocal(fs afero.Fs, root string, log hclog.Logger) *Local {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Local{
		fs:     afero.NewBasePathFs(fs, root),
		root:   root,
		logger: log.Named("storage"),
	}
}

// Root returns the root directory.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(_ context.Context, name string, content []byte, _ string) error {
	// "." is the root itself, which may not exist yet.
	dir := filepath.Dir(name)
	if err := l.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %q: %w", dir, err)
	}
	if err := afero.WriteFile(l.fs, name, content, 0o644); err != nil {
		return fmt.Errorf("error writing file %q: %w", name, err)
	}

	l.logger.Debug("stored file", "name", name, "size", len(content))
	return nil
}

func (l *Local) Get(_ context.Context, name string) ([]byte, error) {
	b, err := afero.ReadFile(l.fs, name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", name, err)
	}
	return b, nil
}

func (l *Local) Delete(_ context.Context, name string) error {
	err := l.fs.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("error deleting file %q: %w", name, err)
	}
	return nil
}

func (l *Local) Exists(_ context.Context, name string) (bool, error) {
	return afero.Exists(l.fs, name)
}

func (l *Local) Adapter() string {
	return AdapterLocal
}
