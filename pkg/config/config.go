// Package config loads the client configuration file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/directus/directus-sdk-go/pkg/directus/adapters/local"
	"github.com/directus/directus-sdk-go/pkg/directus/adapters/remote"
)

// Client modes.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// DefaultLogLevel is used when log_level is unset.
const DefaultLogLevel = "info"

var logLevels = []any{"trace", "debug", "info", "warn", "error", "off"}

// Config is the configuration file.
//
// Example (HCL):
//
//	log_level = "debug"
//
//	remote {
//	  base_url     = "https://cms.example.com"
//	  access_token = "..."
//	}
type Config struct {
	LogLevel string `hcl:"log_level,optional" yaml:"log_level"`

	Remote *remote.Config `hcl:"remote,block" yaml:"remote"`
	Local  *local.Config  `hcl:"local,block" yaml:"local"`
}

// Load reads and decodes the file at path from fs, then applies defaults
// and validates the result. HCL and JSON files are decoded with hclsimple,
// YAML files with yaml.v3.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("configuration file path is required")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes src, selecting the format from the extension of filename.
func Parse(filename string, src []byte) (*Config, error) {
	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl", ".json":
		if err := hclsimple.Decode(filename, src, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(src, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q (supported: .hcl, .json, .yaml, .yml)", ext)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// SetDefaults fills unset fields of the config and of its client block.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Remote != nil {
		c.Remote.SetDefaults()
	}
	if c.Local != nil {
		c.Local.SetDefaults()
	}
}

// Validate checks that exactly one client block is present and valid.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In(logLevels...).Error("must be one of trace, debug, info, warn, error, off")),
		validation.Field(&c.Remote,
			validation.When(c.Local == nil, validation.Required.Error("one of remote or local is required")),
			validation.When(c.Local != nil, validation.Nil.Error("remote and local are mutually exclusive")),
		),
		validation.Field(&c.Local),
	)
}

// Mode returns ModeRemote or ModeLocal.
func (c *Config) Mode() string {
	if c.Local != nil {
		return ModeLocal
	}
	return ModeRemote
}

// Level returns the hclog level of LogLevel.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
