// Package base holds what every directus subcommand shares.
package base

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/directus/directus-sdk-go/pkg/client"
	"github.com/directus/directus-sdk-go/pkg/config"
)

// ConfigEnvVar is read when -config is not given.
const ConfigEnvVar = "DIRECTUS_CONFIG"

// Command is embedded by every subcommand.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Options are passed to client.New. Tests use them to swap the
	// filesystem or HTTP client.
	Options []client.Option

	flagConfig   string
	flagLogLevel string
}

// NewCommand returns a base command.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{Log: log, UI: ui}
}

// ConfigFlags registers -config and -log-level on f.
func (c *Command) ConfigFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"["+ConfigEnvVar+"] Path to the configuration file (.hcl, .json, .yaml)",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error); overrides log_level",
	)
}

// LoadConfig loads the file named by -config or DIRECTUS_CONFIG and applies
// the log level to the command logger.
func (c *Command) LoadConfig() (*config.Config, error) {
	path := c.flagConfig
	if val, ok := os.LookupEnv(ConfigEnvVar); ok && path == "" {
		path = val
	}
	if path == "" {
		return nil, fmt.Errorf("-config or %s is required", ConfigEnvVar)
	}

	cfg, err := config.Load(nil, path)
	if err != nil {
		return nil, err
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	c.Log.SetLevel(cfg.Level())
	return cfg, nil
}

// Client loads the configuration and builds the configured client.
func (c *Command) Client(ctx context.Context) (client.Client, *config.Config, error) {
	cfg, err := c.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	cl, err := client.New(ctx, cfg, c.Log, c.Options...)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating client: %w", err)
	}
	return cl, cfg, nil
}

// Output writes v as indented JSON and returns the exit code.
func (c *Command) Output(v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}
	c.UI.Output(string(b))
	return 0
}
