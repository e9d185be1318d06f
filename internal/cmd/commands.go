package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/createentry"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/entries"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/initdb"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/tables"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/upload"
	"github.com/directus/directus-sdk-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available directus commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"create-entry": func() (cli.Command, error) {
			return &createentry.Command{Command: b}, nil
		},
		"entries": func() (cli.Command, error) {
			return &entries.Command{Command: b}, nil
		},
		"init-db": func() (cli.Command, error) {
			return &initdb.Command{Command: b}, nil
		},
		"tables": func() (cli.Command, error) {
			return &tables.Command{Command: b}, nil
		},
		"upload": func() (cli.Command, error) {
			return &upload.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
