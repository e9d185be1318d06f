package initdb

import (
	"context"
	"flag"
	"fmt"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
	"github.com/directus/directus-sdk-go/pkg/directus/adapters/local"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Create the system tables of a local installation"
}

func (c *Command) Help() string {
	return `Usage: directus init-db -config=config.hcl

  Create the directus_* system tables and the administrators group in the
  database of the local block. Existing tables are migrated in place.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("init-db", flag.ContinueOnError))
	c.ConfigFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ctx := context.Background()
	cl, _, err := c.Client(ctx)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer cl.Close()

	lc, ok := cl.(*local.Client)
	if !ok {
		c.UI.Error("init-db requires a local block in the configuration")
		return 1
	}
	if err := lc.Bootstrap(ctx); err != nil {
		c.UI.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}

	c.UI.Info("Database initialized")
	return 0
}
