package tables

import (
	"context"
	"flag"
	"fmt"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
	"github.com/directus/directus-sdk-go/pkg/directus"
)

type Command struct {
	*base.Command

	flagSystem bool
}

func (c *Command) Synopsis() string {
	return "List the tables of a Directus instance"
}

func (c *Command) Help() string {
	return `Usage: directus tables -config=config.hcl

  List the tables of the configured instance as JSON.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tables", flag.ContinueOnError))
	c.ConfigFlags(f)

	f.BoolVar(
		&c.flagSystem, "system", false,
		"Include the directus_* system tables",
	)

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

	var params directus.Params
	if c.flagSystem {
		params = directus.Params{"include_system": true}
	}
	resp, err := cl.GetTables(ctx, params)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing tables: %v", err))
		return 1
	}
	return c.Output(resp)
}
