package entries

import (
	"context"
	"flag"
	"fmt"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
	"github.com/directus/directus-sdk-go/pkg/directus"
)

type Command struct {
	*base.Command

	flagLimit  int
	flagOffset int
	flagStatus string
	flagSort   string
	flagOrder  string
	flagID     string
}

func (c *Command) Synopsis() string {
	return "Fetch the entries of a table"
}

func (c *Command) Help() string {
	return `Usage: directus entries [options] <table>

  Fetch the entries of a table, or a single entry with -id, as JSON.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("entries", flag.ContinueOnError))
	c.ConfigFlags(f)

	f.IntVar(&c.flagLimit, "limit", 0, "Maximum number of entries")
	f.IntVar(&c.flagOffset, "offset", 0, "Number of entries to skip")
	f.StringVar(&c.flagStatus, "status", "", "Comma-separated status values to include")
	f.StringVar(&c.flagSort, "sort", "", "Column to sort by")
	f.StringVar(&c.flagOrder, "order", "", "Sort order (asc, desc)")
	f.StringVar(&c.flagID, "id", "", "Fetch the single entry with this id")

	return f
}

func (c *Command) params() directus.Params {
	params := directus.Params{}
	if c.flagLimit > 0 {
		params["limit"] = c.flagLimit
	}
	if c.flagOffset > 0 {
		params["offset"] = c.flagOffset
	}
	if c.flagStatus != "" {
		params["status"] = c.flagStatus
	}
	if c.flagSort != "" {
		params["sort"] = c.flagSort
	}
	if c.flagOrder != "" {
		params["sort_order"] = c.flagOrder
	}
	return params
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("a single table name is required")
		return 1
	}
	table := f.Arg(0)

	ctx := context.Background()
	cl, _, err := c.Client(ctx)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer cl.Close()

	if c.flagID != "" {
		resp, err := cl.GetEntry(ctx, table, c.flagID, nil)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error fetching entry %s of %s: %v", c.flagID, table, err))
			return 1
		}
		return c.Output(resp)
	}

	resp, err := cl.GetEntries(ctx, table, c.params())
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching entries of %s: %v", table, err))
		return 1
	}
	return c.Output(resp)
}
