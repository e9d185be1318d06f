package createentry

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagID string

	// Stdin is read when the data argument is "-".
	Stdin io.Reader
}

func (c *Command) Synopsis() string {
	return "Create or update an entry"
}

func (c *Command) Help() string {
	return `Usage: directus create-entry [options] <table> <json|->

  Create an entry from a JSON object, or update the entry given with -id.
  Use "-" to read the object from standard input.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("create-entry", flag.ContinueOnError))
	c.ConfigFlags(f)

	f.StringVar(&c.flagID, "id", "", "Update the entry with this id instead of creating one")

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 2 {
		c.UI.Error("a table name and a JSON object are required")
		return 1
	}
	table, raw := f.Arg(0), []byte(f.Arg(1))

	if f.Arg(1) == "-" {
		in := c.Stdin
		if in == nil {
			in = os.Stdin
		}
		var err error
		if raw, err = io.ReadAll(in); err != nil {
			c.UI.Error(fmt.Sprintf("error reading standard input: %v", err))
			return 1
		}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		c.UI.Error(fmt.Sprintf("error decoding entry data: %v", err))
		return 1
	}

	ctx := context.Background()
	cl, _, err := c.Client(ctx)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer cl.Close()

	if c.flagID != "" {
		resp, err := cl.UpdateEntry(ctx, table, c.flagID, data)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error updating entry %s of %s: %v", c.flagID, table, err))
			return 1
		}
		return c.Output(resp)
	}

	resp, err := cl.CreateEntry(ctx, table, data)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating entry in %s: %v", table, err))
		return 1
	}
	return c.Output(resp)
}
