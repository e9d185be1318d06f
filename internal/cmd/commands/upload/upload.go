package upload

import (
	"context"
	"flag"
	"fmt"

	"github.com/directus/directus-sdk-go/internal/cmd/base"
	"github.com/directus/directus-sdk-go/pkg/file"
)

type Command struct {
	*base.Command

	flagTitle   string
	flagCaption string
	flagTags    string
}

func (c *Command) Synopsis() string {
	return "Upload a file"
}

func (c *Command) Help() string {
	return `Usage: directus upload [options] <path>

  Upload a file and print the stored file record.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upload", flag.ContinueOnError))
	c.ConfigFlags(f)

	f.StringVar(&c.flagTitle, "title", "", "Title of the file")
	f.StringVar(&c.flagCaption, "caption", "", "Caption of the file")
	f.StringVar(&c.flagTags, "tags", "", "Comma-separated tags")

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("a single file path is required")
		return 1
	}

	upload := file.New(f.Arg(0))
	upload.Title = c.flagTitle
	upload.Caption = c.flagCaption
	upload.Tags = c.flagTags

	ctx := context.Background()
	cl, _, err := c.Client(ctx)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer cl.Close()

	resp, err := cl.CreateFile(ctx, upload)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error uploading %s: %v", upload.Path, err))
		return 1
	}
	return c.Output(resp)
}
