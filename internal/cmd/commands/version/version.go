package version

import (
	"github.com/directus/directus-sdk-go/internal/cmd/base"
	buildversion "github.com/directus/directus-sdk-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: directus version

  Print the version of the directus CLI.`
}

func (c *Command) Run(_ []string) int {
	c.UI.Output("directus " + buildversion.String())
	return 0
}
