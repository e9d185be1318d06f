package main

import (
	"os"

	"github.com/directus/directus-sdk-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
