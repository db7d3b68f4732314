package main

import (
	"os"

	"github.com/petasbytes/nanda-agents/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
