package main

import (
	"os"

	"github.com/devexp-dev/devexp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
