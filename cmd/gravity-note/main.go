package main

import (
	"os"

	"github.com/gravity-note/gravity-note/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
