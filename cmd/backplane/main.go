package main

import (
	"os"

	"github.com/voyalab/backplane/internal/cli"
	"github.com/voyalab/backplane/internal/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
