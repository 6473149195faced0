package main

import (
	"os"

	"gitlab.com/lanterman/loglady/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
