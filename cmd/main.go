package main

import (
	"os"

	"github.com/r2dtools/sitediscovery/cmd/cli"
	"github.com/r2dtools/sitediscovery/config"
)

var Version string

func main() {
	config.Version = Version

	if err := cli.Create().Execute(); err != nil {
		os.Exit(1)
	}
}
