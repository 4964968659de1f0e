// Package main is the ccpose command itself.
package main

import (
	"os"

	"go.ccpose.dev/ccpose/cli"
	"go.ccpose.dev/ccpose/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("ccpose").Error(err)
		os.Exit(1)
	}
}
