// Package main is the entry point for the keychord command.
package main

import (
	"os"

	"github.com/dshills/keychord/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
