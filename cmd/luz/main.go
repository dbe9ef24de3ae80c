package main

import (
	"os"

	"github.com/aledsdavies/luz/cli"
)

func main() {
	os.Exit(cli.Execute())
}
