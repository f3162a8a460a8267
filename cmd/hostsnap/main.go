package main

import (
	"os"

	"github.com/hostsnap/hostsnap/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
