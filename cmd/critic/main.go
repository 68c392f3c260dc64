package main

import (
	"os"

	"github.com/dpalmer/critic/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
