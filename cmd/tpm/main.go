package main

import (
	"os"

	"github.com/amirbrooks/tpm/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
