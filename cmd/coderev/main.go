package main

import (
	"os"

	"github.com/dshills/coderev/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
