package main

import (
	"os"

	"github.com/pagekeep/pagekeep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
