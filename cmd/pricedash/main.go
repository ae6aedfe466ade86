package main

import (
	"os"

	"github.com/rustyeddy/pricedash/cmd/pricedash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
