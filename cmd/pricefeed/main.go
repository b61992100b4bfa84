package main

import (
	"os"

	"pricebatch/cmd/pricefeed/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
