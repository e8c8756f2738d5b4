package main

import (
	"os"

	"github.com/aryanwebd35/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
