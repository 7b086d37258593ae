package main

import (
	"os"

	"github.com/consultmatch/consultmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
