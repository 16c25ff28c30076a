package main

import (
	"os"

	"github.com/bnema/waveportal-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
