package main

import (
	"os"

	"github.com/cashplan-dev/cashplan/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
