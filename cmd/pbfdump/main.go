package main

import (
	"os"

	"github.com/anirudhraja/pbf/cmd/pbfdump/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintErr(err)
		os.Exit(1)
	}
}
