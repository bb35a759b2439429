package main

import (
	"os"

	"keyshare/cmd/trustctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
