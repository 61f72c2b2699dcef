package main

import (
	"os"

	"forgeauth/cmd/forgeauth/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
