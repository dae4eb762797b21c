package main

import (
	"os"

	"github.com/oligo/todomark/cmd/todomark/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
