package main

import (
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	rootCmd := buildRootCommand()
	rootCmd.AddCommand(buildOrganizeTypeCommand())
	rootCmd.AddCommand(buildOrganizeDateCommand())
	rootCmd.AddCommand(buildRenameCommand())
	rootCmd.AddCommand(buildCustomCommand())
	rootCmd.AddCommand(buildUndoCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
