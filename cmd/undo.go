package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	undoLogPath string
	undoList    bool
)

func buildUndoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent batch of moves",
		Long: `Reverses the most recent fileorg operation by replaying its undo log
in reverse order. Files are moved back to their original locations and
destination folders left empty are cleaned up. Files missing from their
recorded destination are reported and skipped; the rest are still
restored.

Examples:
  fileorg undo                       # Reverse the most recent batch
  fileorg undo --list                # Show available undo logs
  fileorg undo --log <path>          # Reverse a specific log`,
		Args: cobra.NoArgs,
		RunE: runUndo,
	}

	cmd.Flags().StringVar(&undoLogPath, "log", "", "Undo a specific log file instead of the most recent")
	cmd.Flags().BoolVar(&undoList, "list", false, "List available undo logs, most recent first")

	return cmd
}

func runUndo(_ *cobra.Command, _ []string) error {
	mgr, _, err := newUndoManager()
	if err != nil {
		return err
	}

	if undoList {
		files := mgr.LogFiles()
		if len(files) == 0 {
			fmt.Println("No undo logs found.")
			return nil
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	}

	if undoLogPath == "" && !mgr.HasLog() {
		fmt.Println("No recent operations to undo.")
		return nil
	}

	results, err := mgr.Undo(undoLogPath)
	if err != nil {
		return err
	}

	displayResults(results, resultMode{isUndo: true})
	return nil
}
