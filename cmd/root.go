package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dryRun      bool
	verbose     bool
	targetDir   string
	filePattern string
	logDir      string
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fileorg",
		Short: "Organize, rename, and manage files with automation rules",
		Long: `fileorg automates local file management.

Commands:
  organize-type   Group files into category folders by extension
  organize-date   Group files into year/month folders by modification date
  rename          Rename files with find/replace, numbering, case, prefix/suffix, or sanitize
  custom          Apply user-defined pattern rules from a YAML or JSON file
  undo            Reverse the most recent batch of moves

Examples:
  # Preview what organize-type would do (recommended first step)
  fileorg organize-type --dry-run --target-dir ~/Downloads

  # Actually organize files
  fileorg organize-type --target-dir ~/Downloads

  # Rename photos with sequential numbering
  fileorg rename --sequential "vacation_{n}" --target-dir ~/Photos

  # Route files with custom rules
  fileorg custom --rules rules.yaml --target-dir ~/Documents

  # Changed your mind? Reverse the last batch
  fileorg undo

Safety:
  No destination file is ever silently overwritten: conflicting names get
  a numeric suffix (_1, _2, ...). Every real run writes an undo log so the
  batch can be reversed.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Display detailed information for each operation")
	cmd.PersistentFlags().StringVarP(&targetDir, "target-dir", "d", ".", "Target directory to operate on")
	cmd.PersistentFlags().StringVarP(&filePattern, "pattern", "p", "*", "File pattern to match (glob syntax)")
	cmd.PersistentFlags().StringVar(&logDir, "log-dir", defaultLogDir(), "Directory for undo logs")

	return cmd
}

// defaultLogDir resolves the home-directory default once at the process
// boundary; everything below the cmd layer receives the directory as an
// explicit value.
func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fileorg", "undo_logs")
	}
	return filepath.Join(home, ".fileorg", "undo_logs")
}
