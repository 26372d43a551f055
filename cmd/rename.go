package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fileorg/pkg/operation"
	"fileorg/pkg/renamer"
)

var (
	renameFind       string
	renameReplace    string
	renameSequential string
	renameCase       string
	renamePrefix     string
	renameSuffix     string
	renameSanitize   bool
)

func buildRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename files with find/replace, numbering, case, prefix/suffix, or sanitize",
		Long: `Renames files using one of five strategies (one per invocation):

  --find X --replace Y   Replace all occurrences of X in the name (extension kept)
  --sequential TEMPLATE  Number files 1..N; {n} in the template is the number
  --case KIND            lowercase, uppercase, or title
  --prefix P / --suffix S  Wrap the name (suffix goes before the extension)
  --sanitize             Normalize names: lowercase, underscores, ASCII

Examples:
  fileorg rename --find "draft" --replace "final" --target-dir ~/Docs
  fileorg rename --sequential "photo_{n}" --pattern "*.jpg" --target-dir ~/Photos
  fileorg rename --case lowercase --target-dir ~/Docs
  fileorg rename --prefix "backup_" --target-dir ~/Docs
  fileorg rename --sanitize --target-dir ~/Downloads

A find/replace rename that would produce duplicate names fails as a whole
and renames nothing.`,
		Args: cobra.NoArgs,
		RunE: runRename,
	}

	cmd.Flags().StringVar(&renameFind, "find", "", "Text to find in filenames")
	cmd.Flags().StringVar(&renameReplace, "replace", "", "Replacement text")
	cmd.Flags().StringVar(&renameSequential, "sequential", "", "Sequential template with {n} placeholder")
	cmd.Flags().StringVar(&renameCase, "case", "", "Case transformation: lowercase, uppercase, or title")
	cmd.Flags().StringVar(&renamePrefix, "prefix", "", "Prefix to add to filenames")
	cmd.Flags().StringVar(&renameSuffix, "suffix", "", "Suffix to add before the extension")
	cmd.Flags().BoolVar(&renameSanitize, "sanitize", false, "Normalize filenames to a consistent format")

	return cmd
}

func runRename(cmd *cobra.Command, _ []string) error {
	findSet := cmd.Flags().Changed("find")
	replaceSet := cmd.Flags().Changed("replace")

	if findSet && !replaceSet {
		return errors.New("--replace is required when using --find")
	}
	if replaceSet && !findSet {
		return errors.New("--find is required when using --replace")
	}

	strategies := 0
	if findSet {
		strategies++
	}
	if renameSequential != "" {
		strategies++
	}
	if renameCase != "" {
		strategies++
	}
	if renamePrefix != "" || renameSuffix != "" {
		strategies++
	}
	if renameSanitize {
		strategies++
	}

	if strategies == 0 {
		return errors.New("must specify one rename strategy: --find/--replace, --sequential, --case, --prefix/--suffix, or --sanitize")
	}
	if strategies > 1 {
		return errors.New("only one rename strategy can be used at a time")
	}

	cfg, err := baseConfig(operation.KindRename)
	if err != nil {
		return err
	}

	cfg.Find = renameFind
	cfg.Replace = renameReplace
	cfg.SequentialTemplate = renameSequential
	cfg.Prefix = renamePrefix
	cfg.Suffix = renameSuffix
	cfg.Sanitize = renameSanitize

	if renameCase != "" {
		kind, parseErr := renamer.ParseCaseKind(renameCase)
		if parseErr != nil {
			return fmt.Errorf("invalid --case: %w", parseErr)
		}
		cfg.CaseKind = kind
	}

	return runOperation(cfg)
}
