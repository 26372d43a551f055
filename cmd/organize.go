package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fileorg/pkg/operation"
	"fileorg/pkg/organizer"
)

func buildOrganizeTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "organize-type",
		Short: "Group files into category folders by extension",
		Long: `Groups files into categorized subdirectories based on extension:
  documents, images, videos, audio, archives, code, other

Matching is case-insensitive (.JPG and .jpg both go to images/).
Extensions outside the known categories go to other/.

Examples:
  fileorg organize-type --dry-run --target-dir ~/Downloads
  fileorg organize-type --target-dir ~/Downloads

Before:
  Downloads/
    report.pdf
    photo.jpg
    Makefile

After:
  Downloads/
    documents/report.pdf
    images/photo.jpg
    other/Makefile`,
		Args: cobra.NoArgs,
		RunE: runOrganizeType,
	}
}

var dateFormat string

func buildOrganizeDateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize-date",
		Short: "Group files into year/month folders by modification date",
		Long: `Groups files by modification date into year/month folders.
Creation date is used when the modification date is unavailable.

Examples:
  fileorg organize-date --target-dir ~/Photos
  fileorg organize-date --format YYYY-MM --target-dir ~/Photos

Before:
  Photos/beach.jpg      (modified 2023-05-15)

After:
  Photos/2023/05/beach.jpg      (--format YYYY/MM, the default)
  Photos/2023-05/beach.jpg      (--format YYYY-MM)`,
		Args: cobra.NoArgs,
		RunE: runOrganizeDate,
	}

	cmd.Flags().StringVarP(&dateFormat, "format", "f", organizer.FormatSlash,
		"Date folder format (YYYY/MM or YYYY-MM)")

	return cmd
}

func runOrganizeType(_ *cobra.Command, _ []string) error {
	cfg, err := baseConfig(operation.KindOrganizeType)
	if err != nil {
		return err
	}

	return runOperation(cfg)
}

func runOrganizeDate(_ *cobra.Command, _ []string) error {
	if dateFormat != organizer.FormatSlash && dateFormat != organizer.FormatDash {
		return fmt.Errorf("invalid --format %q: use %s or %s", dateFormat, organizer.FormatSlash, organizer.FormatDash)
	}

	cfg, err := baseConfig(operation.KindOrganizeDate)
	if err != nil {
		return err
	}
	cfg.DateFormat = dateFormat

	return runOperation(cfg)
}
