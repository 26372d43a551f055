package main

import (
	"github.com/spf13/cobra"

	"fileorg/pkg/operation"
)

var rulesFile string

func buildCustomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Apply user-defined pattern rules from a YAML or JSON file",
		Long: `Routes files to destinations using rules from a configuration file.
Rules are matched in priority order (lower number first); the first
matching rule wins and the file is not reconsidered.

Rules file structure:
  rules:
    - name: invoices
      pattern: "invoice_*.pdf"
      destination: finance/invoices
      priority: 1
    - name: reports
      pattern: "regex:^report_\\d+"
      destination: reports

A pattern starting with "regex:" is a regular expression searched against
the filename; anything else is a shell glob. Individually invalid rules
are skipped with a warning.

Example:
  fileorg custom --rules rules.yaml --target-dir ~/Documents`,
		Args: cobra.NoArgs,
		RunE: runCustom,
	}

	cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Path to rules configuration file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func runCustom(_ *cobra.Command, _ []string) error {
	cfg, err := baseConfig(operation.KindCustom)
	if err != nil {
		return err
	}
	cfg.RulesFile = rulesFile

	return runOperation(cfg)
}
