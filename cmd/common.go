package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
	"fileorg/pkg/orchestrator"
	"fileorg/pkg/undo"
)

func validateTargetDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return absPath, nil
}

func newUndoManager() (*undo.Manager, *fsys.FileSystem, error) {
	fs := fsys.New()

	mgr, err := undo.NewManager(fs, logDir)
	if err != nil {
		return nil, nil, err
	}

	return mgr, fs, nil
}

func baseConfig(kind operation.Kind) (orchestrator.Config, error) {
	absTarget, err := validateTargetDir(targetDir)
	if err != nil {
		return orchestrator.Config{}, err
	}

	return orchestrator.Config{
		TargetDir:   absTarget,
		Kind:        kind,
		DryRun:      dryRun,
		Verbose:     verbose,
		FilePattern: filePattern,
	}, nil
}

// runOperation wires up the orchestrator, executes the configured
// operation, and renders the outcome.
func runOperation(cfg orchestrator.Config) error {
	mgr, fs, err := newUndoManager()
	if err != nil {
		return err
	}

	printDryRunBanner()

	orch := orchestrator.New(fs, mgr)
	if verbose {
		orch.Progress = func(processed, total int) {
			log.Debug("processing", "done", processed, "total", total)
		}
	}

	results, warnings, err := orch.Execute(cfg)
	for _, warning := range warnings {
		log.Warn("invalid rule skipped", "reason", warning)
	}
	if err != nil {
		return err
	}

	displayResults(results, resultMode{dryRun: cfg.DryRun})
	return nil
}

func printDryRunBanner() {
	if !dryRun {
		return
	}

	fmt.Println("=== DRY RUN - no changes will be made ===")
	fmt.Println()
}

type resultMode struct {
	dryRun bool
	isUndo bool
}

func displayResults(results operation.Results, mode resultMode) {
	total := len(results.Operations)

	if verbose && total > 0 {
		fmt.Println("Operations:")
		for _, op := range results.Operations {
			printOperation(op, mode)
		}
		fmt.Println()
	}

	switch {
	case mode.dryRun:
		fmt.Println("=== Dry Run Summary ===")
	case mode.isUndo:
		fmt.Println("=== Undo Summary ===")
	default:
		fmt.Println("=== Summary ===")
	}

	fmt.Printf("Total operations: %d\n", total)
	fmt.Printf("Successful:       %d\n", results.Successful)
	if results.Skipped > 0 {
		fmt.Printf("Skipped:          %d\n", results.Skipped)
	}
	if len(results.Errors) > 0 {
		fmt.Printf("Errors:           %d\n", len(results.Errors))
		fmt.Println()
		fmt.Println("Error details:")
		for _, opErr := range results.Errors {
			fmt.Printf("  %s: %s\n", opErr.Path, opErr.Message)
		}
	}

	if mode.dryRun {
		fmt.Println()
		fmt.Println("Run without --dry-run to apply changes.")
		return
	}

	if !mode.isUndo && results.Successful > 0 {
		fmt.Println()
		fmt.Println("To undo this operation, run: fileorg undo")
	}
}

func printOperation(op operation.Operation, mode resultMode) {
	status := "SUCCESS"
	if mode.dryRun {
		status = "WOULD EXECUTE"
	} else if !op.Executed {
		status = "SKIPPED"
	}

	kind := strings.ToUpper(string(op.Kind))
	fmt.Printf("%s | %s | %s -> %s\n", status, kind, op.Source, op.Dest)
}
