// Package orchestrator composes the planners into a single plan, executes
// or simulates it, and feeds successful runs into the undo manager.
package orchestrator

import (
	"errors"
	"fmt"

	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
	"fileorg/pkg/organizer"
	"fileorg/pkg/progress"
	"fileorg/pkg/renamer"
	"fileorg/pkg/rules"
	"fileorg/pkg/safepath"
	"fileorg/pkg/undo"
)

// ErrConfig marks fatal configuration problems: missing required
// parameters, an unreadable rules file, or an unknown operation kind. These
// abort the whole invocation before any mutation.
var ErrConfig = errors.New("invalid configuration")

// Config describes one invocation. The cmd layer builds it from flags.
type Config struct {
	TargetDir   string
	Kind        operation.Kind
	DryRun      bool
	Verbose     bool
	FilePattern string // glob over filenames, default "*"

	// rename strategy parameters; exactly one group should be set
	Find               string
	Replace            string
	SequentialTemplate string
	CaseKind           renamer.CaseKind
	Prefix             string
	Suffix             string
	Sanitize           bool

	// organize-by-date folder format
	DateFormat string

	// custom rules file
	RulesFile string
}

// Orchestrator coordinates planning, execution, and undo logging.
type Orchestrator struct {
	fs        *fsys.FileSystem
	organizer *organizer.Organizer
	undoMgr   *undo.Manager

	// Progress, when set, is called after each operation of a batch.
	Progress func(processed, total int)
}

// New creates an orchestrator over the given filesystem and undo manager.
func New(fs *fsys.FileSystem, undoMgr *undo.Manager) *Orchestrator {
	return &Orchestrator{
		fs:        fs,
		organizer: organizer.New(fs),
		undoMgr:   undoMgr,
	}
}

// Plan lists the candidate files and dispatches to exactly one planner.
// An empty file set yields an empty plan, not an error. Warnings carry
// rejected custom rules; they never abort the run. No filesystem mutation
// happens here.
func (o *Orchestrator) Plan(cfg Config) (ops []operation.Operation, warnings []string, err error) {
	files, err := o.fs.ListFiles(cfg.TargetDir, cfg.FilePattern)
	if err != nil {
		return nil, nil, fmt.Errorf("list files: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, nil
	}

	switch cfg.Kind {
	case operation.KindRename:
		ops, err = o.planRename(cfg, files)
		return ops, nil, err

	case operation.KindOrganizeType:
		return o.organizer.ByType(files, cfg.TargetDir), nil, nil

	case operation.KindOrganizeDate:
		ops, err = o.organizer.ByDate(files, cfg.TargetDir, cfg.DateFormat)
		return ops, nil, err

	case operation.KindCustom:
		if cfg.RulesFile == "" {
			return nil, nil, fmt.Errorf("%w: custom operation requires a rules file", ErrConfig)
		}

		loaded, loadErr := rules.Load(cfg.RulesFile)
		if loadErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrConfig, loadErr)
		}

		contained, warnings := containedRules(loaded, cfg.TargetDir)
		return rules.Apply(files, contained, cfg.TargetDir), warnings, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown operation kind %q", ErrConfig, cfg.Kind)
	}
}

// containedRules drops rules whose destination would land files outside the
// target directory, turning each dropped rule into a warning alongside the
// loader's own.
func containedRules(loaded rules.LoadResult, targetDir string) ([]rules.Rule, []string) {
	v, err := safepath.New(targetDir)
	if err != nil {
		// The directory was already listed; treat a validator failure as
		// refusing every destination.
		warnings := append(loaded.Warnings, fmt.Sprintf("cannot validate rule destinations: %v", err))
		return nil, warnings
	}

	kept := make([]rules.Rule, 0, len(loaded.Rules))
	warnings := loaded.Warnings
	for _, rule := range loaded.Rules {
		if validateErr := v.ValidateRelative(rule.Destination); validateErr != nil {
			warnings = append(warnings, fmt.Sprintf("rule %q: destination %v", rule.Name, validateErr))
			continue
		}
		kept = append(kept, rule)
	}

	return kept, warnings
}

func (o *Orchestrator) planRename(cfg Config, files []string) ([]operation.Operation, error) {
	switch {
	case cfg.Find != "":
		return renamer.Pattern(files, cfg.Find, cfg.Replace)
	case cfg.SequentialTemplate != "":
		return renamer.Sequential(files, cfg.SequentialTemplate), nil
	case cfg.CaseKind != "":
		return renamer.Case(files, cfg.CaseKind), nil
	case cfg.Prefix != "" || cfg.Suffix != "":
		return renamer.PrefixSuffix(files, cfg.Prefix, cfg.Suffix), nil
	case cfg.Sanitize:
		return renamer.Sanitize(files)
	default:
		return nil, fmt.Errorf(
			"%w: rename requires one of: find/replace, sequential template, case, prefix/suffix, or sanitize", ErrConfig)
	}
}

// ExecuteOperations runs or simulates a plan. In dry-run mode every
// operation counts as successful ("would succeed") with Executed left
// false and no mutation. In a real run each operation gets its destination
// parent created and the file moved with conflict resolution; a per-file
// failure is recorded and the batch continues. Skipped stays 0 on this
// path: it is reserved for undo's not-executed and missing-destination
// entries.
func (o *Orchestrator) ExecuteOperations(ops []operation.Operation, dryRun bool) operation.Results {
	results := operation.Results{
		Operations: make([]operation.Operation, 0, len(ops)),
	}

	for i, op := range ops {
		if dryRun {
			op.Executed = false
			results.Successful++
			results.Operations = append(results.Operations, op)
			progress.Emit(o.Progress, i+1, len(ops))
			continue
		}

		final, err := o.fs.Move(op.Source, op.Dest)
		if err != nil {
			results.AddError(op.Source, err.Error())
			results.Operations = append(results.Operations, op)
			progress.Emit(o.Progress, i+1, len(ops))
			continue
		}

		// The undo log must point at the file actually written, which may
		// carry a conflict suffix.
		op.Dest = final
		op.Executed = true
		results.Successful++
		results.Operations = append(results.Operations, op)
		progress.Emit(o.Progress, i+1, len(ops))
	}

	return results
}

// Execute is the single entry point: plan, execute or simulate, and for a
// real run with at least one success, persist the executed operations as an
// undo batch.
func (o *Orchestrator) Execute(cfg Config) (operation.Results, []string, error) {
	ops, warnings, err := o.Plan(cfg)
	if err != nil {
		return operation.Results{}, warnings, err
	}
	if len(ops) == 0 {
		return operation.Results{}, warnings, nil
	}

	results := o.ExecuteOperations(ops, cfg.DryRun)

	if !cfg.DryRun && results.Successful > 0 {
		var batch undo.Batch
		for _, op := range results.Operations {
			if op.Executed {
				batch.Record(op)
			}
		}

		if _, saveErr := o.undoMgr.Save(&batch, ""); saveErr != nil {
			return results, warnings, fmt.Errorf("save undo log: %w", saveErr)
		}
	}

	return results, warnings, nil
}
