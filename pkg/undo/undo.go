// Package undo persists batches of executed operations as timestamped JSON
// logs and reverses the most recent batch in LIFO order with per-entry
// failure tolerance.
package undo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
)

var (
	ErrLogNotFound   = errors.New("undo log not found")
	ErrInvalidFormat = errors.New("invalid undo log format")
	ErrCorruptedData = errors.New("corrupted undo log data")
	ErrNoLogs        = errors.New("no recent operations found to undo")
	ErrEmptyLog      = errors.New("no operations found in undo log")
)

const (
	logPrefix = "undo_log_"
	logSuffix = ".json"

	// timestamp layout inside generated log filenames
	nameStamp = "20060102_150405"
)

// missingDestMessage is recorded when an entry's destination no longer
// exists at undo time.
const missingDestMessage = "File not found at destination"

// entry is the on-disk form of an operation.
type entry struct {
	OperationType string `json:"operation_type"`
	SourcePath    string `json:"source_path"`
	DestPath      string `json:"dest_path"`
	Timestamp     string `json:"timestamp"`
	Executed      bool   `json:"executed"`
}

// Batch accumulates the operations executed during one run. The caller owns
// it and hands it to Save once the run completes; the manager keeps no
// cross-call state.
type Batch struct {
	ops []operation.Operation
}

// Record appends an operation that was actually executed. The executed flag
// is forced true: only completed mutations belong in an undo log.
func (b *Batch) Record(op operation.Operation) {
	op.Executed = true
	b.ops = append(b.ops, op)
}

// Len returns the number of recorded operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Operations returns a copy of the recorded operations in record order.
func (b *Batch) Operations() []operation.Operation {
	return append([]operation.Operation(nil), b.ops...)
}

// Manager owns the undo-log directory: no other component reads or writes
// log files. The directory is an explicit constructor argument; resolving a
// default (such as one under the user's home) is the caller's concern.
type Manager struct {
	fs     *fsys.FileSystem
	logDir string
}

// NewManager creates a manager rooted at logDir, creating the directory if
// needed.
func NewManager(fs *fsys.FileSystem, logDir string) (*Manager, error) {
	if err := fs.CreateDir(logDir); err != nil {
		return nil, fmt.Errorf("create undo log directory: %w", err)
	}

	return &Manager{fs: fs, logDir: logDir}, nil
}

// LogDir returns the directory holding persisted logs.
func (m *Manager) LogDir() string {
	return m.logDir
}

// Save writes the batch to logPath, or to a generated timestamped file in
// the log directory when logPath is empty. Returns the path written.
func (m *Manager) Save(batch *Batch, logPath string) (string, error) {
	if logPath == "" {
		logPath = filepath.Join(m.logDir, logPrefix+time.Now().Format(nameStamp)+logSuffix)
	}

	entries := make([]entry, 0, batch.Len())
	for _, op := range batch.ops {
		entries = append(entries, entry{
			OperationType: string(op.Kind),
			SourcePath:    op.Source,
			DestPath:      op.Dest,
			Timestamp:     op.Timestamp.Format(time.RFC3339),
			Executed:      op.Executed,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode undo log: %w", err)
	}

	if err := os.WriteFile(logPath, data, 0o600); err != nil {
		return "", fmt.Errorf("write undo log: %w", err)
	}

	return logPath, nil
}

// Load reads a log file back into an ordered operation list.
func (m *Manager) Load(logPath string) ([]operation.Operation, error) {
	data, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLogNotFound, logPath)
		}
		return nil, fmt.Errorf("read undo log: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	ops := make([]operation.Operation, 0, len(entries))
	for i, e := range entries {
		op, convErr := e.toOperation()
		if convErr != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorruptedData, i, convErr)
		}
		ops = append(ops, op)
	}

	return ops, nil
}

func (e entry) toOperation() (operation.Operation, error) {
	kind, err := operation.ParseKind(e.OperationType)
	if err != nil {
		return operation.Operation{}, err
	}

	if e.SourcePath == "" || e.DestPath == "" {
		return operation.Operation{}, errors.New("missing source or destination path")
	}

	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return operation.Operation{}, fmt.Errorf("bad timestamp: %v", err)
	}

	return operation.Operation{
		Kind:      kind,
		Source:    e.SourcePath,
		Dest:      e.DestPath,
		Timestamp: ts,
		Executed:  e.Executed,
	}, nil
}

// LogFiles lists persisted log files, most recently modified first.
func (m *Manager) LogFiles() []string {
	dirEntries, err := os.ReadDir(m.logDir)
	if err != nil {
		return nil
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var logs []candidate
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		info, infoErr := de.Info()
		if infoErr != nil {
			continue
		}

		logs = append(logs, candidate{
			path:    filepath.Join(m.logDir, name),
			modTime: info.ModTime(),
		})
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].modTime.After(logs[j].modTime)
	})

	paths := make([]string, 0, len(logs))
	for _, l := range logs {
		paths = append(paths, l.path)
	}

	return paths
}

// HasLog reports whether at least one persisted log exists.
func (m *Manager) HasLog() bool {
	return len(m.LogFiles()) > 0
}

// Undo reverses the operations recorded in logPath, or in the most recent
// log when logPath is empty. Entries are processed in reverse (LIFO) order:
// a not-executed entry is skipped; an entry whose destination is missing
// records an error and is skipped; a failed reverse move records an error;
// processing always continues to the next entry. Afterwards the destination
// directories left empty by the reversal are removed best-effort, deepest
// first. The returned results contain only the newly created reversed
// operations.
func (m *Manager) Undo(logPath string) (operation.Results, error) {
	if logPath == "" {
		files := m.LogFiles()
		if len(files) == 0 {
			return operation.Results{}, ErrNoLogs
		}
		logPath = files[0]
	}

	ops, err := m.Load(logPath)
	if err != nil {
		return operation.Results{}, err
	}
	if len(ops) == 0 {
		return operation.Results{}, ErrEmptyLog
	}

	var results operation.Results

	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]

		if !op.Executed {
			results.Skipped++
			continue
		}

		if _, statErr := os.Lstat(op.Dest); statErr != nil {
			results.AddError(op.Dest, missingDestMessage)
			results.Skipped++
			continue
		}

		reverse := operation.New(operation.KindUndo, op.Dest, op.Source)
		if _, moveErr := m.fs.Move(op.Dest, op.Source); moveErr != nil {
			results.AddError(op.Dest, moveErr.Error())
			continue
		}

		reverse.Executed = true
		results.Operations = append(results.Operations, reverse)
		results.Successful++
	}

	m.cleanupEmptyDirs(ops)

	return results, nil
}

// cleanupEmptyDirs best-effort removes the destination parent directories of
// the undone operations, deepest first. Failures (non-empty, permission) are
// ignored: cleanup is never a reported error.
func (m *Manager) cleanupEmptyDirs(ops []operation.Operation) {
	seen := make(map[string]bool)
	var dirs []string
	for _, op := range ops {
		dir := filepath.Dir(op.Dest)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})

	for _, dir := range dirs {
		m.fs.RemoveDirIfEmpty(dir)
	}
}
