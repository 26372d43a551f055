package undo_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileorg/internal/testutil"
	"fileorg/pkg/fsys"
	"fileorg/pkg/operation"
	"fileorg/pkg/undo"
)

func newManager(t *testing.T) *undo.Manager {
	t.Helper()
	mgr, err := undo.NewManager(fsys.New(), filepath.Join(t.TempDir(), "logs"))
	require.NoError(t, err)
	return mgr
}

// executeMoves creates n files in srcDir, moves each into destDir, and
// records the moves in a batch, mirroring what a real run produces.
func executeMoves(t *testing.T, fs *fsys.FileSystem, srcDir, destDir string, n int) *undo.Batch {
	t.Helper()

	var batch undo.Batch
	for i := 1; i <= n; i++ {
		src := filepath.Join(srcDir, fmt.Sprintf("file_%d.txt", i))
		dest := filepath.Join(destDir, fmt.Sprintf("file_%d.txt", i))
		testutil.CreateFile(t, src, fmt.Sprintf("content %d", i))

		final, err := fs.Move(src, dest)
		require.NoError(t, err)

		batch.Record(operation.New(operation.KindOrganizeType, src, final))
	}
	return &batch
}

func TestBatch_RecordForcesExecuted(t *testing.T) {
	t.Parallel()

	var batch undo.Batch
	op := operation.New(operation.KindRename, "/a", "/b")
	op.Executed = false
	batch.Record(op)

	require.Equal(t, 1, batch.Len())
	assert.True(t, batch.Operations()[0].Executed)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	var batch undo.Batch
	batch.Record(operation.New(operation.KindRename, "/in/a.txt", "/in/b.txt"))
	batch.Record(operation.New(operation.KindOrganizeDate, "/in/c.jpg", "/in/2023/05/c.jpg"))

	logPath, err := mgr.Save(&batch, "")
	require.NoError(t, err)

	assert.Equal(t, mgr.LogDir(), filepath.Dir(logPath))
	assert.Regexp(t, `^undo_log_\d{8}_\d{6}\.json$`, filepath.Base(logPath))

	loaded, err := mgr.Load(logPath)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	want := batch.Operations()
	for i, op := range loaded {
		assert.Equal(t, want[i].Kind, op.Kind)
		assert.Equal(t, want[i].Source, op.Source)
		assert.Equal(t, want[i].Dest, op.Dest)
		assert.True(t, op.Executed)
		// RFC 3339 drops sub-second precision.
		assert.WithinDuration(t, want[i].Timestamp, op.Timestamp, time.Second)
	}
}

func TestSave_ExplicitPath(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)
	explicit := filepath.Join(t.TempDir(), "my_log.json")

	var batch undo.Batch
	batch.Record(operation.New(operation.KindRename, "/a", "/b"))

	logPath, err := mgr.Save(&batch, explicit)
	require.NoError(t, err)

	assert.Equal(t, explicit, logPath)
	assert.FileExists(t, explicit)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	_, err := mgr.Load(filepath.Join(mgr.LogDir(), "undo_log_missing.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, undo.ErrLogNotFound)
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)
	logPath := filepath.Join(mgr.LogDir(), "undo_log_bad.json")
	testutil.CreateFile(t, logPath, "{not json")

	_, err := mgr.Load(logPath)

	require.Error(t, err)
	assert.ErrorIs(t, err, undo.ErrInvalidFormat)
}

func TestLoad_CorruptedEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown operation type",
			content: `[{"operation_type": "teleport", "source_path": "/a", "dest_path": "/b", "timestamp": "2023-05-15T10:00:00Z", "executed": true}]`,
		},
		{
			name:    "missing paths",
			content: `[{"operation_type": "rename", "source_path": "", "dest_path": "/b", "timestamp": "2023-05-15T10:00:00Z", "executed": true}]`,
		},
		{
			name:    "bad timestamp",
			content: `[{"operation_type": "rename", "source_path": "/a", "dest_path": "/b", "timestamp": "yesterday", "executed": true}]`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mgr := newManager(t)
			logPath := filepath.Join(mgr.LogDir(), "undo_log_corrupt.json")
			testutil.CreateFile(t, logPath, tc.content)

			_, err := mgr.Load(logPath)

			require.Error(t, err)
			assert.ErrorIs(t, err, undo.ErrCorruptedData)
		})
	}
}

func TestLogFiles_MostRecentFirst(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	older := filepath.Join(mgr.LogDir(), "undo_log_20230101_000000.json")
	newer := filepath.Join(mgr.LogDir(), "undo_log_20240101_000000.json")
	testutil.CreateFileWithModTime(t, older, "[]", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateFileWithModTime(t, newer, "[]", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateFile(t, filepath.Join(mgr.LogDir(), "notes.txt"), "ignored")

	assert.Equal(t, []string{newer, older}, mgr.LogFiles())
	assert.True(t, mgr.HasLog())
}

func TestHasLog_EmptyDirectory(t *testing.T) {
	t.Parallel()

	assert.False(t, newManager(t).HasLog())
}

func TestUndo_RestoresAllFiles(t *testing.T) {
	t.Parallel()

	fs := fsys.New()
	mgr := newManager(t)

	workDir := t.TempDir()
	destDir := filepath.Join(workDir, "documents")
	batch := executeMoves(t, fs, workDir, destDir, 3)

	_, err := mgr.Save(batch, "")
	require.NoError(t, err)

	results, err := mgr.Undo("")
	require.NoError(t, err)

	assert.Equal(t, 3, results.Successful)
	assert.Equal(t, 0, results.Skipped)
	assert.Empty(t, results.Errors)
	require.Len(t, results.Operations, 3)

	for i := 1; i <= 3; i++ {
		restored := filepath.Join(workDir, fmt.Sprintf("file_%d.txt", i))
		assert.Equal(t, fmt.Sprintf("content %d", i), testutil.ReadFile(t, restored))
	}

	// Entries are reversed newest first.
	assert.Equal(t, filepath.Join(destDir, "file_3.txt"), results.Operations[0].Source)
	for _, op := range results.Operations {
		assert.Equal(t, operation.KindUndo, op.Kind)
		assert.True(t, op.Executed)
	}

	// The emptied destination directory is cleaned up.
	assert.NoDirExists(t, destDir)
}

func TestUndo_MissingDestinationContinues(t *testing.T) {
	t.Parallel()

	fs := fsys.New()
	mgr := newManager(t)

	workDir := t.TempDir()
	destDir := filepath.Join(workDir, "documents")
	batch := executeMoves(t, fs, workDir, destDir, 3)

	_, err := mgr.Save(batch, "")
	require.NoError(t, err)

	// One moved file disappears before the undo runs.
	removed := filepath.Join(destDir, "file_2.txt")
	require.NoError(t, os.Remove(removed))

	results, err := mgr.Undo("")
	require.NoError(t, err)

	assert.Equal(t, 2, results.Successful)
	assert.Equal(t, 1, results.Skipped)
	require.Len(t, results.Errors, 1)
	assert.Equal(t, removed, results.Errors[0].Path)
	assert.Equal(t, "File not found at destination", results.Errors[0].Message)

	assert.FileExists(t, filepath.Join(workDir, "file_1.txt"))
	assert.FileExists(t, filepath.Join(workDir, "file_3.txt"))
}

func TestUndo_NotExecutedEntriesSkipped(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)

	logPath := filepath.Join(mgr.LogDir(), "undo_log_20230101_000000.json")
	testutil.CreateFile(t, logPath,
		`[{"operation_type": "rename", "source_path": "/a", "dest_path": "/b", "timestamp": "2023-05-15T10:00:00Z", "executed": false}]`)

	results, err := mgr.Undo(logPath)
	require.NoError(t, err)

	assert.Equal(t, 0, results.Successful)
	assert.Equal(t, 1, results.Skipped)
	assert.Empty(t, results.Errors)
}

func TestUndo_ExplicitLogPath(t *testing.T) {
	t.Parallel()

	fs := fsys.New()
	mgr := newManager(t)

	workDir := t.TempDir()
	batch := executeMoves(t, fs, workDir, filepath.Join(workDir, "out"), 1)

	logPath, err := mgr.Save(batch, "")
	require.NoError(t, err)

	// A decoy newer log must not be picked when the path is explicit.
	testutil.CreateFile(t, filepath.Join(mgr.LogDir(), "undo_log_29990101_000000.json"), "[]")

	results, err := mgr.Undo(logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, results.Successful)
}

func TestUndo_NoLogs(t *testing.T) {
	t.Parallel()

	_, err := newManager(t).Undo("")

	require.Error(t, err)
	assert.ErrorIs(t, err, undo.ErrNoLogs)
}

func TestUndo_EmptyLog(t *testing.T) {
	t.Parallel()

	mgr := newManager(t)
	logPath := filepath.Join(mgr.LogDir(), "undo_log_20230101_000000.json")
	testutil.CreateFile(t, logPath, "[]")

	_, err := mgr.Undo(logPath)

	require.Error(t, err)
	assert.ErrorIs(t, err, undo.ErrEmptyLog)
}
