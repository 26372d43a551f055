// Package fsys is the filesystem collaborator: moves with numeric-suffix
// conflict resolution, directory creation, non-recursive listing, and
// metadata queries, all surfacing a small fixed error taxonomy.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"
)

// Error kinds surfaced by the collaborator. Callers classify failures with
// errors.Is against these sentinels.
var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrPathInvalid       = errors.New("path invalid")
	ErrInsufficientSpace = errors.New("insufficient disk space")
)

// FileInfo holds metadata about a single file.
type FileInfo struct {
	Path        string
	Size        int64
	ModTime     time.Time
	CreatedTime time.Time
	Extension   string // including the dot, e.g. ".txt"
}

// FileSystem performs real filesystem operations.
type FileSystem struct{}

// New creates a FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ResolveConflict returns a destination path guaranteed not to exist at call
// time. If desired is free it is returned unchanged; otherwise _1, _2, ... is
// inserted before the extension until a free name is found. The counter is
// unbounded. Check-then-act is not atomic against external writers; this is
// an accepted limitation for a single-user local tool.
func (f *FileSystem) ResolveConflict(desired string) string {
	if !exists(desired) {
		return desired
	}

	dir := filepath.Dir(desired)
	name := filepath.Base(desired)
	ext := filepath.Ext(name)
	if ext == name {
		// dotfiles are all stem
		ext = ""
	}
	stem := name[:len(name)-len(ext)]

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

// Move moves a file from source to dest, resolving destination conflicts
// with a numeric suffix so that no existing file is ever overwritten. The
// destination parent directory is created if missing. Returns the final
// (possibly suffixed) destination path.
func (f *FileSystem) Move(source, dest string) (string, error) {
	info, err := os.Lstat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("source file does not exist: %s: %w", source, ErrNotFound)
		}
		return "", classify(err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("source is not a file: %s: %w", source, ErrPathInvalid)
	}

	final := f.ResolveConflict(dest)

	if err := f.CreateDir(filepath.Dir(final)); err != nil {
		return "", err
	}

	if err := os.Rename(source, final); err != nil {
		return "", classify(err)
	}

	return final, nil
}

// CreateDir creates a directory and any missing parents. Idempotent.
func (f *FileSystem) CreateDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return classify(err)
	}
	return nil
}

// ListFiles returns the files (not directories) directly inside dir whose
// names match the glob pattern, sorted by name so that planning order is
// deterministic.
func (f *FileSystem) ListFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory does not exist: %s: %w", dir, ErrNotFound)
		}
		return nil, classify(err)
	}

	if pattern == "" {
		pattern = "*"
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, matchErr := filepath.Match(pattern, entry.Name())
		if matchErr != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, ErrPathInvalid)
		}
		if matched {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Stat returns metadata for a single file.
func (f *FileSystem) Stat(filePath string) (FileInfo, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, fmt.Errorf("file does not exist: %s: %w", filePath, ErrNotFound)
		}
		return FileInfo{}, classify(err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("path is not a file: %s: %w", filePath, ErrPathInvalid)
	}

	created := createdTime(info)
	if created.IsZero() {
		created = info.ModTime()
	}

	return FileInfo{
		Path:        filePath,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		CreatedTime: created,
		Extension:   strings.ToLower(filepath.Ext(filePath)),
	}, nil
}

// RemoveDirIfEmpty removes dir only when it contains no entries. Returns
// true when the directory was removed.
func (f *FileSystem) RemoveDirIfEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}
	return os.Remove(dir) == nil
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// classify wraps an OS-level error with the matching taxonomy sentinel.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%v: %w", err, ErrPermissionDenied)
	case errors.Is(err, syscall.ENOSPC):
		return fmt.Errorf("%v: %w", err, ErrInsufficientSpace)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	default:
		return fmt.Errorf("%v: %w", err, ErrPathInvalid)
	}
}
