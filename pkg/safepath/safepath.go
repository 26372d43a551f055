// Package safepath validates that planned destinations stay inside the
// directory being organized, so that a rule or template cannot move files
// out of it.
package safepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates a path outside the root directory.
	ErrPathEscape = errors.New("path escapes target directory")
	// ErrInvalidRoot indicates the root path is invalid.
	ErrInvalidRoot = errors.New("invalid target directory")
)

// Validator checks paths against a fixed root directory.
type Validator struct {
	root string // absolute, symlink-resolved, cleaned
}

// New creates a Validator for the given root, which must be an existing
// directory.
func New(root string) (*Validator, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	cleanRoot := filepath.Clean(resolvedRoot)

	info, err := os.Stat(cleanRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidRoot)
	}

	return &Validator{root: cleanRoot}, nil
}

// Root returns the absolute root directory.
func (v *Validator) Root() string {
	return v.root
}

// ValidatePath reports whether path stays inside the root after resolving
// . and .. components. Symlinks in the path are not followed.
func (v *Validator) ValidatePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathEscape)
	}

	if !isSubPath(v.root, filepath.Clean(absPath)) {
		return fmt.Errorf("%w: %s", ErrPathEscape, path)
	}

	return nil
}

// ValidateRelative checks a root-relative destination such as a rule's
// destination folder. An absolute path or one whose .. components climb out
// of the root is rejected.
func (v *Validator) ValidateRelative(relative string) error {
	if filepath.IsAbs(relative) {
		return fmt.Errorf("%w: %s", ErrPathEscape, relative)
	}

	return v.ValidatePath(filepath.Join(v.root, relative))
}

// isSubPath reports whether child is parent or lies under it. Both paths
// must be absolute and clean.
func isSubPath(parent, child string) bool {
	if parent == child {
		return true
	}

	parentWithSep := parent
	if !strings.HasSuffix(parentWithSep, string(filepath.Separator)) {
		parentWithSep += string(filepath.Separator)
	}

	return strings.HasPrefix(child, parentWithSep)
}
