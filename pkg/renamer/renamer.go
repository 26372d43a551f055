// Package renamer plans rename operations for four transform strategies.
// All planners are pure with respect to the filesystem except for the
// pattern strategy's read-only collision check against pre-existing files.
package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fileorg/pkg/operation"
	"fileorg/pkg/sanitizer"
)

// CaseKind selects a case transformation for the Case strategy.
type CaseKind string

const (
	CaseLower CaseKind = "lowercase"
	CaseUpper CaseKind = "uppercase"
	CaseTitle CaseKind = "title"
)

// ParseCaseKind validates a case transformation name.
func ParseCaseKind(s string) (CaseKind, error) {
	switch CaseKind(strings.ToLower(s)) {
	case CaseLower, CaseUpper, CaseTitle:
		return CaseKind(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown case transformation %q", s)
	}
}

// DuplicateNameError reports that a pattern rename would collide. The whole
// call fails and produces no operations; silently dropping some renames
// while keeping others would leave the batch in a non-obvious partial state.
type DuplicateNameError struct {
	Names []string // original filenames that conflict
}

func (e *DuplicateNameError) Error() string {
	return "rename would create duplicate filenames: " + strings.Join(e.Names, ", ")
}

// Pattern plans find-and-replace renames. All occurrences of find in the
// filename stem are replaced; the extension is preserved. An empty resulting
// stem, a candidate name already claimed by another file in the call, or a
// pre-existing on-disk file at the destination (other than the file itself)
// marks the original filename as conflicting. Any conflict fails the whole
// call with DuplicateNameError. Unchanged names produce no operation.
func Pattern(files []string, find, replace string) ([]operation.Operation, error) {
	var ops []operation.Operation
	claimed := make(map[string]bool)
	var conflicts []string

	for _, file := range files {
		name := filepath.Base(file)
		stem, ext := splitExt(name)

		newStem := strings.ReplaceAll(stem, find, replace)
		if newStem == "" {
			conflicts = append(conflicts, name)
			continue
		}

		newName := newStem + ext
		newPath := filepath.Join(filepath.Dir(file), newName)

		if claimed[newName] || (newPath != file && pathExists(newPath)) {
			conflicts = append(conflicts, name)
			continue
		}
		claimed[newName] = true

		if newName != name {
			ops = append(ops, operation.New(operation.KindRename, file, newPath))
		}
	}

	if len(conflicts) > 0 {
		return nil, &DuplicateNameError{Names: conflicts}
	}

	return ops, nil
}

// Sanitize plans renames that normalize each filename with the sanitizer.
// Collisions follow the same rule as Pattern: a candidate name already
// claimed in the call or occupied on disk fails the whole call with
// DuplicateNameError. Unchanged names produce no operation.
func Sanitize(files []string) ([]operation.Operation, error) {
	var ops []operation.Operation
	claimed := make(map[string]bool)
	var conflicts []string

	for _, file := range files {
		name := filepath.Base(file)
		newName := sanitizer.Clean(name)
		newPath := filepath.Join(filepath.Dir(file), newName)

		if claimed[newName] || (newPath != file && pathExists(newPath)) {
			conflicts = append(conflicts, name)
			continue
		}
		claimed[newName] = true

		if newName != name {
			ops = append(ops, operation.New(operation.KindRename, file, newPath))
		}
	}

	if len(conflicts) > 0 {
		return nil, &DuplicateNameError{Names: conflicts}
	}

	return ops, nil
}

// placeholder is the literal token replaced by the sequence number in
// Sequential templates.
const placeholder = "{n}"

// Sequential plans renames that number files 1..N in input order, using the
// template with its placeholder substituted and the original extension
// appended. No duplicate check: numbers are unique within a call.
func Sequential(files []string, template string) []operation.Operation {
	ops := make([]operation.Operation, 0, len(files))

	for i, file := range files {
		_, ext := splitExt(filepath.Base(file))
		newName := strings.ReplaceAll(template, placeholder, fmt.Sprintf("%d", i+1)) + ext
		newPath := filepath.Join(filepath.Dir(file), newName)
		ops = append(ops, operation.New(operation.KindRename, file, newPath))
	}

	return ops
}

// Case plans stem-only case transformations, skipping files whose name
// would not change.
func Case(files []string, kind CaseKind) []operation.Operation {
	var ops []operation.Operation

	for _, file := range files {
		name := filepath.Base(file)
		stem, ext := splitExt(name)

		var newStem string
		switch kind {
		case CaseLower:
			newStem = strings.ToLower(stem)
		case CaseUpper:
			newStem = strings.ToUpper(stem)
		case CaseTitle:
			newStem = titleCase(stem)
		default:
			newStem = stem
		}

		newName := newStem + ext
		if newName == name {
			continue
		}

		ops = append(ops, operation.New(operation.KindRename, file, filepath.Join(filepath.Dir(file), newName)))
	}

	return ops
}

// PrefixSuffix plans renames with prefix and suffix wrapped around the stem,
// skipping files whose name would not change.
func PrefixSuffix(files []string, prefix, suffix string) []operation.Operation {
	var ops []operation.Operation

	for _, file := range files {
		name := filepath.Base(file)
		stem, ext := splitExt(name)

		newName := prefix + stem + suffix + ext
		if newName == name {
			continue
		}

		ops = append(ops, operation.New(operation.KindRename, file, filepath.Join(filepath.Dir(file), newName)))
	}

	return ops
}

// titleCase capitalizes the first letter of each word and lowercases the
// rest. Words are delimited by whitespace, underscores, or hyphens; the
// delimiters are preserved.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '_' || r == '-' {
			b.WriteRune(r)
			startOfWord = true
			continue
		}

		if startOfWord {
			b.WriteString(strings.ToUpper(string(r)))
			startOfWord = false
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}

	return b.String()
}

// splitExt splits a filename into stem and extension. A dotfile such as
// .gitignore is all stem: its leading dot does not start an extension.
func splitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return name[:len(name)-len(ext)], ext
}

func pathExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}
