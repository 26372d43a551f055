// Package operation defines the value types shared by all planners:
// a single planned or completed file transition, and the aggregated
// results of executing or undoing a batch of them.
package operation

import (
	"fmt"
	"time"
)

// Kind identifies the workflow that produced an operation.
type Kind string

const (
	KindRename       Kind = "rename"
	KindOrganizeType Kind = "organize_type"
	KindOrganizeDate Kind = "organize_date"
	KindCustom       Kind = "custom"
	KindUndo         Kind = "undo"
)

// ParseKind converts a stable string tag back into a Kind.
func ParseKind(tag string) (Kind, error) {
	switch Kind(tag) {
	case KindRename, KindOrganizeType, KindOrganizeDate, KindCustom, KindUndo:
		return Kind(tag), nil
	default:
		return "", fmt.Errorf("unknown operation type %q", tag)
	}
}

// Operation represents a single intended or completed file transition.
// Executed stays false until the filesystem move actually succeeds; in
// dry-run mode it remains false forever.
type Operation struct {
	Kind      Kind
	Source    string
	Dest      string
	Timestamp time.Time
	Executed  bool
}

// New creates a not-yet-executed operation stamped with the current time.
func New(kind Kind, source, dest string) Operation {
	return Operation{
		Kind:      kind,
		Source:    source,
		Dest:      dest,
		Timestamp: time.Now(),
	}
}

// OpError records a per-file failure with a human-readable message.
type OpError struct {
	Path    string
	Message string
}

// Results summarizes a plan execution or undo pass.
type Results struct {
	Successful int
	Skipped    int
	Errors     []OpError
	Operations []Operation
}

// AddError appends a per-file failure.
func (r *Results) AddError(path, message string) {
	r.Errors = append(r.Errors, OpError{Path: path, Message: message})
}
