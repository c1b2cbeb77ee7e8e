// Package merge combines template fragment files into an existing project
// tree. Each file is merged with a strategy chosen by its kind: JSON
// documents are deep merged, ignore files are line unioned, env files are
// appended to and everything else is overwritten.
package merge

import (
	"errors"
	"fmt"
)

// Sentinel errors for merge operations.
var (
	// ErrMergeConflict indicates two fragments disagree on the same JSON leaf.
	ErrMergeConflict = errors.New("merge: conflicting values")

	// ErrInvalidJSON indicates a document that json-merge could not parse.
	ErrInvalidJSON = errors.New("merge: invalid JSON document")

	// ErrUnknownStrategy indicates a strategy name that is not recognized.
	ErrUnknownStrategy = errors.New("merge: unknown strategy")
)

// MergeConflictError reports the file and JSON pointer of a conflicting leaf.
type MergeConflictError struct {
	Path     string
	Pointer  string
	Existing any
	Incoming any
}

// Error implements the error interface.
func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict in %s at %s: existing %s, incoming %s",
		e.Path, e.Pointer, describe(e.Existing), describe(e.Incoming))
}

// Unwrap returns ErrMergeConflict.
func (e *MergeConflictError) Unwrap() error {
	return ErrMergeConflict
}

func describe(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%v", v)
	}
}
