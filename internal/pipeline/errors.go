// Package pipeline runs the ordered generation stages that turn a validated
// project configuration into a project tree.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrNilWorkspace indicates Run was called without an output tree.
var ErrNilWorkspace = errors.New("pipeline: nil workspace")

// StageError reports the stage that failed and the underlying cause.
// Files written before the failure are left in place.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Err
}
