// Package template holds the catalog of project fragments and renders them
// into merge patches. The catalog and its file trees are embedded in the
// binary; see DefaultStore.
package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates a catalog source file does not exist.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates a template referenced a missing key.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates rendered output still contains a template action.
	ErrUnexpandedToken = errors.New("template: unexpanded token in output")

	// ErrFragmentNotFound indicates no fragment is registered for a stage and option.
	ErrFragmentNotFound = errors.New("template: fragment not found")

	// ErrInvalidCatalog indicates a malformed catalog entry.
	ErrInvalidCatalog = errors.New("template: invalid catalog")
)

// FragmentResolutionError reports the stage and option that failed to resolve.
type FragmentResolutionError struct {
	Stage  StageKind
	Option string
}

// Error implements the error interface.
func (e *FragmentResolutionError) Error() string {
	return fmt.Sprintf("no template fragment for stage %q option %q", e.Stage, e.Option)
}

// Unwrap returns ErrFragmentNotFound.
func (e *FragmentResolutionError) Unwrap() error {
	return ErrFragmentNotFound
}
