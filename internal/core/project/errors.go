// Package project creates a new project directory and runs the generation
// pipeline inside it. It owns the on-disk target: the pipeline itself only
// sees a workspace.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrProjectExists indicates the target directory exists and is not empty.
	ErrProjectExists = errors.New("project directory already exists and is not empty")

	// ErrInvalidRoot indicates the parent path is not a usable directory.
	ErrInvalidRoot = errors.New("invalid project root path")
)
