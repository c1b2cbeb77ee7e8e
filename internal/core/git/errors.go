// Package git initializes a repository in a freshly generated project using
// the system git binary.
package git

import "errors"

// Sentinel errors for git operations.
var (
	// ErrSystemGitNotFound indicates git is not on PATH.
	ErrSystemGitNotFound = errors.New("git: system git not found")

	// ErrAlreadyRepository indicates the target directory already has a .git entry.
	ErrAlreadyRepository = errors.New("git: directory is already a repository")
)
