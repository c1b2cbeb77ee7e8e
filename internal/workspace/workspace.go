// Package workspace abstracts the project directory that generation writes
// into. Paths are always slash separated and relative to the workspace root.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Sentinel errors for workspace operations.
var (
	// ErrPathTraversal indicates a path that would escape the workspace root.
	ErrPathTraversal = errors.New("workspace: path traversal detected")

	// ErrNotExist indicates the requested file does not exist.
	ErrNotExist = fs.ErrNotExist
)

// FS is the output directory state mutated by pipeline stages.
type FS interface {
	// Root returns the location of the workspace, for display and for
	// collaborators (such as git) that need a real directory.
	Root() string

	// ReadFile returns the content of the file at name.
	ReadFile(name string) ([]byte, error)

	// WriteFile creates or replaces the file at name, creating parents.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Exists reports whether a file exists at name.
	Exists(name string) bool

	// Remove deletes the file at name. Removing a missing file is an error.
	Remove(name string) error

	// Files returns every file path in lexical order.
	Files() ([]string, error)

	// Mode returns the permission bits of the file at name.
	Mode(name string) (fs.FileMode, error)
}

// Clean validates name and returns it in canonical slash form.
func Clean(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty path", ErrPathTraversal)
	}
	slashed := strings.ReplaceAll(name, `\`, "/")
	if path.IsAbs(slashed) || (len(slashed) > 1 && slashed[1] == ':') {
		return "", fmt.Errorf("%w: absolute path %q", ErrPathTraversal, name)
	}
	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", fmt.Errorf("%w: %q names the root", ErrPathTraversal, name)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, name)
	}
	return cleaned, nil
}

// FilesUnder returns the files of w whose path starts with dir/, in
// lexical order. An empty dir matches every file.
func FilesUnder(w FS, dir string) ([]string, error) {
	all, err := w.Files()
	if err != nil {
		return nil, err
	}
	if dir == "" || dir == "." {
		return all, nil
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []string
	for _, f := range all {
		if strings.HasPrefix(f, prefix) {
			out = append(out, f)
		}
	}
	return out, nil
}
