package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/modu-ai/stackgen/internal/defs"
)

// tree implements FS on an afero filesystem. Names are kept rooted ("/a/b")
// inside the afero tree so the on-disk and in-memory backends see the same
// paths.
type tree struct {
	fs   afero.Fs
	root string
}

// Compile-time interface compliance check.
var _ FS = (*tree)(nil)

func (t *tree) Root() string { return t.root }

func (t *tree) resolve(name string) (string, error) {
	cleaned, err := Clean(name)
	if err != nil {
		return "", err
	}
	return "/" + cleaned, nil
}

func (t *tree) ReadFile(name string) ([]byte, error) {
	p, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(t.fs, p)
}

// WriteFile writes data through a temp file and rename so a failed write
// never leaves a truncated file behind.
func (t *tree) WriteFile(name string, data []byte, perm fs.FileMode) error {
	p, err := t.resolve(name)
	if err != nil {
		return err
	}
	if info, err := t.fs.Stat(p); err == nil && info.IsDir() {
		return fmt.Errorf("write %q: path is a directory", name)
	}
	dir := path.Dir(p)
	if err := t.fs.MkdirAll(dir, defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(t.fs, dir, ".stackgen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = t.fs.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := t.fs.Chmod(tmpName, perm.Perm()); err != nil {
		return fmt.Errorf("chmod %q: %w", name, err)
	}
	return t.fs.Rename(tmpName, p)
}

func (t *tree) Exists(name string) bool {
	p, err := t.resolve(name)
	if err != nil {
		return false
	}
	info, err := t.fs.Stat(p)
	return err == nil && !info.IsDir()
}

func (t *tree) Remove(name string) error {
	p, err := t.resolve(name)
	if err != nil {
		return err
	}
	info, err := t.fs.Stat(p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("remove %q: path is a directory", name)
	}
	return t.fs.Remove(p)
}

func (t *tree) Mode(name string) (fs.FileMode, error) {
	p, err := t.resolve(name)
	if err != nil {
		return 0, err
	}
	info, err := t.fs.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Mode().Perm(), nil
}

// Files lists regular files under the root. The .git directory is not part
// of the generated tree and is skipped.
func (t *tree) Files() ([]string, error) {
	var files []string
	err := afero.Walk(t.fs, "/", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == "/" {
				return nil
			}
			return err
		}
		rel := strings.TrimLeft(filepath.ToSlash(p), "/")
		if info.IsDir() {
			if info.Name() == ".git" && rel != "" {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace: %w", err)
	}
	slices.Sort(files)
	return files, nil
}
