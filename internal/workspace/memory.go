package workspace

import "github.com/spf13/afero"

// Memory is an in-memory FS backed by afero.MemMapFs. The zero value is not
// usable; call NewMemory.
type Memory struct {
	tree
}

// NewMemory returns an empty in-memory FS reporting root as its location.
func NewMemory(root string) *Memory {
	return &Memory{tree{fs: afero.NewMemMapFs(), root: root}}
}
