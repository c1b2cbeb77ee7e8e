package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/modu-ai/stackgen/internal/defs"
)

// NewOS returns an FS rooted at dir, creating the directory if needed.
// Every access goes through an afero.BasePathFs, which refuses paths
// outside dir even if a caller skips Clean.
func NewOS(dir string) (FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	if err := os.MkdirAll(abs, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create workspace root %q: %w", abs, err)
	}
	return &tree{fs: afero.NewBasePathFs(afero.NewOsFs(), abs), root: abs}, nil
}
