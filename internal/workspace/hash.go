package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns a SHA-256 digest over every file path, permission and
// content in w. Two trees with the same files hash equal regardless of the
// order they were written in.
func Hash(w FS) (string, error) {
	files, err := w.Files()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, name := range files {
		data, err := w.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("hash %q: %w", name, err)
		}
		mode, err := w.Mode(name)
		if err != nil {
			return "", fmt.Errorf("hash %q: %w", name, err)
		}
		fmt.Fprintf(h, "%s\x00%o\x00%d\x00", name, mode, len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
