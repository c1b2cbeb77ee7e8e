package merge

import (
	"slices"
	"strings"
)

// MarkerPrefix starts the comment line that identifies an appended block.
const MarkerPrefix = "# stackgen:"

// Marker returns the marker line for the fragment with the given id.
func Marker(id string) string {
	return MarkerPrefix + id
}

// appendBlock adds incoming to existing under the fragment marker. It
// reports false when the marker is already present.
func appendBlock(id string, existing, incoming []byte) ([]byte, bool) {
	marker := Marker(id)
	if slices.Contains(strings.Split(string(existing), "\n"), marker) {
		return existing, false
	}

	var sb strings.Builder
	if head := strings.TrimRight(string(existing), "\n"); head != "" {
		sb.WriteString(head)
		sb.WriteString("\n\n")
	}
	sb.WriteString(marker)
	sb.WriteString("\n")
	body := strings.TrimRight(string(incoming), "\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return []byte(sb.String()), true
}
