package merge

import (
	"strings"
)

// unionLines returns every distinct non-empty line of existing followed by
// the new lines of incoming. Lines are compared after trimming trailing
// whitespace.
func unionLines(existing, incoming []byte) []byte {
	var out []string
	seen := make(map[string]bool)
	for _, src := range [][]byte{existing, incoming} {
		for line := range strings.SplitSeq(string(src), "\n") {
			line = strings.TrimRight(line, " \t\r")
			if line == "" || seen[line] {
				continue
			}
			seen[line] = true
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(out, "\n") + "\n")
}
