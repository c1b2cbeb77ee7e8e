package merge

import (
	"fmt"
	"strings"
)

// EditOp is the kind of a line in an edit script.
type EditOp int

const (
	// OpEqual means the line is unchanged.
	OpEqual EditOp = iota
	// OpInsert means the line was added.
	OpInsert
	// OpDelete means the line was removed.
	OpDelete
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

// scriptLine is one line of an edit script. oldPos and newPos count the
// lines of each side that precede it.
type scriptLine struct {
	op     EditOp
	text   string
	oldPos int
	newPos int
}

// diffLines computes a minimal line edit script turning a into b using a
// longest common subsequence table.
func diffLines(a, b []string) []scriptLine {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]scriptLine, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			script = append(script, scriptLine{OpEqual, a[i], i, j})
			i++
			j++
		case j >= len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, scriptLine{OpDelete, a[i], i, j})
			i++
		default:
			script = append(script, scriptLine{OpInsert, b[j], i, j})
			j++
		}
	}
	return script
}

// UnifiedDiff renders the change from before to after in unified diff
// format. It returns "" when the contents are identical.
func UnifiedDiff(name string, before, after []byte) string {
	script := diffLines(splitLines(before), splitLines(after))

	var changed []int
	for i, l := range script {
		if l.op != OpEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)

	for start := 0; start < len(changed); {
		end := start
		for end+1 < len(changed) && changed[end+1]-changed[end] <= 2*diffContext {
			end++
		}
		lo := max(changed[start]-diffContext, 0)
		hi := min(changed[end]+diffContext+1, len(script))
		writeHunk(&sb, script[lo:hi])
		start = end + 1
	}
	return sb.String()
}

func writeHunk(sb *strings.Builder, hunk []scriptLine) {
	oldCount, newCount := 0, 0
	for _, l := range hunk {
		if l.op != OpInsert {
			oldCount++
		}
		if l.op != OpDelete {
			newCount++
		}
	}
	oldStart, newStart := hunk[0].oldPos, hunk[0].newPos
	if oldCount > 0 {
		oldStart++
	}
	if newCount > 0 {
		newStart++
	}

	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range hunk {
		switch l.op {
		case OpEqual:
			sb.WriteString(" ")
		case OpInsert:
			sb.WriteString("+")
		case OpDelete:
			sb.WriteString("-")
		}
		sb.WriteString(l.text)
		sb.WriteString("\n")
	}
}

// splitLines splits content into lines, ignoring the final newline.
func splitLines(content []byte) []string {
	s := strings.TrimRight(string(content), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
