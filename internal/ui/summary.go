package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/modu-ai/stackgen/internal/summary"
)

// RenderSummary formats instruction blocks for the terminal. Blocks are
// separated by a blank line; untitled blocks render their lines only.
func RenderSummary(theme *Theme, blocks []summary.Block) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if block.Title != "" {
			b.WriteString(theme.Title().Render(block.Title))
			b.WriteByte('\n')
		}
		for _, line := range block.Lines {
			b.WriteString(renderLine(theme, line))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderLine(theme *Theme, line summary.Line) string {
	switch line.Kind {
	case summary.KindStep:
		return theme.Accent().Render(line.Label) + " " + line.Text
	case summary.KindBullet:
		return theme.Accent().Render("•") + " " + line.Label + ": " + theme.Dim().Render(line.Text)
	case summary.KindNote:
		return theme.Warn().Render("NOTE:") + " " + line.Text
	case summary.KindDim:
		return theme.Dim().Render(line.Text)
	default:
		return line.Text
	}
}

// WriteSuccess prints the completion line followed by the project path.
func WriteSuccess(w io.Writer, theme *Theme, path string) {
	_, _ = fmt.Fprintf(w, "%s Project created at %s\n", theme.Success().Render("✔"), path)
}
