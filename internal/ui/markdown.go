package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWrapWidth is the column at which rendered markdown wraps.
const DefaultWrapWidth = 80

// RenderMarkdown renders md for the terminal. Without color the "notty"
// style is used so the output carries no escape sequences.
func RenderMarkdown(theme *Theme, md string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	style := glamour.WithAutoStyle()
	if theme.NoColor {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
