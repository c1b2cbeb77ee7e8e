// Package ui renders stackgen's terminal output: the progress spinner shown
// while a project is generated, the post-generation summary and markdown
// previews. Every component has a plain-text variant used without a TTY.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette (dark background variants).
const (
	ColorPrimary   = "#DA7756"
	ColorSecondary = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#F9FAFB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// Colors holds the palette a Theme renders with.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme carries the palette and the color switch for all ui components.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// ThemeConfig selects theme options.
type ThemeConfig struct {
	NoColor bool
}

// NewTheme returns the default theme. Color is disabled when cfg.NoColor is
// set or the NO_COLOR environment variable is present.
func NewTheme(cfg ThemeConfig) *Theme {
	noColor := cfg.NoColor
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}
	return &Theme{
		Colors: Colors{
			Primary:   ColorPrimary,
			Secondary: ColorSecondary,
			Success:   ColorSuccess,
			Warning:   ColorWarning,
			Error:     ColorError,
			Muted:     ColorMuted,
		},
		NoColor: noColor,
	}
}

func (t *Theme) fg(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Title styles block headings.
func (t *Theme) Title() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true)
}

// Accent styles step numbers and bullets.
func (t *Theme) Accent() lipgloss.Style { return t.fg(t.Colors.Primary) }

// Warn styles note prefixes.
func (t *Theme) Warn() lipgloss.Style { return t.fg(t.Colors.Warning) }

// Success styles completion marks.
func (t *Theme) Success() lipgloss.Style { return t.fg(t.Colors.Success) }

// Failure styles error output.
func (t *Theme) Failure() lipgloss.Style { return t.fg(t.Colors.Error) }

// Dim styles supporting detail.
func (t *Theme) Dim() lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Muted))
}
