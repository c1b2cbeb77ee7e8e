// Package cli provides the Cobra command tree and dependency wiring for the
// stackgen CLI. This file defines the Dependencies struct (Composition Root)
// that wires the domain packages together.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/modu-ai/stackgen/internal/cli/wizard"
	"github.com/modu-ai/stackgen/internal/core/git"
	"github.com/modu-ai/stackgen/internal/core/project"
	"github.com/modu-ai/stackgen/internal/ui"
	"github.com/modu-ai/stackgen/pkg/models"
)

// PromptFunc asks for the choices not listed in answered.
type PromptFunc func(questions []wizard.Question, cfg *models.ProjectConfig, answered map[string]bool) error

// Dependencies holds the services used by CLI commands. This is the only
// place where concrete types are instantiated and wired together.
type Dependencies struct {
	Logger   *slog.Logger
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Progress ui.Progress
	Creator  project.Creator
	Prompt   PromptFunc
	// Git overrides the system git initializer when set.
	Git git.Initializer
}

// deps is the global dependencies instance, initialized by InitDependencies
// unless a test installed its own with SetDeps.
var deps *Dependencies

// @MX:ANCHOR: [AUTO] InitDependencies is the Composition Root that wires all domain modules
// @MX:REASON: [AUTO] called from the root command's PersistentPreRunE and by tests
// InitDependencies creates and wires all dependencies. Logs go to errOut
// through a charmbracelet/log handler at info level, or debug when verbose.
func InitDependencies(errOut io.Writer, verbose, noColor bool) {
	logger := NewLogger(errOut, verbose)
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: noColor})
	hm := ui.NewHeadlessManager()

	deps = &Dependencies{
		Logger:   logger,
		Theme:    theme,
		Headless: hm,
		Progress: ui.NewProgress(theme, hm),
		Creator:  project.NewCreator(logger),
		Prompt:   wizard.Run,
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// NewLogger returns a slog.Logger backed by charmbracelet/log.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "stackgen",
	})
	return slog.New(handler)
}
