package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/workspace"
)

// Action describes what happened to a file during Apply.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
)

// File is one rendered file of a patch. Path is relative to the project
// root. An empty Strategy defers to the patch and then to the selector.
type File struct {
	Path     string
	Content  []byte
	Strategy Strategy
	Mode     fs.FileMode
}

// Patch is a rendered fragment ready to be merged into a workspace.
type Patch struct {
	// ID identifies the source fragment; it names append markers.
	ID string
	// Strategy overrides path-based selection for every file.
	Strategy Strategy
	// SkipExisting leaves files that already exist untouched.
	SkipExisting bool
	Files        []File
}

// Change records the outcome for one file.
type Change struct {
	Path     string
	Strategy Strategy
	Action   Action
}

// Result lists the changes made by one Apply call, in file order.
type Result struct {
	Changes []Change
}

// Modified reports whether any file was created or updated.
func (r *Result) Modified() bool {
	for _, c := range r.Changes {
		if c.Action == ActionCreated || c.Action == ActionUpdated {
			return true
		}
	}
	return false
}

// Engine applies patches to a workspace.
type Engine struct {
	selector *StrategySelector
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine. The default logger discards output.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		selector: NewStrategySelector(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// @MX:ANCHOR: [AUTO] Apply is the only writer of fragment content into the project tree.
// @MX:REASON: [AUTO] fan_in=9, every template-driven pipeline stage goes through it
// Apply merges every file of p into w. It stops at the first error; files
// written before the error stay written.
func (e *Engine) Apply(p *Patch, w workspace.FS) (*Result, error) {
	res := &Result{Changes: make([]Change, 0, len(p.Files))}
	for _, f := range p.Files {
		change, err := e.applyFile(p, f, w)
		if err != nil {
			return res, err
		}
		res.Changes = append(res.Changes, change)
	}
	return res, nil
}

func (e *Engine) applyFile(p *Patch, f File, w workspace.FS) (Change, error) {
	name, err := workspace.Clean(f.Path)
	if err != nil {
		return Change{}, err
	}

	strategy := f.Strategy
	if strategy == "" {
		strategy = p.Strategy
	}
	if strategy == "" {
		strategy = e.selector.SelectStrategy(name)
	}
	change := Change{Path: name, Strategy: strategy}

	exists := w.Exists(name)
	if exists && p.SkipExisting {
		change.Action = ActionSkipped
		e.logger.Debug("skip existing file", "fragment", p.ID, "path", name)
		return change, nil
	}

	var existing []byte
	if exists {
		existing, err = w.ReadFile(name)
		if err != nil {
			return Change{}, fmt.Errorf("read %s: %w", name, err)
		}
	}

	var merged []byte
	switch strategy {
	case Overwrite:
		merged = f.Content
	case JSONMerge:
		merged, err = mergeJSON(name, existing, f.Content)
		if err != nil {
			return Change{}, err
		}
	case LineUnion:
		merged = unionLines(existing, f.Content)
	case Append:
		merged, _ = appendBlock(p.ID, existing, f.Content)
	default:
		return Change{}, fmt.Errorf("%w: %q for %s", ErrUnknownStrategy, strategy, name)
	}

	mode := fileMode(name, f.Mode)
	if exists && bytes.Equal(existing, merged) {
		cur, err := w.Mode(name)
		if err == nil && cur == mode {
			change.Action = ActionUnchanged
			return change, nil
		}
	}

	if err := w.WriteFile(name, merged, mode); err != nil {
		return Change{}, fmt.Errorf("write %s: %w", name, err)
	}

	if exists {
		change.Action = ActionUpdated
		if e.logger.Enabled(context.Background(), slog.LevelDebug) {
			e.logger.Debug("merged file", "fragment", p.ID, "path", name, "strategy", strategy,
				"diff", UnifiedDiff(name, existing, merged))
		}
	} else {
		change.Action = ActionCreated
		e.logger.Debug("created file", "fragment", p.ID, "path", name, "strategy", strategy)
	}
	return change, nil
}

// fileMode returns the permission for a written file. Shell scripts are
// executable.
func fileMode(name string, mode fs.FileMode) fs.FileMode {
	if mode != 0 {
		return mode.Perm()
	}
	if strings.HasSuffix(name, ".sh") {
		return defs.ExecPerm
	}
	return defs.FilePerm
}

// IsConflict reports whether err is a merge conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrMergeConflict)
}
