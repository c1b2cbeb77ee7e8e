package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/internal/pipeline"
	"github.com/modu-ai/stackgen/internal/workspace"
	"github.com/modu-ai/stackgen/pkg/models"
)

// CreateOptions configures project creation.
type CreateOptions struct {
	// Parent is the directory the project directory is created in.
	// Defaults to the working directory.
	Parent string
	// Pipeline options forwarded to pipeline.Run.
	Pipeline []pipeline.Option
}

// Result summarizes a created project.
type Result struct {
	// Path is the absolute project directory.
	Path   string
	Config models.ProjectConfig
	Report *pipeline.Report
}

// Creator generates projects on disk.
type Creator interface {
	// Create validates cfg, prepares <Parent>/<ProjectName> and generates
	// the project into it.
	Create(ctx context.Context, cfg models.ProjectConfig, opts CreateOptions) (*Result, error)
}

type projectCreator struct {
	logger *slog.Logger
}

// NewCreator creates a Creator that logs to logger.
func NewCreator(logger *slog.Logger) Creator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &projectCreator{logger: logger}
}

// Create validates before touching the file system, so an invalid
// configuration leaves no directory behind. A failing stage leaves the
// partial project in place and is returned as *pipeline.StageError.
func (c *projectCreator) Create(ctx context.Context, cfg models.ProjectConfig, opts CreateOptions) (*Result, error) {
	resolved, err := config.Validate(cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := targetDir(opts.Parent, resolved.ProjectName)
	if err != nil {
		return nil, err
	}

	c.logger.Info("creating project", "path", dir, "backend", resolved.Backend, "runtime", resolved.Runtime)

	w, err := workspace.NewOS(dir)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", dir, err)
	}

	popts := append([]pipeline.Option{pipeline.WithLogger(c.logger)}, opts.Pipeline...)
	report, err := pipeline.Run(ctx, resolved, w, popts...)
	return &Result{Path: dir, Config: resolved, Report: report}, err
}

// targetDir resolves <parent>/<name> and rejects a non-empty existing target.
func targetDir(parent, name string) (string, error) {
	if parent == "" {
		parent = "."
	}
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, parent, err)
	}
	if info, err := os.Stat(absParent); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, absParent)
	}

	dir := filepath.Join(absParent, name)
	entries, err := os.ReadDir(dir)
	switch {
	case err == nil && len(entries) > 0:
		return "", fmt.Errorf("%w: %s", ErrProjectExists, dir)
	case err != nil && !os.IsNotExist(err):
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrProjectExists, dir)
		}
		return "", fmt.Errorf("inspect %s: %w", dir, err)
	}
	return dir, nil
}
