package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/internal/core/git"
	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/internal/workspace"
	"github.com/modu-ai/stackgen/pkg/models"
)

// StageReport is the outcome of one stage.
type StageReport struct {
	Name     string
	Result   StageResult
	Duration time.Duration
}

// Report lists the stages that ran, in order. On failure it ends with the
// last stage that completed.
type Report struct {
	Root   string
	Stages []StageReport
}

// Changes returns every file change across applied stages.
func (r *Report) Changes() []merge.Change {
	var out []merge.Change
	for _, s := range r.Stages {
		if a, ok := s.Result.(Applied); ok {
			out = append(out, a.Changes...)
		}
	}
	return out
}

// Skipped returns the names of stages that made no change.
func (r *Report) Skipped() []string {
	var out []string
	for _, s := range r.Stages {
		if _, ok := s.Result.(Skipped); ok {
			out = append(out, s.Name)
		}
	}
	return out
}

// Progress is called before each stage runs.
type Progress func(stage string, index, total int)

type options struct {
	store    *template.Store
	git      git.Initializer
	logger   *slog.Logger
	version  string
	stages   []Stage
	progress Progress
}

// Option configures Run.
type Option func(*options)

// WithStore sets the fragment store. The default is template.DefaultStore.
func WithStore(s *template.Store) Option {
	return func(o *options) { o.store = s }
}

// WithGit sets the git initializer used by the git stage.
func WithGit(g git.Initializer) Option {
	return func(o *options) { o.git = g }
}

// WithLogger sets the logger shared by the stages and the merge engine.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVersion records the generator version in rendered files.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// WithStages replaces the stage list.
func WithStages(stages ...Stage) Option {
	return func(o *options) { o.stages = stages }
}

// WithProgress registers a callback invoked before each stage.
func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// DefaultStages returns the built-in stages in generation order.
func DefaultStages() []Stage {
	return []Stage{
		baseStage(),
		frontendStage(),
		gitignoreStage(),
		backendFrameworkStage(),
		backendDependenciesStage(),
		ormTemplateStage(),
		databaseStage(),
		authTemplateStage(),
		authStage(),
		runtimeStage(),
		examplesStage(),
		environmentVariablesStage(),
		gitStage(),
		addonsStage(),
		packageConfigurationStage(),
		readmeStage(),
	}
}

// @MX:ANCHOR: [AUTO] Run is the single entry point for project generation.
// @MX:REASON: [AUTO] fan_in=3, called by the create command, the project creator and tests
// Run validates cfg and applies every stage to w in order. The first
// failing stage aborts the run with a *StageError; nothing is rolled back.
// A configuration error is returned as *config.ValidationError before any
// file is touched.
func Run(ctx context.Context, cfg models.ProjectConfig, w workspace.FS, opts ...Option) (*Report, error) {
	if w == nil {
		return nil, ErrNilWorkspace
	}
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	resolved, err := config.Validate(cfg)
	if err != nil {
		return nil, err
	}

	if o.store == nil {
		if o.store, err = template.DefaultStore(); err != nil {
			return nil, err
		}
	}
	if o.git == nil {
		o.git = git.NewInitializer(git.WithLogger(o.logger))
	}
	if o.stages == nil {
		o.stages = DefaultStages()
	}

	env := &Env{
		Config:   resolved,
		FS:       w,
		Store:    o.store,
		Engine:   merge.NewEngine(merge.WithLogger(o.logger)),
		Renderer: template.NewRenderer(),
		Git:      o.git,
		Logger:   o.logger,
		Version:  o.version,
	}

	report := &Report{Root: w.Root(), Stages: make([]StageReport, 0, len(o.stages))}
	for i, s := range o.stages {
		if err := ctx.Err(); err != nil {
			return report, &StageError{Stage: s.Name(), Err: err}
		}
		if o.progress != nil {
			o.progress(s.Name(), i, len(o.stages))
		}

		start := time.Now()
		res, err := s.Apply(ctx, env)
		if err != nil {
			o.logger.Debug("stage failed", "stage", s.Name(), "error", err)
			return report, &StageError{Stage: s.Name(), Err: err}
		}
		elapsed := time.Since(start)

		switch r := res.(type) {
		case Applied:
			o.logger.Debug("stage applied", "stage", s.Name(), "changes", len(r.Changes), "elapsed", elapsed)
		case Skipped:
			o.logger.Debug("stage skipped", "stage", s.Name(), "reason", r.Reason)
		}
		report.Stages = append(report.Stages, StageReport{Name: s.Name(), Result: res, Duration: elapsed})
	}

	o.logger.Info("project generated", "root", report.Root, "files", len(report.Changes()))
	return report, nil
}
