package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/pkg/models"
)

// Stage names, in pipeline order.
const (
	StageBase                 = "base"
	StageFrontend             = "frontend"
	StageGitignore            = "gitignore"
	StageBackendFramework     = "backend-framework"
	StageBackendDependencies  = "backend-dependencies"
	StageORMTemplate          = "orm-template"
	StageDatabase             = "database"
	StageAuthTemplate         = "auth-template"
	StageAuth                 = "auth"
	StageRuntime              = "runtime"
	StageExamples             = "examples"
	StageEnvironmentVariables = "environment-variables"
	StageGit                  = "git"
	StageAddons               = "addons"
	StagePackageConfiguration = "package-configuration"
	StageReadme               = "readme"
)

// Stage is one ordered step of generation.
type Stage interface {
	// Name identifies the stage in errors and logs.
	Name() string

	// Applies reports whether the stage does anything for cfg. It is pure.
	Applies(cfg models.ProjectConfig) bool

	// Apply runs the stage. A stage that does not apply returns Skipped
	// and leaves the tree untouched.
	Apply(ctx context.Context, env *Env) (StageResult, error)
}

// StageResult is either Applied or Skipped.
type StageResult interface {
	stageResult()
}

// Applied records the file changes a stage made.
type Applied struct {
	Changes []merge.Change
}

// Skipped records why a stage made no change.
type Skipped struct {
	Reason string
}

func (Applied) stageResult() {}
func (Skipped) stageResult() {}

// stage is the Stage implementation shared by every built-in stage.
type stage struct {
	name    string
	applies func(models.ProjectConfig) bool
	skip    string
	run     func(ctx context.Context, env *Env) (StageResult, error)
}

func (s *stage) Name() string { return s.name }

func (s *stage) Applies(cfg models.ProjectConfig) bool {
	return s.applies == nil || s.applies(cfg)
}

func (s *stage) Apply(ctx context.Context, env *Env) (StageResult, error) {
	if !s.Applies(env.Config) {
		return Skipped{Reason: s.skip}, nil
	}
	return s.run(ctx, env)
}

func always(models.ProjectConfig) bool { return true }
