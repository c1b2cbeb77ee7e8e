package pipeline

import (
	"context"
	"fmt"
	"path"

	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/pkg/models"
)

func baseStage() Stage {
	return &stage{
		name:    StageBase,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			changes, err := env.applyFragment(template.StageBase, "default")
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}

func frontendStage() Stage {
	return &stage{
		name:    StageFrontend,
		applies: models.ProjectConfig.HasAnyFrontend,
		skip:    "no frontend selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change
			for _, f := range env.Config.Frontend {
				changes, err := env.applyFragment(template.StageFrontend, string(f))
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}

// gitignoreStage folds every _gitignore written so far into the sibling
// .gitignore. Fragments applied after it ship .gitignore directly.
func gitignoreStage() Stage {
	return &stage{
		name:    StageGitignore,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			sources, err := filesNamed(env.FS, defs.GitIgnoreTemplate)
			if err != nil {
				return nil, err
			}
			if len(sources) == 0 {
				return Skipped{Reason: "no ignore templates in tree"}, nil
			}

			var all []merge.Change
			for _, src := range sources {
				content, err := env.FS.ReadFile(src)
				if err != nil {
					return nil, err
				}
				changes, err := env.applyPatch(&merge.Patch{
					ID: StageGitignore,
					Files: []merge.File{{
						Path:     path.Join(path.Dir(src), defs.GitIgnore),
						Content:  content,
						Strategy: merge.LineUnion,
					}},
				})
				if err != nil {
					return nil, err
				}
				if err := env.FS.Remove(src); err != nil {
					return nil, fmt.Errorf("remove %s: %w", src, err)
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}
