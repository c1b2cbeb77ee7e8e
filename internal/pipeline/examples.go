package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/pkg/models"
)

// examplesStage applies each example's server fragment and, per selected
// frontend, its client fragment.
func examplesStage() Stage {
	return &stage{
		name:    StageExamples,
		applies: func(cfg models.ProjectConfig) bool { return len(cfg.Examples) > 0 },
		skip:    "no examples selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change
			for _, ex := range env.Config.Examples {
				opts := []string{string(ex)}
				if env.Config.HasFrontend(models.FrontendWeb) {
					opts = append(opts, string(ex)+"-web")
				}
				if env.Config.HasFrontend(models.FrontendNative) {
					opts = append(opts, string(ex)+"-native")
				}
				for _, opt := range opts {
					changes, err := env.applyFragment(template.StageExamples, opt)
					if err != nil {
						return nil, err
					}
					all = append(all, changes...)
				}
			}
			return Applied{Changes: all}, nil
		},
	}
}
