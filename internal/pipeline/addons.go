package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/pkg/models"
)

// addonsStage applies each addon independently, in selection order.
func addonsStage() Stage {
	return &stage{
		name:    StageAddons,
		applies: func(cfg models.ProjectConfig) bool { return len(cfg.Addons) > 0 },
		skip:    "no addons selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change
			for _, a := range env.Config.Addons {
				changes, err := env.applyFragment(template.StageAddons, string(a))
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}
