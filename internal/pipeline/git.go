package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/pkg/models"
)

// gitStage records the root commit. It changes no file in the tree.
func gitStage() Stage {
	return &stage{
		name:    StageGit,
		applies: func(cfg models.ProjectConfig) bool { return cfg.Git },
		skip:    "git disabled",
		run: func(ctx context.Context, env *Env) (StageResult, error) {
			if err := env.Git.Init(ctx, env.FS.Root()); err != nil {
				return nil, err
			}
			return Applied{}, nil
		},
	}
}
