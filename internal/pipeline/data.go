package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/pkg/models"
)

func ormTemplateStage() Stage {
	return &stage{
		name:    StageORMTemplate,
		applies: func(cfg models.ProjectConfig) bool { return cfg.ORM != models.ORMNone },
		skip:    "no orm selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			changes, err := env.applyFragment(template.StageORM, string(env.Config.ORM))
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}

// databaseOptions lists the database fragments for cfg in order: driver and
// connection string, connection module, then the local Turso bootstrap.
func databaseOptions(cfg models.ProjectConfig) []string {
	db := string(cfg.Database)
	opts := []string{db, db + "-client"}
	if cfg.UsesTurso() {
		opts = append(opts, "sqlite-turso")
	}
	return opts
}

// databaseStage runs after the orm stage. The connection module fragment
// skips files that already exist, so an orm-provided client is kept.
func databaseStage() Stage {
	return &stage{
		name:    StageDatabase,
		applies: func(cfg models.ProjectConfig) bool { return cfg.Database != models.DatabaseNone },
		skip:    "no database selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change
			for _, opt := range databaseOptions(env.Config) {
				changes, err := env.applyFragment(template.StageDatabase, opt)
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}
