package pipeline

import (
	"context"
	"fmt"
	"path"

	"github.com/joho/godotenv"

	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/pkg/models"
)

// endpointVars returns the variables linking apps to each other, keyed by
// app directory.
func endpointVars(cfg models.ProjectConfig) map[string]map[string]string {
	vars := map[string]map[string]string{
		defs.ServerApp: {"CORS_ORIGIN": template.WebURL},
	}
	if cfg.HasFrontend(models.FrontendWeb) {
		vars[defs.WebApp] = map[string]string{"VITE_SERVER_URL": template.ServerURL}
	}
	if cfg.HasFrontend(models.FrontendNative) {
		vars[defs.NativeApp] = map[string]string{"EXPO_PUBLIC_SERVER_URL": template.ServerURL}
	}
	return vars
}

// environmentVariablesStage writes endpoint variables into each app's .env,
// then writes a sibling .env.example for every .env in the tree listing its
// keys with empty values.
func environmentVariablesStage() Stage {
	return &stage{
		name:    StageEnvironmentVariables,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change

			vars := endpointVars(env.Config)
			for _, dir := range sortedKeys(vars) {
				changes, err := env.appendEnv(StageEnvironmentVariables, dir, vars[dir])
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}

			envFiles, err := filesNamed(env.FS, defs.EnvFile)
			if err != nil {
				return nil, err
			}
			for _, name := range envFiles {
				data, err := env.FS.ReadFile(name)
				if err != nil {
					return nil, err
				}
				parsed, err := godotenv.Unmarshal(string(data))
				if err != nil {
					return nil, fmt.Errorf("parse %s: %w", name, err)
				}
				keys := make(map[string]string, len(parsed))
				for k := range parsed {
					keys[k] = ""
				}
				changes, err := env.applyPatch(&merge.Patch{
					ID: StageEnvironmentVariables,
					Files: []merge.File{{
						Path:     path.Join(path.Dir(name), defs.EnvExample),
						Content:  envBlock(keys),
						Strategy: merge.Overwrite,
					}},
				})
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}
