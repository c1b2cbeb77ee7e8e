package pipeline

import (
	"context"

	"github.com/modu-ai/stackgen/internal/template"
)

func backendFrameworkStage() Stage {
	return &stage{
		name:    StageBackendFramework,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			changes, err := env.applyFragment(template.StageBackendFramework, string(env.Config.Backend))
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}

// backendDependenciesStage adds the framework packages first, then the
// runtime packages.
func backendDependenciesStage() Stage {
	return &stage{
		name:    StageBackendDependencies,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			framework, err := env.applyFragment(template.StageBackendDependencies, string(env.Config.Backend))
			if err != nil {
				return nil, err
			}
			runtime, err := env.applyFragment(template.StageBackendDependencies, "runtime-"+string(env.Config.Runtime))
			if err != nil {
				return nil, err
			}
			return Applied{Changes: append(framework, runtime...)}, nil
		},
	}
}

// runtimeOption names the runtime fragment for a runtime and backend pair,
// such as "node-hono".
func runtimeOption(runtime, backend string) string {
	return runtime + "-" + backend
}

func runtimeStage() Stage {
	return &stage{
		name:    StageRuntime,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			opt := runtimeOption(string(env.Config.Runtime), string(env.Config.Backend))
			changes, err := env.applyFragment(template.StageRuntime, opt)
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}
