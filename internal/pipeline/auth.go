package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/internal/workspace"
	"github.com/modu-ai/stackgen/pkg/models"
)

func hasAuth(cfg models.ProjectConfig) bool { return cfg.Auth != models.AuthNone }

// authTemplateStage writes server auth files, then client files for each
// selected frontend.
func authTemplateStage() Stage {
	return &stage{
		name:    StageAuthTemplate,
		applies: hasAuth,
		skip:    "no auth provider selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			auth := string(env.Config.Auth)
			opts := []string{auth}
			if env.Config.HasFrontend(models.FrontendWeb) {
				opts = append(opts, auth+"-web")
			}
			if env.Config.HasFrontend(models.FrontendNative) {
				opts = append(opts, auth+"-native")
			}

			var all []merge.Change
			for _, opt := range opts {
				changes, err := env.applyFragment(template.StageAuthTemplate, opt)
				if err != nil {
					return nil, err
				}
				all = append(all, changes...)
			}
			return Applied{Changes: all}, nil
		},
	}
}

// authFiles are the module names the auth templates produce.
var authFiles = []string{"auth.ts", "auth-client.ts"}

// authDependencies returns the packages an app needs for auth. app is the
// directory base name: server, web or native.
func authDependencies(cfg models.ProjectConfig, app string) map[string]string {
	native := cfg.HasFrontend(models.FrontendNative)
	switch cfg.Auth {
	case models.AuthBetterAuth:
		switch app {
		case "server":
			deps := map[string]string{"better-auth": "^1.1.10"}
			if native {
				deps["@better-auth/expo"] = "^1.1.10"
			}
			return deps
		case "web":
			return map[string]string{"better-auth": "^1.1.10"}
		case "native":
			return map[string]string{
				"better-auth":       "^1.1.10",
				"@better-auth/expo": "^1.1.10",
				"expo-secure-store": "~14.0.0",
			}
		}
	case models.AuthClerk:
		switch app {
		case "server":
			if cfg.Backend == models.BackendExpress {
				return map[string]string{"@clerk/express": "^1.3.31"}
			}
			return map[string]string{"@hono/clerk-auth": "^2.0.0", "@clerk/backend": "^1.21.4"}
		case "web":
			return map[string]string{"@clerk/clerk-react": "^5.20.2"}
		case "native":
			return map[string]string{"@clerk/clerk-expo": "^2.6.4"}
		}
	}
	return nil
}

// authSecrets returns the environment variables an app needs for auth.
// Secret values are placeholders to be replaced by the user.
func authSecrets(cfg models.ProjectConfig, app string) map[string]string {
	switch {
	case cfg.Auth == models.AuthBetterAuth && app == "server":
		return map[string]string{
			"BETTER_AUTH_SECRET": "change-me-to-a-random-32-character-string",
			"BETTER_AUTH_URL":    template.ServerURL,
		}
	case cfg.Auth == models.AuthClerk && app == "server":
		return map[string]string{
			"CLERK_SECRET_KEY":      "",
			"CLERK_PUBLISHABLE_KEY": "",
		}
	case cfg.Auth == models.AuthClerk && app == "web":
		return map[string]string{"VITE_CLERK_PUBLISHABLE_KEY": ""}
	case cfg.Auth == models.AuthClerk && app == "native":
		return map[string]string{"EXPO_PUBLIC_CLERK_PUBLISHABLE_KEY": ""}
	}
	return nil
}

// hasAuthFiles reports whether the auth templates wrote a module under dir.
func hasAuthFiles(w workspace.FS, dir string) (bool, error) {
	files, err := workspace.FilesUnder(w, dir)
	if err != nil {
		return false, err
	}
	for _, f := range files {
		base := path.Base(f)
		for _, name := range authFiles {
			if base == name {
				return true, nil
			}
		}
	}
	return false, nil
}

// authStage wires packages whose auth modules were produced by the
// auth-template stage: dependencies in package.json, secrets in .env.
func authStage() Stage {
	return &stage{
		name:    StageAuth,
		applies: hasAuth,
		skip:    "no auth provider selected",
		run: func(_ context.Context, env *Env) (StageResult, error) {
			var all []merge.Change
			for _, dir := range appDirs(env.Config) {
				ok, err := hasAuthFiles(env.FS, dir)
				if err != nil {
					return nil, err
				}
				if !ok {
					env.Logger.Debug("no auth module found", "dir", dir)
					continue
				}
				app := path.Base(dir)
				id := fmt.Sprintf("auth-%s-%s", env.Config.Auth, app)

				if deps := authDependencies(env.Config, app); len(deps) > 0 {
					manifest, err := json.Marshal(map[string]any{"dependencies": deps})
					if err != nil {
						return nil, err
					}
					changes, err := env.applyPatch(&merge.Patch{
						ID:    id,
						Files: []merge.File{{Path: dir + "/package.json", Content: manifest, Strategy: merge.JSONMerge}},
					})
					if err != nil {
						return nil, err
					}
					all = append(all, changes...)
				}

				if secrets := authSecrets(env.Config, app); len(secrets) > 0 {
					changes, err := env.appendEnv(id, dir, secrets)
					if err != nil {
						return nil, err
					}
					all = append(all, changes...)
				}
				env.Logger.Debug("auth wired", "dir", dir, "provider", env.Config.Auth)
			}
			return Applied{Changes: all}, nil
		},
	}
}
