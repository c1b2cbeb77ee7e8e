package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/pkg/models"
)

// forwardedScript is the root command for an app script.
const forwardedScript = "turbo -F %s %s"

// packageManagerVersions pins the packageManager field written for
// package managers that read it.
var packageManagerVersions = map[models.PackageManager]string{
	models.PackageManagerPNPM: "pnpm@9.15.1",
	models.PackageManagerBun:  "bun@1.1.42",
}

// persistentTasks are long-running forwarded scripts.
var persistentTasks = map[string]bool{
	"db:studio":   true,
	"db:local":    true,
	"desktop:dev": true,
}

// forwardScript reports whether an app script is exposed at the root.
func forwardScript(name string) bool {
	return strings.HasPrefix(name, "db:") || strings.HasPrefix(name, "desktop:") || name == "check"
}

// escapePath escapes a key for use as one gjson/sjson path component.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', ':', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// indentJSON re-indents data with two spaces and a trailing newline.
func indentJSON(data []byte) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// appManifests returns apps/<name>/package.json paths in lexical order.
func appManifests(env *Env) ([]string, error) {
	all, err := env.FS.Files()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		parts := strings.Split(f, "/")
		if len(parts) == 3 && parts[0] == defs.AppsDir && parts[2] == defs.PackageJSON {
			out = append(out, f)
		}
	}
	return out, nil
}

// packageConfigurationStage rewrites the root manifest after every other
// content stage: project name, packageManager, scripts forwarded from apps
// and the matching turbo tasks. Key order of the existing documents is kept.
func packageConfigurationStage() Stage {
	return &stage{
		name:    StagePackageConfiguration,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			root, err := env.FS.ReadFile(defs.PackageJSON)
			if err != nil {
				return nil, err
			}
			turbo, err := env.FS.ReadFile(defs.TurboJSON)
			if err != nil {
				return nil, err
			}

			if root, err = sjson.SetBytes(root, "name", env.Config.ProjectName); err != nil {
				return nil, err
			}
			if v, ok := packageManagerVersions[env.Config.PackageManager]; ok {
				if root, err = sjson.SetBytes(root, "packageManager", v); err != nil {
					return nil, err
				}
			}

			manifests, err := appManifests(env)
			if err != nil {
				return nil, err
			}
			for _, m := range manifests {
				data, err := env.FS.ReadFile(m)
				if err != nil {
					return nil, err
				}
				app := gjson.GetBytes(data, "name").String()
				if app == "" {
					app = path.Base(path.Dir(m))
				}

				var setErr error
				gjson.GetBytes(data, "scripts").ForEach(func(key, _ gjson.Result) bool {
					name := key.String()
					if !forwardScript(name) {
						return true
					}
					scriptPath := "scripts." + escapePath(name)
					if !gjson.GetBytes(root, scriptPath).Exists() {
						if root, setErr = sjson.SetBytes(root, scriptPath, fmt.Sprintf(forwardedScript, app, name)); setErr != nil {
							return false
						}
					}
					taskPath := "tasks." + escapePath(name)
					if !gjson.GetBytes(turbo, taskPath).Exists() {
						task := map[string]bool{"cache": false}
						if persistentTasks[name] {
							task["persistent"] = true
						}
						raw, _ := json.Marshal(task)
						if turbo, setErr = sjson.SetRawBytes(turbo, taskPath, raw); setErr != nil {
							return false
						}
					}
					return true
				})
				if setErr != nil {
					return nil, fmt.Errorf("forward scripts of %s: %w", m, setErr)
				}
			}

			files := []merge.File{}
			if env.Config.PackageManager == models.PackageManagerPNPM {
				ws, err := pnpmWorkspace(root)
				if err != nil {
					return nil, err
				}
				files = append(files, merge.File{Path: defs.PnpmWorkspaceYAML, Content: ws})
				if root, err = sjson.DeleteBytes(root, "workspaces"); err != nil {
					return nil, err
				}
			}

			if root, err = indentJSON(root); err != nil {
				return nil, fmt.Errorf("%s: %w", defs.PackageJSON, err)
			}
			if turbo, err = indentJSON(turbo); err != nil {
				return nil, fmt.Errorf("%s: %w", defs.TurboJSON, err)
			}
			files = append(files,
				merge.File{Path: defs.PackageJSON, Content: root},
				merge.File{Path: defs.TurboJSON, Content: turbo},
			)

			changes, err := env.applyPatch(&merge.Patch{
				ID:       StagePackageConfiguration,
				Strategy: merge.Overwrite,
				Files:    files,
			})
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}

// pnpmWorkspace renders pnpm-workspace.yaml from the manifest's workspaces.
func pnpmWorkspace(root []byte) ([]byte, error) {
	doc := struct {
		Packages []string `yaml:"packages"`
	}{}
	for _, p := range gjson.GetBytes(root, "workspaces").Array() {
		doc.Packages = append(doc.Packages, p.String())
	}
	return yaml.Marshal(doc)
}
