package pipeline

import (
	"context"
	"path"

	"github.com/tidwall/gjson"

	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/template"
)

// scanApps lists the workspace packages under apps/.
func scanApps(env *Env) ([]template.AppInfo, error) {
	manifests, err := appManifests(env)
	if err != nil {
		return nil, err
	}
	apps := make([]template.AppInfo, 0, len(manifests))
	for _, m := range manifests {
		data, err := env.FS.ReadFile(m)
		if err != nil {
			return nil, err
		}
		apps = append(apps, template.AppInfo{
			Dir:  path.Dir(m),
			Name: gjson.GetBytes(data, "name").String(),
		})
	}
	return apps, nil
}

// scanScripts lists the root scripts in manifest order.
func scanScripts(env *Env) ([]template.ScriptInfo, error) {
	data, err := env.FS.ReadFile(defs.PackageJSON)
	if err != nil {
		return nil, err
	}
	var scripts []template.ScriptInfo
	gjson.GetBytes(data, "scripts").ForEach(func(key, value gjson.Result) bool {
		scripts = append(scripts, template.ScriptInfo{Name: key.String(), Command: value.String()})
		return true
	})
	return scripts, nil
}

func readmeStage() Stage {
	return &stage{
		name:    StageReadme,
		applies: always,
		run: func(_ context.Context, env *Env) (StageResult, error) {
			apps, err := scanApps(env)
			if err != nil {
				return nil, err
			}
			scripts, err := scanScripts(env)
			if err != nil {
				return nil, err
			}
			tc := template.NewTemplateContext(env.Config,
				template.WithVersion(env.Version),
				template.WithApps(apps),
				template.WithScripts(scripts),
			)
			changes, err := env.applyFragmentWith(template.StageReadme, "default", tc)
			if err != nil {
				return nil, err
			}
			return Applied{Changes: changes}, nil
		},
	}
}
