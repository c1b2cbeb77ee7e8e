package pipeline

import (
	"fmt"
	"log/slog"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/modu-ai/stackgen/internal/core/git"
	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/merge"
	"github.com/modu-ai/stackgen/internal/template"
	"github.com/modu-ai/stackgen/internal/workspace"
	"github.com/modu-ai/stackgen/pkg/models"
)

// Env is the state shared by the stages of one run. Config is read-only.
type Env struct {
	Config   models.ProjectConfig
	FS       workspace.FS
	Store    *template.Store
	Engine   *merge.Engine
	Renderer template.Renderer
	Git      git.Initializer
	Logger   *slog.Logger
	Version  string

	tc *template.TemplateContext
}

func (e *Env) templateContext() *template.TemplateContext {
	if e.tc == nil {
		e.tc = template.NewTemplateContext(e.Config, template.WithVersion(e.Version))
	}
	return e.tc
}

// applyFragment resolves (kind, option), renders it and merges it into the
// tree. A missing fragment is an error.
func (e *Env) applyFragment(kind template.StageKind, option string) ([]merge.Change, error) {
	return e.applyFragmentWith(kind, option, e.templateContext())
}

func (e *Env) applyFragmentWith(kind template.StageKind, option string, tc *template.TemplateContext) ([]merge.Change, error) {
	f, err := e.Store.Resolve(kind, option)
	if err != nil {
		return nil, err
	}
	p, err := f.Render(e.Renderer, tc)
	if err != nil {
		return nil, fmt.Errorf("fragment %s: %w", f.ID, err)
	}
	e.Logger.Debug("applying fragment", "fragment", f.ID, "files", len(p.Files))
	return e.applyPatch(p)
}

func (e *Env) applyPatch(p *merge.Patch) ([]merge.Change, error) {
	res, err := e.Engine.Apply(p, e.FS)
	if err != nil {
		return res.Changes, err
	}
	return res.Changes, nil
}

// envBlock renders vars as dotenv lines in key order.
func envBlock(vars map[string]string) []byte {
	out, _ := godotenv.Marshal(vars)
	return []byte(out + "\n")
}

// appendEnv appends vars to the .env file in dir under the marker id.
func (e *Env) appendEnv(id, dir string, vars map[string]string) ([]merge.Change, error) {
	return e.applyPatch(&merge.Patch{
		ID: id,
		Files: []merge.File{{
			Path:     path.Join(dir, defs.EnvFile),
			Content:  envBlock(vars),
			Strategy: merge.Append,
		}},
	})
}

// appDirs returns the app directories that exist in cfg, server first.
func appDirs(cfg models.ProjectConfig) []string {
	dirs := []string{defs.ServerApp}
	if cfg.HasFrontend(models.FrontendWeb) {
		dirs = append(dirs, defs.WebApp)
	}
	if cfg.HasFrontend(models.FrontendNative) {
		dirs = append(dirs, defs.NativeApp)
	}
	return dirs
}

// filesNamed returns every path in the tree whose base name is name.
func filesNamed(w workspace.FS, name string) ([]string, error) {
	all, err := w.Files()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if f == name || strings.HasSuffix(f, "/"+name) {
			out = append(out, f)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
