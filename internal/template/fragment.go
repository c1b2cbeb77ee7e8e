package template

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/modu-ai/stackgen/internal/merge"
)

// StageKind groups fragments by the pipeline stage that requests them.
type StageKind string

// Catalog stage kinds.
const (
	StageBase                StageKind = "base"
	StageFrontend            StageKind = "frontend"
	StageBackendFramework    StageKind = "backend-framework"
	StageBackendDependencies StageKind = "backend-dependencies"
	StageORM                 StageKind = "orm"
	StageDatabase            StageKind = "database"
	StageAuthTemplate        StageKind = "auth-template"
	StageRuntime             StageKind = "runtime"
	StageExamples            StageKind = "examples"
	StageAddons              StageKind = "addons"
	StageReadme              StageKind = "readme"
)

// StageKinds returns every catalog stage kind.
func StageKinds() []StageKind {
	return []StageKind{
		StageBase, StageFrontend, StageBackendFramework, StageBackendDependencies,
		StageORM, StageDatabase, StageAuthTemplate, StageRuntime,
		StageExamples, StageAddons, StageReadme,
	}
}

// IsValid reports whether k is a known stage kind.
func (k StageKind) IsValid() bool {
	return slices.Contains(StageKinds(), k)
}

// templateSuffix marks files rendered with the template context.
const templateSuffix = ".tmpl"

// File is one file of a fragment. Path is relative to the fragment target.
type File struct {
	Path     string
	Content  []byte
	Strategy merge.Strategy
	Mode     fs.FileMode
	// Template is set for inline files and files ending in .tmpl.
	Template bool
}

// Fragment is a named unit of template content for one (stage, option).
// Fragments are read-only once the store is built.
type Fragment struct {
	ID           string
	Stage        StageKind
	Option       string
	Target       string
	Strategy     merge.Strategy
	SkipExisting bool
	Files        []File
}

// Render executes the fragment's template files against tc and returns a
// patch with paths joined to the fragment target.
func (f *Fragment) Render(r Renderer, tc *TemplateContext) (*merge.Patch, error) {
	p := &merge.Patch{
		ID:           f.ID,
		Strategy:     f.Strategy,
		SkipExisting: f.SkipExisting,
		Files:        make([]merge.File, 0, len(f.Files)),
	}

	for _, file := range f.Files {
		name := file.Path
		content := file.Content
		if file.Template {
			rendered, err := r.Render(f.ID+"/"+name, content, tc)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", name, err)
			}
			content = rendered
			name = strings.TrimSuffix(name, templateSuffix)
		}
		p.Files = append(p.Files, merge.File{
			Path:     path.Join(f.Target, name),
			Content:  content,
			Strategy: file.Strategy,
			Mode:     file.Mode,
		})
	}
	return p, nil
}

// Paths returns the destination paths of the fragment, relative to the
// project root.
func (f *Fragment) Paths() []string {
	out := make([]string, len(f.Files))
	for i, file := range f.Files {
		name := file.Path
		if file.Template {
			name = strings.TrimSuffix(name, templateSuffix)
		}
		out[i] = path.Join(f.Target, name)
	}
	return out
}
