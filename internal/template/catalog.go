package template

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/stackgen/internal/merge"
)

// CatalogFile is the name of the catalog at the root of a template tree.
const CatalogFile = "catalog.yaml"

type catalogDoc struct {
	Fragments []catalogEntry `yaml:"fragments"`
}

// catalogEntry describes one fragment. Exactly one of Source (a directory
// in the template tree) or Files (inline content) is set.
type catalogEntry struct {
	ID           string        `yaml:"id"`
	Stage        string        `yaml:"stage"`
	Option       string        `yaml:"option"`
	Target       string        `yaml:"target"`
	Source       string        `yaml:"source"`
	Strategy     string        `yaml:"strategy"`
	SkipExisting bool          `yaml:"skip_existing"`
	Files        []catalogFile `yaml:"files"`
}

type catalogFile struct {
	Path     string `yaml:"path"`
	Content  string `yaml:"content"`
	Strategy string `yaml:"strategy"`
	Mode     string `yaml:"mode"`
}

func parseCatalog(data []byte) ([]catalogEntry, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return doc.Fragments, nil
}

// buildFragment validates e and loads its files from fsys.
func buildFragment(fsys fs.FS, e catalogEntry) (*Fragment, error) {
	stage := StageKind(e.Stage)
	switch {
	case e.ID == "":
		return nil, fmt.Errorf("%w: fragment without id", ErrInvalidCatalog)
	case !stage.IsValid():
		return nil, fmt.Errorf("%w: %s: unknown stage %q", ErrInvalidCatalog, e.ID, e.Stage)
	case e.Option == "":
		return nil, fmt.Errorf("%w: %s: missing option", ErrInvalidCatalog, e.ID)
	case (e.Source == "") == (len(e.Files) == 0):
		return nil, fmt.Errorf("%w: %s: exactly one of source or files is required", ErrInvalidCatalog, e.ID)
	}

	strategy, err := merge.ParseStrategy(e.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, e.ID, err)
	}

	f := &Fragment{
		ID:           e.ID,
		Stage:        stage,
		Option:       e.Option,
		Target:       e.Target,
		Strategy:     strategy,
		SkipExisting: e.SkipExisting,
	}

	if e.Source != "" {
		f.Files, err = loadSource(fsys, e.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.ID, err)
		}
		return f, nil
	}

	for _, cf := range e.Files {
		file, err := inlineFile(cf)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, e.ID, err)
		}
		f.Files = append(f.Files, file)
	}
	return f, nil
}

func inlineFile(cf catalogFile) (File, error) {
	if cf.Path == "" {
		return File{}, fmt.Errorf("inline file without path")
	}
	strategy, err := merge.ParseStrategy(cf.Strategy)
	if err != nil {
		return File{}, err
	}
	var mode fs.FileMode
	if cf.Mode != "" {
		m, err := strconv.ParseUint(cf.Mode, 8, 32)
		if err != nil {
			return File{}, fmt.Errorf("mode %q: %v", cf.Mode, err)
		}
		mode = fs.FileMode(m)
	}
	return File{
		Path:     cf.Path,
		Content:  []byte(cf.Content),
		Strategy: strategy,
		Mode:     mode,
		Template: true,
	}, nil
}

// loadSource reads every file below dir. Paths are relative to dir and
// returned in lexical order.
func loadSource(fsys fs.FS, dir string) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, dir+"/")
		files = append(files, File{
			Path:     rel,
			Content:  data,
			Template: strings.HasSuffix(rel, templateSuffix),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", ErrTemplateNotFound, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: source %s is empty", ErrInvalidCatalog, dir)
	}
	return files, nil
}
