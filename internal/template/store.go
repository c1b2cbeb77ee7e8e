package template

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed all:templates
var embedded embed.FS

type fragmentKey struct {
	stage  StageKind
	option string
}

// Store indexes fragments by (stage, option). It is immutable after
// construction and safe for concurrent use.
type Store struct {
	byKey map[fragmentKey]*Fragment
	order []*Fragment
}

// NewStore loads the catalog at the root of fsys. In production fsys is
// the embedded template tree; tests use testing/fstest.MapFS.
func NewStore(fsys fs.FS) (*Store, error) {
	data, err := fs.ReadFile(fsys, CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, CatalogFile)
	}
	entries, err := parseCatalog(data)
	if err != nil {
		return nil, err
	}

	s := &Store{byKey: make(map[fragmentKey]*Fragment, len(entries))}
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		f, err := buildFragment(fsys, e)
		if err != nil {
			return nil, err
		}
		if ids[f.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, f.ID)
		}
		key := fragmentKey{f.Stage, f.Option}
		if _, dup := s.byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate fragment for %s/%s", ErrInvalidCatalog, f.Stage, f.Option)
		}
		ids[f.ID] = true
		s.byKey[key] = f
		s.order = append(s.order, f)
	}
	return s, nil
}

// Resolve returns the fragment for stage and option, or a
// *FragmentResolutionError.
func (s *Store) Resolve(stage StageKind, option string) (*Fragment, error) {
	f, ok := s.byKey[fragmentKey{stage, option}]
	if !ok {
		return nil, &FragmentResolutionError{Stage: stage, Option: option}
	}
	return f, nil
}

// Has reports whether a fragment exists for stage and option.
func (s *Store) Has(stage StageKind, option string) bool {
	_, ok := s.byKey[fragmentKey{stage, option}]
	return ok
}

// Fragments returns all fragments in catalog order.
func (s *Store) Fragments() []*Fragment {
	out := make([]*Fragment, len(s.order))
	copy(out, s.order)
	return out
}

var defaultStore struct {
	once  sync.Once
	store *Store
	err   error
}

// @MX:NOTE: [AUTO] The embedded catalog is parsed once per process; later calls share the result.
// DefaultStore returns the store built from the embedded template tree.
func DefaultStore() (*Store, error) {
	defaultStore.once.Do(func() {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			defaultStore.err = err
			return
		}
		defaultStore.store, defaultStore.err = NewStore(sub)
	})
	return defaultStore.store, defaultStore.err
}
