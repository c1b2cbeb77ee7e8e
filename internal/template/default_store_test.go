package template

import (
	"testing"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/pkg/models"
)

func TestDefaultStore_Loads(t *testing.T) {
	t.Parallel()

	s, err := DefaultStore()
	if err != nil {
		t.Fatalf("DefaultStore() error = %v", err)
	}
	again, _ := DefaultStore()
	if s != again {
		t.Error("DefaultStore() should return the same instance")
	}

	for _, key := range []struct {
		stage  StageKind
		option string
	}{
		{StageBase, "default"},
		{StageFrontend, "web"},
		{StageBackendFramework, "next"},
		{StageORM, "prisma"},
		{StageDatabase, "sqlite-turso"},
		{StageRuntime, "workers-hono"},
		{StageReadme, "default"},
	} {
		if !s.Has(key.stage, key.option) {
			t.Errorf("embedded catalog lacks %s/%s", key.stage, key.option)
		}
	}

	readme, err := s.Resolve(StageReadme, "default")
	if err != nil {
		t.Fatal(err)
	}
	if readme.Strategy != "overwrite" {
		t.Errorf("readme strategy = %q, want overwrite", readme.Strategy)
	}
}

// TestDefaultStore_RendersForValidConfigs renders every embedded fragment
// against a spread of valid configurations so that a template referencing
// an unknown field fails here rather than during generation.
func TestDefaultStore_RendersForValidConfigs(t *testing.T) {
	if testing.Short() {
		t.Skip("renders the whole catalog many times")
	}
	t.Parallel()

	s, err := DefaultStore()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer()

	frontends := [][]models.Frontend{
		{},
		{models.FrontendWeb, models.FrontendNative},
	}
	n := 0
	for _, fe := range frontends {
		for _, backend := range models.ValidBackends() {
			for _, runtime := range models.ValidRuntimes() {
				for _, db := range models.ValidDatabases() {
					for _, orm := range models.ValidORMs() {
						for _, auth := range models.ValidAuths() {
							raw := models.ProjectConfig{
								ProjectName:    "render-check",
								Frontend:       fe,
								Backend:        backend,
								Runtime:        runtime,
								Database:       db,
								ORM:            orm,
								Auth:           auth,
								PackageManager: models.ValidPackageManagers()[n%3],
								Addons:         []models.Addon{models.AddonHusky},
							}
							if n%2 == 0 {
								raw.Addons = append(raw.Addons, models.AddonBiome)
							}
							if len(fe) > 0 {
								raw.Addons = append(raw.Addons, models.AddonPWA, models.AddonTauri)
							}
							if orm != models.ORMNone {
								raw.Examples = append(raw.Examples, models.ExampleTodo)
							}
							if runtime != models.RuntimeWorkers {
								raw.Examples = append(raw.Examples, models.ExampleAI)
							}
							n++

							cfg, err := config.Validate(raw)
							if err != nil {
								continue
							}
							tc := NewTemplateContext(cfg, WithVersion("test"))
							for _, f := range s.Fragments() {
								if _, err := f.Render(r, tc); err != nil {
									t.Fatalf("%s with %+v: %v", f.ID, cfg, err)
								}
							}
						}
					}
				}
			}
		}
	}
}
