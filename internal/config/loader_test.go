package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/modu-ai/stackgen/pkg/models"
)

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	l := NewLoader()
	d, err := l.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !d.Git {
		t.Error("git should default to true")
	}
	if !slices.Equal(d.Frontend, []string{"web"}) {
		t.Errorf("Frontend = %v, want [web]", d.Frontend)
	}
}

func TestLoader_LogsMissingFileThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := NewLoader(WithLogger(logger)).Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "defaults file not found") || !strings.Contains(out, "module=config") {
		t.Errorf("debug log missing from injected logger:\n%s", out)
	}
}

func TestLoader_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend: express
database: postgres
orm: prisma
package_manager: pnpm
addons:
  - biome
  - husky
git: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := d.ProjectConfig()
	if cfg.Backend != models.BackendExpress {
		t.Errorf("Backend = %q, want express", cfg.Backend)
	}
	if cfg.Database != models.DatabasePostgres || cfg.ORM != models.ORMPrisma {
		t.Errorf("database/orm = %q/%q", cfg.Database, cfg.ORM)
	}
	if cfg.PackageManager != models.PackageManagerPNPM {
		t.Errorf("PackageManager = %q, want pnpm", cfg.PackageManager)
	}
	if !slices.Equal(cfg.Addons, []models.Addon{models.AddonBiome, models.AddonHusky}) {
		t.Errorf("Addons = %v", cfg.Addons)
	}
	if cfg.Git {
		t.Error("Git = true, want false from file")
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("runtime: node\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STACKGEN_RUNTIME", "bun")
	t.Setenv("STACKGEN_ADDONS", "biome,pwa")

	d, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := d.ProjectConfig()
	if cfg.Runtime != models.RuntimeBun {
		t.Errorf("Runtime = %q, want bun from env", cfg.Runtime)
	}
	if !slices.Equal(cfg.Addons, []models.Addon{models.AddonBiome, models.AddonPWA}) {
		t.Errorf("Addons = %v, want [biome pwa]", cfg.Addons)
	}
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid preset", func(t *testing.T) {
		path := filepath.Join(dir, "preset.yaml")
		content := `project_name: shop
frontend: [web, native]
backend: hono
database: sqlite
orm: drizzle
examples: [todo]
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadPreset(path)
		if err != nil {
			t.Fatalf("LoadPreset() error = %v", err)
		}
		if cfg.ProjectName != "shop" {
			t.Errorf("ProjectName = %q, want shop", cfg.ProjectName)
		}
		if !slices.Equal(cfg.Frontend, []models.Frontend{models.FrontendWeb, models.FrontendNative}) {
			t.Errorf("Frontend = %v", cfg.Frontend)
		}
		if !cfg.Git {
			t.Error("unset git should keep the default of true")
		}
	})

	t.Run("missing preset", func(t *testing.T) {
		_, err := LoadPreset(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, ErrPresetNotFound) {
			t.Errorf("error = %v, want ErrPresetNotFound", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("frontend: [web\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadPreset(path)
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("error = %v, want ErrInvalidYAML", err)
		}
	})
}
