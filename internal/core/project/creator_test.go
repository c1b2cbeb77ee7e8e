package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/pipeline"
	"github.com/modu-ai/stackgen/pkg/models"
)

func minimalConfig(name string) models.ProjectConfig {
	return models.ProjectConfig{
		ProjectName:    name,
		Frontend:       []models.Frontend{models.FrontendWeb},
		Backend:        models.BackendHono,
		Runtime:        models.RuntimeBun,
		Database:       models.DatabaseNone,
		ORM:            models.ORMNone,
		Auth:           models.AuthNone,
		PackageManager: models.PackageManagerBun,
	}
}

func TestCreate_GeneratesIntoNewDirectory(t *testing.T) {
	parent := t.TempDir()

	res, err := NewCreator(nil).Create(context.Background(), minimalConfig("my-app"), CreateOptions{Parent: parent})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := filepath.Join(parent, "my-app")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if !filepath.IsAbs(res.Path) {
		t.Errorf("Path %q is not absolute", res.Path)
	}
	for _, f := range []string{defs.PackageJSON, defs.ReadmeMD, filepath.Join(defs.ServerApp, defs.PackageJSON)} {
		if _, err := os.Stat(filepath.Join(res.Path, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
	if res.Report == nil || len(res.Report.Stages) != len(pipeline.DefaultStages()) {
		t.Error("report should cover every stage")
	}
	if res.Config.Turso == nil {
		t.Error("result should carry the normalized configuration")
	}
}

func TestCreate_EmptyExistingDirectory(t *testing.T) {
	parent := t.TempDir()
	if err := os.Mkdir(filepath.Join(parent, "my-app"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCreator(nil).Create(context.Background(), minimalConfig("my-app"), CreateOptions{Parent: parent}); err != nil {
		t.Fatalf("an empty target directory should be reused: %v", err)
	}
}

func TestCreate_NonEmptyDirectory(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "my-app")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewCreator(nil).Create(context.Background(), minimalConfig("my-app"), CreateOptions{Parent: parent})
	if !errors.Is(err, ErrProjectExists) {
		t.Fatalf("error = %v, want ErrProjectExists", err)
	}
	if _, err := os.Stat(filepath.Join(dir, defs.PackageJSON)); !os.IsNotExist(err) {
		t.Error("nothing should be written into an existing project")
	}
}

func TestCreate_InvalidConfigTouchesNothing(t *testing.T) {
	parent := t.TempDir()
	cfg := minimalConfig("my-app")
	cfg.ORM = models.ORMPrisma

	_, err := NewCreator(nil).Create(context.Background(), cfg, CreateOptions{Parent: parent})
	var ve *config.ValidationError
	if !errors.As(err, &ve) || ve.Field != "database" {
		t.Fatalf("error = %v, want ValidationError on database", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "my-app")); !os.IsNotExist(err) {
		t.Error("validation failure must not create the project directory")
	}
}

func TestCreate_ParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewCreator(nil).Create(context.Background(), minimalConfig("my-app"), CreateOptions{Parent: file})
	if !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("error = %v, want ErrInvalidRoot", err)
	}
}

func TestCreate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parent := t.TempDir()
	_, err := NewCreator(nil).Create(ctx, minimalConfig("my-app"), CreateOptions{Parent: parent})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
