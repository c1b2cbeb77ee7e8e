package config

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/modu-ai/stackgen/pkg/models"
)

// validBase returns a configuration that passes every rule.
func validBase() models.ProjectConfig {
	return models.ProjectConfig{
		ProjectName:    "my-app",
		Frontend:       []models.Frontend{models.FrontendWeb},
		Backend:        models.BackendHono,
		Runtime:        models.RuntimeBun,
		Database:       models.DatabaseSQLite,
		ORM:            models.ORMDrizzle,
		Auth:           models.AuthNone,
		PackageManager: models.PackageManagerBun,
		Git:            true,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Validate(validBase())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.ProjectName != "my-app" {
		t.Errorf("ProjectName = %q, want %q", cfg.ProjectName, "my-app")
	}
}

func TestValidate_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*models.ProjectConfig)
		wantField string
		wantIs    error
	}{
		{
			name:      "empty project name",
			mutate:    func(c *models.ProjectConfig) { c.ProjectName = "  " },
			wantField: "projectName",
		},
		{
			name:      "project name with separator",
			mutate:    func(c *models.ProjectConfig) { c.ProjectName = "apps/web" },
			wantField: "projectName",
		},
		{
			name:      "uppercase project name",
			mutate:    func(c *models.ProjectConfig) { c.ProjectName = "MyApp" },
			wantField: "projectName",
		},
		{
			name:      "unknown frontend",
			mutate:    func(c *models.ProjectConfig) { c.Frontend = []models.Frontend{"desktop"} },
			wantField: "frontend",
		},
		{
			name: "none combined with web",
			mutate: func(c *models.ProjectConfig) {
				c.Frontend = []models.Frontend{models.FrontendNone, models.FrontendWeb}
			},
			wantField: "frontend",
		},
		{
			name:      "unknown backend",
			mutate:    func(c *models.ProjectConfig) { c.Backend = "fastify" },
			wantField: "backend",
		},
		{
			name:      "unknown package manager",
			mutate:    func(c *models.ProjectConfig) { c.PackageManager = "yarn" },
			wantField: "packageManager",
		},
		{
			name: "orm without database",
			mutate: func(c *models.ProjectConfig) {
				c.ORM = models.ORMPrisma
				c.Database = models.DatabaseNone
			},
			wantField: "database",
			wantIs:    ErrIncompatibleOptions,
		},
		{
			name: "clerk on hono",
			mutate: func(c *models.ProjectConfig) {
				c.Auth = models.AuthClerk
			},
			wantField: "auth",
			wantIs:    ErrIncompatibleOptions,
		},
		{
			name: "explicit turso without orm",
			mutate: func(c *models.ProjectConfig) {
				c.ORM = models.ORMNone
				c.Turso = models.BoolPtr(true)
			},
			wantField: "orm",
		},
		{
			name: "turso on postgres",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabasePostgres
				c.Turso = models.BoolPtr(true)
			},
			wantField: "turso",
		},
		{
			name: "native on workers",
			mutate: func(c *models.ProjectConfig) {
				c.Frontend = []models.Frontend{models.FrontendNative}
				c.Runtime = models.RuntimeWorkers
			},
			wantField: "runtime",
		},
		{
			name: "two desktop shells",
			mutate: func(c *models.ProjectConfig) {
				c.Addons = []models.Addon{models.AddonTauri, models.AddonElectron}
			},
			wantField: "addons",
		},
		{
			name: "drizzle on mongodb",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabaseMongoDB
			},
			wantField: "orm",
		},
		{
			name: "express on workers",
			mutate: func(c *models.ProjectConfig) {
				c.Backend = models.BackendExpress
				c.Runtime = models.RuntimeWorkers
			},
			wantField: "runtime",
		},
		{
			name: "tauri without web",
			mutate: func(c *models.ProjectConfig) {
				c.Frontend = []models.Frontend{models.FrontendNative}
				c.Addons = []models.Addon{models.AddonTauri}
			},
			wantField: "addons",
		},
		{
			name: "todo example without orm",
			mutate: func(c *models.ProjectConfig) {
				c.ORM = models.ORMNone
				c.Examples = []models.Example{models.ExampleTodo}
			},
			wantField: "examples",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBase()
			tt.mutate(&cfg)

			_, err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() error = nil, want ValidationError")
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (reason: %s)", ve.Field, tt.wantField, ve.Reason)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("expected errors.Is(err, ErrInvalidConfig)")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected errors.Is(err, %v)", tt.wantIs)
			}
		})
	}
}

func TestValidate_PrismaWithoutDatabaseNamesDatabase(t *testing.T) {
	t.Parallel()

	raw := models.ProjectConfig{
		ProjectName: "app",
		ORM:         models.ORMPrisma,
		Database:    models.DatabaseNone,
	}
	_, err := Validate(raw)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Field != "database" {
		t.Errorf("Field = %q, want database", ve.Field)
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	t.Parallel()

	// Violates orm-requires-database, auth-backend-support and exclusive-addons.
	raw := validBase()
	raw.Database = models.DatabaseNone
	raw.Auth = models.AuthClerk
	raw.Addons = []models.Addon{models.AddonTauri, models.AddonElectron}

	for range 5 {
		_, err := Validate(raw)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if ve.Field != "database" {
			t.Fatalf("Field = %q, want database on every run", ve.Field)
		}
	}
}

func TestValidate_Normalization(t *testing.T) {
	t.Parallel()

	raw := models.ProjectConfig{
		ProjectName: " my-app ",
		Frontend:    []models.Frontend{models.FrontendWeb, models.FrontendNative, models.FrontendWeb},
		Addons:      []models.Addon{models.AddonBiome, models.AddonBiome},
		Database:    models.DatabaseSQLite,
		ORM:         models.ORMDrizzle,
	}

	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.ProjectName != "my-app" {
		t.Errorf("ProjectName = %q, want trimmed name", cfg.ProjectName)
	}
	if !slices.Equal(cfg.Frontend, []models.Frontend{models.FrontendWeb, models.FrontendNative}) {
		t.Errorf("Frontend = %v, want [web native]", cfg.Frontend)
	}
	if !slices.Equal(cfg.Addons, []models.Addon{models.AddonBiome}) {
		t.Errorf("Addons = %v, want [biome]", cfg.Addons)
	}
	if cfg.Examples == nil {
		t.Error("Examples must be normalized to an empty slice")
	}
	if cfg.Backend != DefaultBackend || cfg.Runtime != DefaultRuntime || cfg.Auth != DefaultAuth {
		t.Errorf("defaults not applied: backend=%q runtime=%q auth=%q", cfg.Backend, cfg.Runtime, cfg.Auth)
	}
	if cfg.PackageManager != DefaultPackageManager {
		t.Errorf("PackageManager = %q, want %q", cfg.PackageManager, DefaultPackageManager)
	}
	if !cfg.UsesTurso() {
		t.Error("turso should be implied for sqlite with drizzle")
	}
}

func TestValidate_NoneFrontendNormalizesToEmpty(t *testing.T) {
	t.Parallel()

	raw := models.ProjectConfig{ProjectName: "api", Frontend: []models.Frontend{models.FrontendNone}}
	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Frontend == nil || len(cfg.Frontend) != 0 {
		t.Errorf("Frontend = %#v, want empty non-nil slice", cfg.Frontend)
	}
}

func TestValidate_TursoNotImpliedWithoutORM(t *testing.T) {
	t.Parallel()

	raw := models.ProjectConfig{ProjectName: "app", Database: models.DatabaseSQLite}
	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Turso == nil || *cfg.Turso {
		t.Error("turso must be resolved to false when the orm cannot drive it")
	}
}

func TestValidate_ExplicitTursoFalseKept(t *testing.T) {
	t.Parallel()

	raw := validBase()
	raw.Turso = models.BoolPtr(false)
	cfg, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.UsesTurso() {
		t.Error("explicit turso=false must not be overridden")
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	raw := validBase()
	raw.Frontend = []models.Frontend{models.FrontendNone}
	if _, err := Validate(raw); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(raw.Frontend) != 1 || raw.Frontend[0] != models.FrontendNone {
		t.Errorf("input Frontend mutated: %v", raw.Frontend)
	}
	if raw.Turso != nil {
		t.Error("input Turso mutated")
	}
}

func TestRuleOrder(t *testing.T) {
	t.Parallel()

	order := RuleOrder()
	if order[0] != "project-name" {
		t.Errorf("first rule = %q, want project-name", order[0])
	}
	idx := func(name string) int { return slices.Index(order, name) }
	if !(idx("orm-requires-database") < idx("auth-backend-support") &&
		idx("auth-backend-support") < idx("turso-orm-support") &&
		idx("turso-orm-support") < idx("native-runtime") &&
		idx("native-runtime") < idx("exclusive-addons")) {
		t.Errorf("compatibility rules out of order: %s", strings.Join(order, ", "))
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "orm", Reason: "bad", Value: "x"}
	if got := err.Error(); !strings.Contains(got, `field "orm"`) || !strings.Contains(got, "got: x") {
		t.Errorf("Error() = %q", got)
	}
	noValue := &ValidationError{Field: "orm", Reason: "bad"}
	if strings.Contains(noValue.Error(), "got:") {
		t.Errorf("Error() without value should omit got: %q", noValue.Error())
	}
}
