package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modu-ai/stackgen/pkg/models"
)

// projectNamePattern follows npm package naming: lowercase, URL-safe, no
// leading dot or underscore.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9~-][a-z0-9._~-]*$`)

// maxProjectNameLength is npm's package name limit.
const maxProjectNameLength = 214

// rule is one named validation step. Rules run in slice order and the first
// failure is reported.
type rule struct {
	name  string
	check func(cfg models.ProjectConfig) *ValidationError
}

// shapeRules validate individual fields before normalization.
var shapeRules = []rule{
	{"project-name", checkProjectName},
	{"frontend-values", checkFrontendValues},
	{"backend-value", checkBackendValue},
	{"runtime-value", checkRuntimeValue},
	{"database-value", checkDatabaseValue},
	{"orm-value", checkORMValue},
	{"auth-value", checkAuthValue},
	{"package-manager-value", checkPackageManagerValue},
	{"addon-values", checkAddonValues},
	{"example-values", checkExampleValues},
}

// compatibilityRules validate combinations on the normalized configuration.
var compatibilityRules = []rule{
	{"orm-requires-database", checkORMRequiresDatabase},
	{"auth-backend-support", checkAuthBackend},
	{"turso-orm-support", checkTurso},
	{"native-runtime", checkNativeRuntime},
	{"exclusive-addons", checkExclusiveAddons},
	{"orm-database-support", checkORMDatabase},
	{"runtime-backend-support", checkRuntimeBackend},
	{"addon-frontend", checkAddonFrontend},
	{"example-requirements", checkExamples},
}

// RuleOrder returns the names of all validation rules in evaluation order.
func RuleOrder() []string {
	names := make([]string, 0, len(shapeRules)+len(compatibilityRules))
	for _, r := range shapeRules {
		names = append(names, r.name)
	}
	for _, r := range compatibilityRules {
		names = append(names, r.name)
	}
	return names
}

// @MX:ANCHOR: [AUTO] Validate is the single gate between user input and the generation pipeline.
// @MX:REASON: [AUTO] fan_in=4, called from cli/create.go, core/project/creator.go and the pipeline tests
// Validate checks raw against every rule and returns the normalized
// configuration. On failure it returns a *ValidationError naming the first
// violated field. It performs no I/O.
func Validate(raw models.ProjectConfig) (models.ProjectConfig, error) {
	cfg := raw.Clone()
	cfg.ProjectName = strings.TrimSpace(cfg.ProjectName)

	for _, r := range shapeRules {
		if err := r.check(cfg); err != nil {
			return models.ProjectConfig{}, err
		}
	}

	cfg = normalize(cfg)

	for _, r := range compatibilityRules {
		if err := r.check(cfg); err != nil {
			return models.ProjectConfig{}, err
		}
	}

	return cfg, nil
}

// normalize applies defaults, removes duplicate and "none" set members,
// and resolves the implied Turso flag.
func normalize(cfg models.ProjectConfig) models.ProjectConfig {
	cfg.Frontend = dedupe(slices.DeleteFunc(cfg.Frontend, func(f models.Frontend) bool {
		return f == models.FrontendNone
	}))
	cfg.Addons = dedupe(cfg.Addons)
	cfg.Examples = dedupe(cfg.Examples)

	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.ORM == "" {
		cfg.ORM = DefaultORM
	}
	if cfg.Auth == "" {
		cfg.Auth = DefaultAuth
	}
	if cfg.PackageManager == "" {
		cfg.PackageManager = DefaultPackageManager
	}

	if cfg.Turso == nil {
		cfg.Turso = models.BoolPtr(cfg.Database == models.DatabaseSQLite && SupportsTurso(cfg.ORM))
	}

	return cfg
}

// dedupe removes repeated values keeping first-seen order. The result is
// never nil.
func dedupe[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	seen := make(map[T]bool, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ValidateProjectName applies the project-name rule on its own, for prompts
// that check a name before the rest of the configuration exists.
func ValidateProjectName(name string) error {
	cfg := models.ProjectConfig{ProjectName: strings.TrimSpace(name)}
	if err := checkProjectName(cfg); err != nil {
		return err
	}
	return nil
}

func checkProjectName(cfg models.ProjectConfig) *ValidationError {
	name := cfg.ProjectName
	switch {
	case name == "":
		return invalid("projectName", "required field is empty", nil)
	case name == "." || name == "..":
		return invalid("projectName", "must name a new directory", name)
	case strings.ContainsAny(name, `/\`):
		return invalid("projectName", "must not contain path separators", name)
	case len(name) > maxProjectNameLength:
		return invalid("projectName", fmt.Sprintf("must be at most %d characters", maxProjectNameLength), name)
	case !projectNamePattern.MatchString(name):
		return invalid("projectName", "must be lowercase and contain only letters, digits, '-', '.', '_' or '~'", name)
	}
	return nil
}

func checkFrontendValues(cfg models.ProjectConfig) *ValidationError {
	for _, f := range cfg.Frontend {
		if !f.IsValid() {
			return invalid("frontend", "must be one of: "+joinValues(models.ValidFrontends()), string(f))
		}
	}
	if slices.Contains(cfg.Frontend, models.FrontendNone) && len(dedupe(cfg.Frontend)) > 1 {
		return invalid("frontend", "\"none\" cannot be combined with other frontends", nil)
	}
	return nil
}

func checkBackendValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.Backend != "" && !cfg.Backend.IsValid() {
		return invalid("backend", "must be one of: "+joinValues(models.ValidBackends()), string(cfg.Backend))
	}
	return nil
}

func checkRuntimeValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.Runtime != "" && !cfg.Runtime.IsValid() {
		return invalid("runtime", "must be one of: "+joinValues(models.ValidRuntimes()), string(cfg.Runtime))
	}
	return nil
}

func checkDatabaseValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.Database != "" && !cfg.Database.IsValid() {
		return invalid("database", "must be one of: "+joinValues(models.ValidDatabases()), string(cfg.Database))
	}
	return nil
}

func checkORMValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.ORM != "" && !cfg.ORM.IsValid() {
		return invalid("orm", "must be one of: "+joinValues(models.ValidORMs()), string(cfg.ORM))
	}
	return nil
}

func checkAuthValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.Auth != "" && !cfg.Auth.IsValid() {
		return invalid("auth", "must be one of: "+joinValues(models.ValidAuths()), string(cfg.Auth))
	}
	return nil
}

func checkPackageManagerValue(cfg models.ProjectConfig) *ValidationError {
	if cfg.PackageManager != "" && !cfg.PackageManager.IsValid() {
		return invalid("packageManager", "must be one of: "+joinValues(models.ValidPackageManagers()), string(cfg.PackageManager))
	}
	return nil
}

func checkAddonValues(cfg models.ProjectConfig) *ValidationError {
	for _, a := range cfg.Addons {
		if !a.IsValid() {
			return invalid("addons", "must be one of: "+joinValues(models.ValidAddons()), string(a))
		}
	}
	return nil
}

func checkExampleValues(cfg models.ProjectConfig) *ValidationError {
	for _, e := range cfg.Examples {
		if !e.IsValid() {
			return invalid("examples", "must be one of: "+joinValues(models.ValidExamples()), string(e))
		}
	}
	return nil
}

func checkORMRequiresDatabase(cfg models.ProjectConfig) *ValidationError {
	if cfg.ORM != models.ORMNone && cfg.Database == models.DatabaseNone {
		return incompatible("database", fmt.Sprintf("orm %q requires a database; select one or set orm to none", cfg.ORM))
	}
	return nil
}

func checkAuthBackend(cfg models.ProjectConfig) *ValidationError {
	if !SupportsAuth(cfg.Auth, cfg.Backend) {
		return incompatible("auth", fmt.Sprintf("%s is not available for backend %q; supported: %s",
			cfg.Auth, cfg.Backend, joinValues(authBackends[cfg.Auth])))
	}
	return nil
}

func checkTurso(cfg models.ProjectConfig) *ValidationError {
	if cfg.Turso == nil || !*cfg.Turso {
		return nil
	}
	if cfg.Database != models.DatabaseSQLite {
		return incompatible("turso", fmt.Sprintf("turso requires the sqlite database, got %q", cfg.Database))
	}
	if !SupportsTurso(cfg.ORM) {
		return incompatible("orm", fmt.Sprintf("turso requires one of: %s", joinValues(tursoORMs)))
	}
	return nil
}

func checkNativeRuntime(cfg models.ProjectConfig) *ValidationError {
	if cfg.HasFrontend(models.FrontendNative) && !SupportsNative(cfg.Runtime) {
		return incompatible("runtime", fmt.Sprintf("the native frontend requires one of: %s", joinValues(nativeRuntimes)))
	}
	return nil
}

func checkExclusiveAddons(cfg models.ProjectConfig) *ValidationError {
	for _, group := range exclusiveAddonGroups {
		var selected []models.Addon
		for _, a := range group {
			if cfg.HasAddon(a) {
				selected = append(selected, a)
			}
		}
		if len(selected) > 1 {
			return incompatible("addons", fmt.Sprintf("only one of %s can be selected", joinValues(selected)))
		}
	}
	return nil
}

func checkORMDatabase(cfg models.ProjectConfig) *ValidationError {
	if cfg.Database != models.DatabaseNone && !SupportsDatabase(cfg.ORM, cfg.Database) {
		return incompatible("orm", fmt.Sprintf("%s does not support %s; supported: %s",
			cfg.ORM, cfg.Database, joinValues(ormDatabases[cfg.ORM])))
	}
	return nil
}

func checkRuntimeBackend(cfg models.ProjectConfig) *ValidationError {
	if !SupportsRuntime(cfg.Runtime, cfg.Backend) {
		return incompatible("runtime", fmt.Sprintf("runtime %q supports only: %s",
			cfg.Runtime, joinValues(runtimeBackends[cfg.Runtime])))
	}
	return nil
}

func checkAddonFrontend(cfg models.ProjectConfig) *ValidationError {
	for _, a := range cfg.Addons {
		if !SupportsAddon(a, cfg) {
			return incompatible("addons", fmt.Sprintf("%s requires the %s frontend", a, addonFrontends[a]))
		}
	}
	return nil
}

func checkExamples(cfg models.ProjectConfig) *ValidationError {
	if cfg.HasExample(models.ExampleTodo) && !SupportsExample(models.ExampleTodo, cfg) {
		return incompatible("examples", "the todo example requires an orm")
	}
	if cfg.HasExample(models.ExampleAI) && !SupportsExample(models.ExampleAI, cfg) {
		return incompatible("examples", "the ai example is not available on the workers runtime")
	}
	return nil
}

// joinValues renders enum values as a comma separated list.
func joinValues[T ~string](values []T) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = string(v)
	}
	return strings.Join(strs, ", ")
}
