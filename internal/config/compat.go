package config

import (
	"slices"

	"github.com/modu-ai/stackgen/pkg/models"
)

// authBackends lists the backend frameworks each auth provider can be wired into.
var authBackends = map[models.Auth][]models.Backend{
	models.AuthBetterAuth: {models.BackendHono, models.BackendExpress, models.BackendElysia, models.BackendNext},
	models.AuthClerk:      {models.BackendExpress, models.BackendNext},
}

// tursoORMs lists the ORMs that can talk to a remote libSQL (Turso) database.
var tursoORMs = []models.ORM{models.ORMDrizzle, models.ORMPrisma}

// nativeRuntimes lists the server runtimes the Expo toolchain can develop against.
var nativeRuntimes = []models.Runtime{models.RuntimeBun, models.RuntimeNode}

// exclusiveAddonGroups lists addons that cannot be combined with each other.
var exclusiveAddonGroups = [][]models.Addon{
	{models.AddonTauri, models.AddonElectron},
}

// ormDatabases lists the databases each ORM has a dialect for.
var ormDatabases = map[models.ORM][]models.Database{
	models.ORMDrizzle: {models.DatabaseSQLite, models.DatabasePostgres, models.DatabaseMySQL},
	models.ORMPrisma:  {models.DatabaseSQLite, models.DatabasePostgres, models.DatabaseMySQL, models.DatabaseMongoDB},
}

// runtimeBackends restricts runtimes that only some frameworks can target.
// Runtimes missing from the map accept every backend.
var runtimeBackends = map[models.Runtime][]models.Backend{
	models.RuntimeWorkers: {models.BackendHono},
}

// addonFrontends lists the frontend an addon wraps or extends.
var addonFrontends = map[models.Addon]models.Frontend{
	models.AddonTauri:    models.FrontendWeb,
	models.AddonElectron: models.FrontendWeb,
	models.AddonPWA:      models.FrontendWeb,
}

// SupportsAuth reports whether auth can be used with backend.
func SupportsAuth(auth models.Auth, backend models.Backend) bool {
	if auth == models.AuthNone {
		return true
	}
	return slices.Contains(authBackends[auth], backend)
}

// SupportsTurso reports whether orm can drive a remote sqlite database.
func SupportsTurso(orm models.ORM) bool {
	return slices.Contains(tursoORMs, orm)
}

// SupportsDatabase reports whether orm has a dialect for db.
func SupportsDatabase(orm models.ORM, db models.Database) bool {
	if orm == models.ORMNone {
		return true
	}
	return slices.Contains(ormDatabases[orm], db)
}

// SupportsRuntime reports whether backend can be deployed on runtime.
func SupportsRuntime(runtime models.Runtime, backend models.Backend) bool {
	allowed, restricted := runtimeBackends[runtime]
	if !restricted {
		return true
	}
	return slices.Contains(allowed, backend)
}

// SupportsNative reports whether the native frontend can run against runtime.
func SupportsNative(runtime models.Runtime) bool {
	return slices.Contains(nativeRuntimes, runtime)
}

// SupportsAddon reports whether addon can extend the frontends selected in cfg.
func SupportsAddon(addon models.Addon, cfg models.ProjectConfig) bool {
	want, ok := addonFrontends[addon]
	return !ok || cfg.HasFrontend(want)
}

// SupportsExample reports whether example can be generated for cfg.
func SupportsExample(example models.Example, cfg models.ProjectConfig) bool {
	switch example {
	case models.ExampleTodo:
		return cfg.ORM != models.ORMNone
	case models.ExampleAI:
		return cfg.Runtime != models.RuntimeWorkers
	}
	return true
}

// ExclusiveWith returns the addons that cannot be selected together with addon.
func ExclusiveWith(addon models.Addon) []models.Addon {
	var out []models.Addon
	for _, group := range exclusiveAddonGroups {
		if !slices.Contains(group, addon) {
			continue
		}
		for _, a := range group {
			if a != addon {
				out = append(out, a)
			}
		}
	}
	return out
}
