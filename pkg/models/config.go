// @MX:NOTE: [AUTO] Option enums for every choice a generated project can make. Values match the CLI flag spelling.
package models

// Frontend identifies a client application scaffolded under apps/.
type Frontend string

const (
	// FrontendWeb is a React web app served by Vite at apps/web.
	FrontendWeb Frontend = "web"
	// FrontendNative is an Expo app at apps/native.
	FrontendNative Frontend = "native"
	// FrontendNone is accepted on input only; normalization removes it.
	FrontendNone Frontend = "none"
)

// ValidFrontends returns all frontend values accepted on input.
func ValidFrontends() []Frontend {
	return []Frontend{FrontendWeb, FrontendNative, FrontendNone}
}

// IsValid checks if the frontend is a recognized value.
func (f Frontend) IsValid() bool {
	switch f {
	case FrontendWeb, FrontendNative, FrontendNone:
		return true
	}
	return false
}

// Backend identifies the server framework scaffolded at apps/server.
type Backend string

const (
	BackendHono    Backend = "hono"
	BackendExpress Backend = "express"
	BackendElysia  Backend = "elysia"
	BackendNext    Backend = "next"
)

// ValidBackends returns all backend framework values.
func ValidBackends() []Backend {
	return []Backend{BackendHono, BackendExpress, BackendElysia, BackendNext}
}

// IsValid checks if the backend is a recognized value.
func (b Backend) IsValid() bool {
	switch b {
	case BackendHono, BackendExpress, BackendElysia, BackendNext:
		return true
	}
	return false
}

// Runtime identifies the JavaScript runtime the server targets.
type Runtime string

const (
	RuntimeBun  Runtime = "bun"
	RuntimeNode Runtime = "node"
	// RuntimeWorkers targets an edge runtime (Cloudflare Workers).
	RuntimeWorkers Runtime = "workers"
)

// ValidRuntimes returns all runtime values.
func ValidRuntimes() []Runtime {
	return []Runtime{RuntimeBun, RuntimeNode, RuntimeWorkers}
}

// IsValid checks if the runtime is a recognized value.
func (r Runtime) IsValid() bool {
	switch r {
	case RuntimeBun, RuntimeNode, RuntimeWorkers:
		return true
	}
	return false
}

// Database identifies the database engine.
type Database string

const (
	DatabaseNone     Database = "none"
	DatabaseSQLite   Database = "sqlite"
	DatabasePostgres Database = "postgres"
	DatabaseMySQL    Database = "mysql"
	DatabaseMongoDB  Database = "mongodb"
)

// ValidDatabases returns all database values.
func ValidDatabases() []Database {
	return []Database{DatabaseNone, DatabaseSQLite, DatabasePostgres, DatabaseMySQL, DatabaseMongoDB}
}

// IsValid checks if the database is a recognized value.
func (d Database) IsValid() bool {
	switch d {
	case DatabaseNone, DatabaseSQLite, DatabasePostgres, DatabaseMySQL, DatabaseMongoDB:
		return true
	}
	return false
}

// ORM identifies the data access layer.
type ORM string

const (
	ORMNone    ORM = "none"
	ORMDrizzle ORM = "drizzle"
	ORMPrisma  ORM = "prisma"
)

// ValidORMs returns all ORM values.
func ValidORMs() []ORM {
	return []ORM{ORMNone, ORMDrizzle, ORMPrisma}
}

// IsValid checks if the ORM is a recognized value.
func (o ORM) IsValid() bool {
	switch o {
	case ORMNone, ORMDrizzle, ORMPrisma:
		return true
	}
	return false
}

// Auth identifies the authentication provider.
type Auth string

const (
	AuthNone       Auth = "none"
	AuthBetterAuth Auth = "better-auth"
	AuthClerk      Auth = "clerk"
)

// ValidAuths returns all auth provider values.
func ValidAuths() []Auth {
	return []Auth{AuthNone, AuthBetterAuth, AuthClerk}
}

// IsValid checks if the auth provider is a recognized value.
func (a Auth) IsValid() bool {
	switch a {
	case AuthNone, AuthBetterAuth, AuthClerk:
		return true
	}
	return false
}

// PackageManager identifies the package manager used for workspace scripts.
type PackageManager string

const (
	PackageManagerNPM  PackageManager = "npm"
	PackageManagerPNPM PackageManager = "pnpm"
	PackageManagerBun  PackageManager = "bun"
)

// ValidPackageManagers returns all package manager values.
func ValidPackageManagers() []PackageManager {
	return []PackageManager{PackageManagerNPM, PackageManagerPNPM, PackageManagerBun}
}

// IsValid checks if the package manager is a recognized value.
func (p PackageManager) IsValid() bool {
	switch p {
	case PackageManagerNPM, PackageManagerPNPM, PackageManagerBun:
		return true
	}
	return false
}

// RunCommand returns the prefix used to run a package script.
// npm needs "npm run"; pnpm and bun accept the script name directly.
func (p PackageManager) RunCommand() string {
	if p == PackageManagerNPM {
		return "npm run"
	}
	return string(p)
}

// Addon identifies an optional post-processing feature.
type Addon string

const (
	AddonBiome    Addon = "biome"
	AddonHusky    Addon = "husky"
	AddonTauri    Addon = "tauri"
	AddonElectron Addon = "electron"
	AddonPWA      Addon = "pwa"
)

// ValidAddons returns all addon values.
func ValidAddons() []Addon {
	return []Addon{AddonBiome, AddonHusky, AddonTauri, AddonElectron, AddonPWA}
}

// IsValid checks if the addon is a recognized value.
func (a Addon) IsValid() bool {
	switch a {
	case AddonBiome, AddonHusky, AddonTauri, AddonElectron, AddonPWA:
		return true
	}
	return false
}

// Example identifies an optional demo feature wired into the generated apps.
type Example string

const (
	ExampleTodo Example = "todo"
	ExampleAI   Example = "ai"
)

// ValidExamples returns all example values.
func ValidExamples() []Example {
	return []Example{ExampleTodo, ExampleAI}
}

// IsValid checks if the example is a recognized value.
func (e Example) IsValid() bool {
	switch e {
	case ExampleTodo, ExampleAI:
		return true
	}
	return false
}
