package wizard

import (
	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/pkg/models"
)

// DefaultQuestions returns the create command's questions in prompt order:
// name, frontend, backend, runtime, database, orm, turso, auth, addons,
// examples, git and package manager.
func DefaultQuestions() []Question {
	return []Question{
		{
			ID:          IDProjectName,
			Type:        QuestionTypeInput,
			Title:       "What is your project named?",
			Description: "Used as the directory name and the root package name.",
			Required:    true,
		},
		{
			ID:          IDFrontend,
			Type:        QuestionTypeMultiSelect,
			Title:       "Which frontend applications would you like to create?",
			Description: "Select none for a backend-only project.",
			Options: []Option{
				{Label: "Web", Value: string(models.FrontendWeb), Desc: "React app served by Vite"},
				{Label: "Native", Value: string(models.FrontendNative), Desc: "Expo app for iOS and Android"},
			},
		},
		{
			ID:    IDBackend,
			Type:  QuestionTypeSelect,
			Title: "Which backend framework would you like to use?",
			Options: []Option{
				{Label: "Hono", Value: string(models.BackendHono), Desc: "Lightweight, ultrafast web framework"},
				{Label: "Express", Value: string(models.BackendExpress), Desc: "Fast, unopinionated web framework for Node.js"},
				{Label: "Elysia", Value: string(models.BackendElysia), Desc: "TypeScript framework with end-to-end type safety"},
				{Label: "Next.js", Value: string(models.BackendNext), Desc: "API routes served by a Next.js app"},
			},
		},
		{
			ID:    IDRuntime,
			Type:  QuestionTypeSelect,
			Title: "Which runtime would you like to use?",
			Options: []Option{
				{Label: "Bun", Value: string(models.RuntimeBun), Desc: "Fast all-in-one JavaScript runtime"},
				{Label: "Node.js", Value: string(models.RuntimeNode), Desc: "Traditional Node.js runtime"},
				{Label: "Cloudflare Workers", Value: string(models.RuntimeWorkers), Desc: "Edge runtime"},
			},
			Allowed: func(cfg *models.ProjectConfig, v string) bool {
				rt := models.Runtime(v)
				if !config.SupportsRuntime(rt, cfg.Backend) {
					return false
				}
				return !cfg.HasFrontend(models.FrontendNative) || config.SupportsNative(rt)
			},
		},
		{
			ID:    IDDatabase,
			Type:  QuestionTypeSelect,
			Title: "Which database would you like to use?",
			Options: []Option{
				{Label: "None", Value: string(models.DatabaseNone), Desc: "No database setup"},
				{Label: "SQLite", Value: string(models.DatabaseSQLite), Desc: "File-based database, remote via Turso"},
				{Label: "PostgreSQL", Value: string(models.DatabasePostgres), Desc: "Advanced relational database"},
				{Label: "MySQL", Value: string(models.DatabaseMySQL), Desc: "Popular relational database"},
				{Label: "MongoDB", Value: string(models.DatabaseMongoDB), Desc: "Document database"},
			},
		},
		{
			ID:    IDORM,
			Type:  QuestionTypeSelect,
			Title: "Which ORM would you like to use?",
			Options: []Option{
				{Label: "Drizzle", Value: string(models.ORMDrizzle), Desc: "TypeScript ORM with a SQL-like query builder"},
				{Label: "Prisma", Value: string(models.ORMPrisma), Desc: "Schema-first ORM with generated client"},
			},
			Allowed: func(cfg *models.ProjectConfig, v string) bool {
				return config.SupportsDatabase(models.ORM(v), cfg.Database)
			},
			Condition: func(cfg *models.ProjectConfig) bool {
				return cfg.Database != models.DatabaseNone
			},
		},
		{
			ID:          IDTurso,
			Type:        QuestionTypeConfirm,
			Title:       "Set up a remote SQLite database with Turso?",
			Description: "Adds a libSQL client and a local database script.",
			Condition: func(cfg *models.ProjectConfig) bool {
				return cfg.Database == models.DatabaseSQLite && config.SupportsTurso(cfg.ORM)
			},
		},
		{
			ID:    IDAuth,
			Type:  QuestionTypeSelect,
			Title: "Which authentication provider would you like to use?",
			Options: []Option{
				{Label: "None", Value: string(models.AuthNone), Desc: "No authentication"},
				{Label: "Better Auth", Value: string(models.AuthBetterAuth), Desc: "Self-hosted auth stored in your database"},
				{Label: "Clerk", Value: string(models.AuthClerk), Desc: "Hosted user management"},
			},
			Allowed: func(cfg *models.ProjectConfig, v string) bool {
				return config.SupportsAuth(models.Auth(v), cfg.Backend)
			},
		},
		{
			ID:          IDAddons,
			Type:        QuestionTypeMultiSelect,
			Title:       "Which addons would you like to add?",
			Description: "Tauri and Electron cannot be combined.",
			Options: []Option{
				{Label: "Biome", Value: string(models.AddonBiome), Desc: "Linting and formatting"},
				{Label: "Husky", Value: string(models.AddonHusky), Desc: "Git hooks with lint-staged"},
				{Label: "Tauri", Value: string(models.AddonTauri), Desc: "Desktop shell for the web app"},
				{Label: "Electron", Value: string(models.AddonElectron), Desc: "Desktop shell for the web app"},
				{Label: "PWA", Value: string(models.AddonPWA), Desc: "Installable web app manifest"},
			},
			Allowed: func(cfg *models.ProjectConfig, v string) bool {
				return config.SupportsAddon(models.Addon(v), *cfg)
			},
		},
		{
			ID:    IDExamples,
			Type:  QuestionTypeMultiSelect,
			Title: "Which examples would you like to include?",
			Options: []Option{
				{Label: "Todo", Value: string(models.ExampleTodo), Desc: "CRUD routes backed by the database"},
				{Label: "AI chat", Value: string(models.ExampleAI), Desc: "Streaming chat endpoint"},
			},
			Allowed: func(cfg *models.ProjectConfig, v string) bool {
				return config.SupportsExample(models.Example(v), *cfg)
			},
		},
		{
			ID:    IDGit,
			Type:  QuestionTypeConfirm,
			Title: "Initialize a git repository?",
		},
		{
			ID:    IDPackageManager,
			Type:  QuestionTypeSelect,
			Title: "Which package manager do you want to use?",
			Options: []Option{
				{Label: "npm", Value: string(models.PackageManagerNPM), Desc: "Node Package Manager"},
				{Label: "pnpm", Value: string(models.PackageManagerPNPM), Desc: "Fast, disk space efficient package manager"},
				{Label: "bun", Value: string(models.PackageManagerBun), Desc: "All-in-one JavaScript runtime & toolkit"},
			},
		},
	}
}

// QuestionByID returns the question with id, or nil.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
