package summary

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/pkg/models"
)

func validated(t *testing.T, mutate func(*models.ProjectConfig)) models.ProjectConfig {
	t.Helper()
	raw := models.ProjectConfig{
		ProjectName:    "my-app",
		Frontend:       []models.Frontend{models.FrontendWeb},
		Backend:        models.BackendHono,
		Runtime:        models.RuntimeBun,
		Database:       models.DatabaseNone,
		ORM:            models.ORMNone,
		Auth:           models.AuthNone,
		PackageManager: models.PackageManagerBun,
		Git:            true,
	}
	if mutate != nil {
		mutate(&raw)
	}
	cfg, err := config.Validate(raw)
	require.NoError(t, err)
	return cfg
}

func ids(blocks []Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ID)
	}
	return out
}

func find(blocks []Block, id string) (Block, bool) {
	i := slices.IndexFunc(blocks, func(b Block) bool { return b.ID == id })
	if i < 0 {
		return Block{}, false
	}
	return blocks[i], true
}

func texts(b Block) []string {
	out := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		out = append(out, l.Text)
	}
	return out
}

func TestBuild_MinimalConfig(t *testing.T) {
	t.Parallel()

	blocks := Build(validated(t, nil))

	assert.Equal(t, []string{BlockSteps, BlockServers}, ids(blocks))

	steps := blocks[0]
	assert.Equal(t, []string{"cd my-app", "bun dev"}, texts(steps))
	assert.Equal(t, "2.", steps.Lines[1].Label)
	for _, l := range steps.Lines {
		assert.Equal(t, KindStep, l.Kind)
	}

	servers := blocks[1]
	assert.Equal(t, []string{FrontendURL, APIURL}, texts(servers))
}

func TestBuild_InstallStepWhenNotInstalled(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.PackageManager = models.PackageManagerNPM
		c.NoInstall = true
	})
	steps := Build(cfg)[0]

	assert.Equal(t, []string{"cd my-app", "npm install", "npm run dev"}, texts(steps))
	assert.Equal(t, "3.", steps.Lines[2].Label)
}

func TestBuild_BackendOnly(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) { c.Frontend = []models.Frontend{models.FrontendNone} })
	servers, ok := find(Build(cfg), BlockServers)
	require.True(t, ok)

	require.Len(t, servers.Lines, 2)
	assert.Equal(t, KindNote, servers.Lines[0].Kind)
	assert.Contains(t, servers.Lines[0].Text, "backend-only")
	assert.Equal(t, APIURL, servers.Lines[1].Text)
}

func TestBuild_NativeOnlyHasNoFrontendURL(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) { c.Frontend = []models.Frontend{models.FrontendNative} })
	servers, ok := find(Build(cfg), BlockServers)
	require.True(t, ok)

	assert.Equal(t, []string{APIURL}, texts(servers))
}

func TestBuild_SqliteDrizzleScenario(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.Database = models.DatabaseSQLite
		c.ORM = models.ORMDrizzle
	})
	blocks := Build(cfg)

	var db []Block
	for _, b := range blocks {
		if b.Title == "Database commands:" {
			db = append(db, b)
		}
	}
	require.Len(t, db, 1, "exactly one database block")

	joined := strings.Join(texts(db[0]), "\n")
	assert.Equal(t, 1, strings.Count(joined, "db:push"))
	assert.Equal(t, 1, strings.Count(joined, "db:local"))
	assert.Contains(t, joined, "cd apps/server && bun db:local")
}

func TestBuild_NativeNoteBeforeDatabase(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.Frontend = []models.Frontend{models.FrontendNative}
		c.Database = models.DatabasePostgres
		c.ORM = models.ORMDrizzle
	})
	got := ids(Build(cfg))

	native := slices.Index(got, BlockNativeNote)
	require.GreaterOrEqual(t, native, 0)
	count := 0
	for _, id := range got {
		if id == BlockNativeNote {
			count++
		}
	}
	assert.Equal(t, 1, count, "native note appears once")
	assert.Less(t, native, slices.Index(got, BlockDatabase))
}

func TestBuild_NativeNoteWithoutDatabase(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) { c.Frontend = []models.Frontend{models.FrontendNative} })
	note, ok := find(Build(cfg), BlockNativeNote)
	require.True(t, ok)

	require.Len(t, note.Lines, 2)
	assert.Equal(t, KindNote, note.Lines[0].Kind)
	assert.Contains(t, note.Lines[0].Text, "EXPO_PUBLIC_SERVER_URL")
	assert.Equal(t, KindDim, note.Lines[1].Kind)
}

func TestBuild_DatabaseBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.ProjectConfig)
		want   []string
		absent bool
	}{
		{
			name: "postgres drizzle has no local db",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabasePostgres
				c.ORM = models.ORMDrizzle
			},
			want: []string{"bun db:push", "bun db:studio"},
		},
		{
			name: "sqlite drizzle without turso",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabaseSQLite
				c.ORM = models.ORMDrizzle
				c.Turso = models.BoolPtr(false)
			},
			want: []string{"bun db:push", "bun db:studio"},
		},
		{
			name: "prisma on bun warns",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabasePostgres
				c.ORM = models.ORMPrisma
			},
			want: []string{
				"Prisma with Bun may require additional configuration. If you encounter errors, follow the guidance provided in the error messages",
				"bun db:push",
				"bun db:studio",
			},
		},
		{
			name: "prisma turso on node",
			mutate: func(c *models.ProjectConfig) {
				c.Runtime = models.RuntimeNode
				c.PackageManager = models.PackageManagerPNPM
				c.Database = models.DatabaseSQLite
				c.ORM = models.ORMPrisma
			},
			want: []string{
				"Turso support with Prisma is in Early Access and requires additional setup.",
				"Learn more at: https://www.prisma.io/docs/orm/overview/databases/turso",
				"pnpm db:push",
				"pnpm db:studio",
			},
		},
		{
			name: "database without orm",
			mutate: func(c *models.ProjectConfig) {
				c.Database = models.DatabasePostgres
			},
			absent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, ok := find(Build(validated(t, tt.mutate)), BlockDatabase)
			if tt.absent {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, texts(b))
		})
	}
}

func TestBuild_DesktopBlock(t *testing.T) {
	t.Parallel()

	tauri, ok := find(Build(validated(t, func(c *models.ProjectConfig) {
		c.Addons = []models.Addon{models.AddonTauri}
	})), BlockDesktop)
	require.True(t, ok)
	assert.Equal(t, "Desktop app with Tauri:", tauri.Title)
	assert.Contains(t, texts(tauri), "cd apps/web && bun desktop:dev")
	assert.Equal(t, KindNote, tauri.Lines[len(tauri.Lines)-1].Kind)

	electron, ok := find(Build(validated(t, func(c *models.ProjectConfig) {
		c.Addons = []models.Addon{models.AddonElectron}
		c.PackageManager = models.PackageManagerNPM
	})), BlockDesktop)
	require.True(t, ok)
	assert.Equal(t, "Desktop app with Electron:", electron.Title)
	assert.Equal(t, []string{"cd apps/web && npm run desktop:dev", "cd apps/web && npm run desktop:build"}, texts(electron))
}

func TestBuild_LintingBlock(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.Addons = []models.Addon{models.AddonHusky, models.AddonBiome}
	})
	lint, ok := find(Build(cfg), BlockLinting)
	require.True(t, ok)
	require.Len(t, lint.Lines, 2)
	assert.Equal(t, "bun check", lint.Lines[0].Text)

	huskyOnly, ok := find(Build(validated(t, func(c *models.ProjectConfig) {
		c.Addons = []models.Addon{models.AddonHusky}
	})), BlockLinting)
	require.True(t, ok)
	require.Len(t, huskyOnly.Lines, 1)
	// husky adds no check script, so there is no lint command to run.
	assert.Equal(t, "Pre-commit hook", huskyOnly.Lines[0].Label)
	assert.NotContains(t, huskyOnly.Lines[0].Text, "check")
}

func TestBuild_FullOrder(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.Frontend = []models.Frontend{models.FrontendWeb, models.FrontendNative}
		c.Database = models.DatabaseSQLite
		c.ORM = models.ORMDrizzle
		c.Addons = []models.Addon{models.AddonBiome, models.AddonTauri}
	})

	assert.Equal(t, []string{
		BlockSteps, BlockServers, BlockNativeNote, BlockDatabase, BlockDesktop, BlockLinting,
	}, ids(Build(cfg)))
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := validated(t, func(c *models.ProjectConfig) {
		c.Database = models.DatabaseMySQL
		c.ORM = models.ORMPrisma
		c.Addons = []models.Addon{models.AddonBiome}
	})
	assert.Equal(t, Build(cfg), Build(cfg))
}
