// Package summary derives the follow-up instructions shown after a project is
// generated. It is a pure projection of the validated configuration: no file
// system access and no styling. Rendering belongs to the ui package.
package summary

import (
	"fmt"

	"github.com/modu-ai/stackgen/pkg/models"
)

// Block identifiers in rendering order.
const (
	BlockSteps      = "steps"
	BlockServers    = "servers"
	BlockNativeNote = "native-note"
	BlockDatabase   = "database"
	BlockDesktop    = "desktop"
	BlockLinting    = "linting"
)

// Local development endpoints of the generated apps.
const (
	FrontendURL = "http://localhost:3001"
	APIURL      = "http://localhost:3000"
)

// LineKind tells the presentation layer how a line should be emphasized.
type LineKind string

const (
	// KindStep is a numbered setup step.
	KindStep LineKind = "step"
	// KindBullet is a labelled command or address.
	KindBullet LineKind = "bullet"
	// KindNote is a caveat the user should read.
	KindNote LineKind = "note"
	// KindDim is supporting detail such as an example value or a link.
	KindDim LineKind = "dim"
)

// Line is one instruction inside a Block.
// For steps Label holds the number; for bullets it holds the caption and
// Text holds the command.
type Line struct {
	Kind  LineKind
	Label string
	Text  string
}

// Block is a titled group of lines.
type Block struct {
	ID    string
	Title string
	Lines []Line
}

// Build returns the instruction blocks for cfg in their fixed order:
// setup steps, server addresses, then native-note, database, desktop and
// linting, each only when it applies.
//
// @MX:ANCHOR: [AUTO] Single entry point for post-generation instructions; the CLI renders its output.
// @MX:REASON: [AUTO] Block order is part of the user-facing contract and is asserted by tests.
func Build(cfg models.ProjectConfig) []Block {
	run := cfg.PackageManager.RunCommand()

	blocks := []Block{steps(cfg, run), servers(cfg)}
	for _, b := range []func(models.ProjectConfig, string) (Block, bool){
		nativeNote,
		database,
		desktop,
		linting,
	} {
		if block, ok := b(cfg, run); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func steps(cfg models.ProjectConfig, run string) Block {
	var lines []Line
	add := func(text string) {
		lines = append(lines, Line{Kind: KindStep, Label: fmt.Sprintf("%d.", len(lines)+1), Text: text})
	}

	add("cd " + cfg.ProjectName)
	if cfg.NoInstall {
		add(string(cfg.PackageManager) + " install")
	}
	add(run + " dev")

	return Block{ID: BlockSteps, Title: "Next steps:", Lines: lines}
}

func servers(cfg models.ProjectConfig) Block {
	var lines []Line
	switch {
	case !cfg.HasAnyFrontend():
		lines = append(lines, Line{Kind: KindNote, Text: "You are creating a backend-only app (no frontend selected)"})
	case cfg.HasFrontend(models.FrontendWeb):
		lines = append(lines, Line{Kind: KindBullet, Label: "Frontend", Text: FrontendURL})
	}
	lines = append(lines, Line{Kind: KindBullet, Label: "API", Text: APIURL})

	return Block{ID: BlockServers, Title: "Your project will be available at:", Lines: lines}
}

func nativeNote(cfg models.ProjectConfig, _ string) (Block, bool) {
	if !cfg.HasFrontend(models.FrontendNative) {
		return Block{}, false
	}
	return Block{
		ID: BlockNativeNote,
		Lines: []Line{
			{Kind: KindNote, Text: "If the Expo app cannot connect to the server, update the EXPO_PUBLIC_SERVER_URL in apps/native/.env to use your local IP address instead of localhost:"},
			{Kind: KindDim, Text: "EXPO_PUBLIC_SERVER_URL=http://192.168.0.103:3000"},
		},
	}, true
}

func database(cfg models.ProjectConfig, run string) (Block, bool) {
	if cfg.Database == models.DatabaseNone {
		return Block{}, false
	}

	var lines []Line
	switch cfg.ORM {
	case models.ORMPrisma:
		if cfg.UsesTurso() {
			lines = append(lines,
				Line{Kind: KindNote, Text: "Turso support with Prisma is in Early Access and requires additional setup."},
				Line{Kind: KindDim, Text: "Learn more at: https://www.prisma.io/docs/orm/overview/databases/turso"},
			)
		}
		if cfg.Runtime == models.RuntimeBun {
			lines = append(lines, Line{Kind: KindNote, Text: "Prisma with Bun may require additional configuration. If you encounter errors, follow the guidance provided in the error messages"})
		}
	case models.ORMDrizzle:
		if cfg.UsesTurso() {
			lines = append(lines, Line{Kind: KindBullet, Label: "Start local DB", Text: "cd apps/server && " + run + " db:local"})
		}
	default:
		return Block{}, false
	}
	lines = append(lines,
		Line{Kind: KindBullet, Label: "Apply schema", Text: run + " db:push"},
		Line{Kind: KindBullet, Label: "Database UI", Text: run + " db:studio"},
	)

	return Block{ID: BlockDatabase, Title: "Database commands:", Lines: lines}, true
}

func desktop(cfg models.ProjectConfig, run string) (Block, bool) {
	var title string
	var extra []Line
	switch {
	case cfg.HasAddon(models.AddonTauri):
		title = "Desktop app with Tauri:"
		extra = []Line{
			{Kind: KindNote, Text: "Tauri requires Rust and platform-specific dependencies. See: https://v2.tauri.app/start/prerequisites/"},
		}
	case cfg.HasAddon(models.AddonElectron):
		title = "Desktop app with Electron:"
	default:
		return Block{}, false
	}

	lines := []Line{
		{Kind: KindBullet, Label: "Start desktop app", Text: "cd apps/web && " + run + " desktop:dev"},
		{Kind: KindBullet, Label: "Build desktop app", Text: "cd apps/web && " + run + " desktop:build"},
	}
	return Block{ID: BlockDesktop, Title: title, Lines: append(lines, extra...)}, true
}

func linting(cfg models.ProjectConfig, run string) (Block, bool) {
	biome := cfg.HasAddon(models.AddonBiome)
	husky := cfg.HasAddon(models.AddonHusky)
	if !biome && !husky {
		return Block{}, false
	}

	var lines []Line
	if biome {
		lines = append(lines, Line{Kind: KindBullet, Label: "Format and lint fix", Text: run + " check"})
	}
	if husky {
		lines = append(lines, Line{Kind: KindBullet, Label: "Pre-commit hook", Text: "lint-staged runs on every commit"})
	}
	return Block{ID: BlockLinting, Title: "Linting and formatting:", Lines: lines}, true
}
