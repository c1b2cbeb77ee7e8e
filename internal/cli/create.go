package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/stackgen/internal/cli/wizard"
	"github.com/modu-ai/stackgen/internal/config"
	"github.com/modu-ai/stackgen/internal/core/project"
	"github.com/modu-ai/stackgen/internal/defs"
	"github.com/modu-ai/stackgen/internal/pipeline"
	"github.com/modu-ai/stackgen/internal/summary"
	"github.com/modu-ai/stackgen/internal/ui"
	"github.com/modu-ai/stackgen/pkg/models"
	"github.com/modu-ai/stackgen/pkg/version"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [project-name]",
		Short: "Create a new project",
		Long: `Create a new project directory and generate the selected stack into it.

Choices not given as flags are prompted for when running in a terminal.
With --yes, or without a terminal, defaults are used instead. Defaults come
from the defaults file, then STACKGEN_* environment variables, then flags.

Examples:
  stackgen create my-app
  stackgen create my-app --frontend web,native --database sqlite --orm drizzle
  stackgen create api --frontend none --backend express --auth clerk --yes
  stackgen create --preset stack.yaml --yes`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: validateCreateFlags,
		RunE:    runCreate,
	}

	f := cmd.Flags()
	f.StringSlice(wizard.IDFrontend, nil, "Frontend apps: web, native or none")
	f.String(wizard.IDBackend, "", "Backend framework: hono, express, elysia or next")
	f.String(wizard.IDRuntime, "", "Server runtime: bun, node or workers")
	f.String(wizard.IDDatabase, "", "Database: none, sqlite, postgres, mysql or mongodb")
	f.String(wizard.IDORM, "", "ORM: none, drizzle or prisma")
	f.String(wizard.IDAuth, "", "Auth provider: none, better-auth or clerk")
	f.String(wizard.IDPackageManager, "", "Package manager: npm, pnpm or bun")
	f.StringSlice(wizard.IDAddons, nil, "Addons: biome, husky, tauri, electron, pwa")
	f.StringSlice(wizard.IDExamples, nil, "Examples: todo, ai")
	f.Bool(wizard.IDGit, true, "Initialize a git repository with a root commit")
	f.Bool(wizard.IDTurso, false, "Use a remote SQLite database with Turso")
	f.Bool("no-install", false, "Do not plan on installing dependencies (adds an install step to the summary)")
	f.BoolP("yes", "y", false, "Accept defaults for every choice not given as a flag")
	f.String("dir", "", "Parent directory of the project (default: current directory)")
	f.String("preset", "", "Read the project configuration from a YAML file")
	f.Bool("show-readme", false, "Render the generated README after creation")

	return cmd
}

// validateCreateFlags rejects unknown option values before any prompt runs.
func validateCreateFlags(cmd *cobra.Command, _ []string) error {
	checks := []struct {
		flag  string
		valid func(string) bool
	}{
		{wizard.IDBackend, func(v string) bool { return models.Backend(v).IsValid() }},
		{wizard.IDRuntime, func(v string) bool { return models.Runtime(v).IsValid() }},
		{wizard.IDDatabase, func(v string) bool { return models.Database(v).IsValid() }},
		{wizard.IDORM, func(v string) bool { return models.ORM(v).IsValid() }},
		{wizard.IDAuth, func(v string) bool { return models.Auth(v).IsValid() }},
		{wizard.IDPackageManager, func(v string) bool { return models.PackageManager(v).IsValid() }},
	}
	for _, c := range checks {
		if v := getStringFlag(cmd, c.flag); v != "" && !c.valid(v) {
			return &config.ValidationError{
				Field:   c.flag,
				Reason:  "unknown value",
				Value:   v,
				Wrapped: config.ErrInvalidConfig,
			}
		}
	}
	return nil
}

// @MX:ANCHOR: [AUTO] runCreate resolves the configuration and drives project generation
// @MX:REASON: [AUTO] flags, defaults, presets and prompts all converge here before the creator runs
func runCreate(cmd *cobra.Command, args []string) error {
	d := GetDeps()
	if d == nil {
		return errors.New("dependencies not initialized")
	}

	cfg, answered, err := resolveConfig(cmd, args, d.Logger)
	if err != nil {
		return err
	}

	if !getBoolFlag(cmd, "yes") && !d.Headless.IsHeadless() {
		if err := d.Prompt(wizard.DefaultQuestions(), &cfg, answered); err != nil {
			return err
		}
	}

	// Reject invalid choices before the spinner starts.
	if _, err := config.Validate(cfg); err != nil {
		return err
	}

	spin := d.Progress.Spinner("Creating " + cfg.ProjectName)
	popts := []pipeline.Option{
		pipeline.WithLogger(d.Logger),
		pipeline.WithVersion(version.GetVersion()),
		pipeline.WithProgress(func(stage string, i, total int) {
			spin.SetTitle(fmt.Sprintf("[%d/%d] %s", i+1, total, stage))
		}),
	}
	if d.Git != nil {
		popts = append(popts, pipeline.WithGit(d.Git))
	}

	res, err := d.Creator.Create(cmd.Context(), cfg, project.CreateOptions{
		Parent:   getStringFlag(cmd, "dir"),
		Pipeline: popts,
	})
	spin.Stop()
	if err != nil {
		var se *pipeline.StageError
		if errors.As(err, &se) && res != nil {
			d.Logger.Warn("generation stopped, partial project left in place", "path", res.Path, "stage", se.Stage)
		}
		return err
	}

	out := cmd.OutOrStdout()
	ui.WriteSuccess(out, d.Theme, res.Path)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprint(out, ui.RenderSummary(d.Theme, summary.Build(res.Config)))

	if getBoolFlag(cmd, "show-readme") {
		return showReadme(cmd, d.Theme, res.Path)
	}
	return nil
}

// resolveConfig layers defaults, an optional preset, the positional name and
// changed flags. The returned set lists the wizard questions settled by flags.
func resolveConfig(cmd *cobra.Command, args []string, logger *slog.Logger) (models.ProjectConfig, map[string]bool, error) {
	answered := make(map[string]bool)

	defaults, err := config.NewLoader(config.WithLogger(logger)).Load(getStringFlag(cmd, "config"))
	if err != nil {
		return models.ProjectConfig{}, nil, err
	}
	cfg := defaults.ProjectConfig()

	if preset := getStringFlag(cmd, "preset"); preset != "" {
		if cfg, err = config.LoadPreset(preset); err != nil {
			return models.ProjectConfig{}, nil, err
		}
		if cfg.ProjectName != config.DefaultProjectName {
			answered[wizard.IDProjectName] = true
		}
	}

	if len(args) > 0 {
		cfg.ProjectName = config.SlugifyProjectName(filepath.Base(filepath.Clean(args[0])))
		answered[wizard.IDProjectName] = true
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		if flags.Changed(name) {
			answered[name] = true
			return true
		}
		return false
	}

	if changed(wizard.IDFrontend) {
		cfg.Frontend = toEnums[models.Frontend](getStringSliceFlag(cmd, wizard.IDFrontend))
	}
	if changed(wizard.IDBackend) {
		cfg.Backend = models.Backend(getStringFlag(cmd, wizard.IDBackend))
	}
	if changed(wizard.IDRuntime) {
		cfg.Runtime = models.Runtime(getStringFlag(cmd, wizard.IDRuntime))
	}
	if changed(wizard.IDDatabase) {
		cfg.Database = models.Database(getStringFlag(cmd, wizard.IDDatabase))
	}
	if changed(wizard.IDORM) {
		cfg.ORM = models.ORM(getStringFlag(cmd, wizard.IDORM))
	}
	if changed(wizard.IDAuth) {
		cfg.Auth = models.Auth(getStringFlag(cmd, wizard.IDAuth))
	}
	if changed(wizard.IDPackageManager) {
		cfg.PackageManager = models.PackageManager(getStringFlag(cmd, wizard.IDPackageManager))
	}
	if changed(wizard.IDAddons) {
		cfg.Addons = toEnums[models.Addon](getStringSliceFlag(cmd, wizard.IDAddons))
	}
	if changed(wizard.IDExamples) {
		cfg.Examples = toEnums[models.Example](getStringSliceFlag(cmd, wizard.IDExamples))
	}
	if changed(wizard.IDGit) {
		cfg.Git = getBoolFlag(cmd, wizard.IDGit)
	}
	if changed(wizard.IDTurso) {
		cfg.Turso = models.BoolPtr(getBoolFlag(cmd, wizard.IDTurso))
	}
	if flags.Changed("no-install") {
		cfg.NoInstall = getBoolFlag(cmd, "no-install")
	}

	return cfg, answered, nil
}

func showReadme(cmd *cobra.Command, theme *ui.Theme, dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, defs.ReadmeMD))
	if err != nil {
		return fmt.Errorf("read generated readme: %w", err)
	}
	rendered, err := ui.RenderMarkdown(theme, string(data), ui.DefaultWrapWidth)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

func toEnums[T ~string](values []string) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, T(v))
		}
	}
	return out
}
