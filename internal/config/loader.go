package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/stackgen/pkg/models"
)

// Environment variable prefix for CLI defaults.
const envPrefix = "STACKGEN"

// defaultKeys are the settings a defaults file or STACKGEN_* variable may set.
var defaultKeys = []string{
	"frontend",
	"backend",
	"runtime",
	"database",
	"orm",
	"auth",
	"package_manager",
	"addons",
	"examples",
	"git",
	"no_install",
}

// Defaults holds user-level preferences applied before command-line flags.
type Defaults struct {
	Frontend       []string `mapstructure:"frontend"`
	Backend        string   `mapstructure:"backend"`
	Runtime        string   `mapstructure:"runtime"`
	Database       string   `mapstructure:"database"`
	ORM            string   `mapstructure:"orm"`
	Auth           string   `mapstructure:"auth"`
	PackageManager string   `mapstructure:"package_manager"`
	Addons         []string `mapstructure:"addons"`
	Examples       []string `mapstructure:"examples"`
	Git            bool     `mapstructure:"git"`
	NoInstall      bool     `mapstructure:"no_install"`
}

// Loader reads Defaults from an optional YAML file and STACKGEN_* variables.
// Environment variables take precedence over the file.
type Loader struct {
	v      *viper.Viper
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a Loader with environment bindings in place.
func NewLoader(opts ...LoaderOption) *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range defaultKeys {
		_ = v.BindEnv(key)
	}
	v.SetDefault("git", true)
	v.SetDefault("frontend", []string{string(models.FrontendWeb)})

	l := &Loader{v: v, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("module", "config")
	return l
}

// Load reads configFile (or the default location when empty). A missing
// file is not an error.
func (l *Loader) Load(configFile string) (*Defaults, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read defaults %s: %w", configFile, err)
			}
			l.logger.Debug("defaults file not found, using built-in defaults", "path", configFile)
		}
	}

	var d Defaults
	if err := l.v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	return &d, nil
}

// ProjectConfig converts the defaults into a raw configuration. Values are
// not validated here.
func (d *Defaults) ProjectConfig() models.ProjectConfig {
	cfg := NewDefaultProjectConfig()
	cfg.Frontend = toEnums[models.Frontend](d.Frontend)
	cfg.Addons = toEnums[models.Addon](d.Addons)
	cfg.Examples = toEnums[models.Example](d.Examples)
	if d.Backend != "" {
		cfg.Backend = models.Backend(d.Backend)
	}
	if d.Runtime != "" {
		cfg.Runtime = models.Runtime(d.Runtime)
	}
	if d.Database != "" {
		cfg.Database = models.Database(d.Database)
	}
	if d.ORM != "" {
		cfg.ORM = models.ORM(d.ORM)
	}
	if d.Auth != "" {
		cfg.Auth = models.Auth(d.Auth)
	}
	if d.PackageManager != "" {
		cfg.PackageManager = models.PackageManager(d.PackageManager)
	}
	cfg.Git = d.Git
	cfg.NoInstall = d.NoInstall
	return cfg
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/stackgen/config.yaml, or the
// equivalent under the user config directory. Returns "" if neither resolves.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stackgen", "config.yaml")
}

// LoadPreset reads a full project configuration from a YAML file.
func LoadPreset(path string) (models.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return models.ProjectConfig{}, fmt.Errorf("%w: %s", ErrPresetNotFound, path)
		}
		return models.ProjectConfig{}, fmt.Errorf("read preset %s: %w", path, err)
	}

	cfg := NewDefaultProjectConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return models.ProjectConfig{}, fmt.Errorf("parse %s: %w", filepath.Base(path), ErrInvalidYAML)
	}
	return cfg, nil
}

// toEnums converts raw strings to a typed enum slice, splitting any
// comma separated entries an environment variable may carry.
func toEnums[T ~string](values []string) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, T(part))
			}
		}
	}
	return out
}
