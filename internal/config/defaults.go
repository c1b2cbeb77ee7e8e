package config

import (
	"os"
	"strings"

	"github.com/modu-ai/stackgen/pkg/models"
)

// Default option values applied during normalization.
const (
	DefaultProjectName    = "my-stack-app"
	DefaultBackend        = models.BackendHono
	DefaultRuntime        = models.RuntimeBun
	DefaultDatabase       = models.DatabaseNone
	DefaultORM            = models.ORMNone
	DefaultAuth           = models.AuthNone
	DefaultPackageManager = models.PackageManagerNPM
)

// userAgentEnv is set by npm, pnpm and bun when they launch a binary.
const userAgentEnv = "npm_config_user_agent"

// NewDefaultProjectConfig returns the configuration used when the user makes
// no choices: a web frontend with a Hono server on Bun and git enabled.
func NewDefaultProjectConfig() models.ProjectConfig {
	return models.ProjectConfig{
		ProjectName:    DefaultProjectName,
		Frontend:       []models.Frontend{models.FrontendWeb},
		Backend:        DefaultBackend,
		Runtime:        DefaultRuntime,
		Database:       DefaultDatabase,
		ORM:            DefaultORM,
		Auth:           DefaultAuth,
		PackageManager: DetectPackageManager(),
		Addons:         []models.Addon{},
		Examples:       []models.Example{},
		Git:            true,
	}
}

// DetectPackageManager infers the package manager that launched the process
// from npm_config_user_agent, falling back to npm.
func DetectPackageManager() models.PackageManager {
	return packageManagerFromUserAgent(os.Getenv(userAgentEnv))
}

// packageManagerFromUserAgent parses a user agent such as
// "pnpm/9.1.0 npm/? node/v20.11.0 linux x64".
func packageManagerFromUserAgent(ua string) models.PackageManager {
	switch {
	case strings.HasPrefix(ua, "pnpm"):
		return models.PackageManagerPNPM
	case strings.HasPrefix(ua, "bun"):
		return models.PackageManagerBun
	default:
		return models.PackageManagerNPM
	}
}
