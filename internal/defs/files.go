package defs

import "io/fs"

// Common file names written into generated projects.
const (
	// PackageJSON is the npm package manifest, present at the root and in every app.
	PackageJSON = "package.json"

	// TurboJSON is the Turborepo pipeline configuration at the workspace root.
	TurboJSON = "turbo.json"

	// GitIgnore is the final ignore file name.
	GitIgnore = ".gitignore"

	// GitIgnoreTemplate is the ignore file name used by fragments applied
	// before the gitignore stage, which folds it into GitIgnore.
	GitIgnoreTemplate = "_gitignore"

	// EnvFile holds environment variables for a single app.
	EnvFile = ".env"

	// EnvExample mirrors EnvFile with values removed.
	EnvExample = ".env.example"

	// ReadmeMD is the generated project README.
	ReadmeMD = "README.md"

	// PnpmWorkspaceYAML declares workspace packages for pnpm.
	PnpmWorkspaceYAML = "pnpm-workspace.yaml"
)

// App directories relative to the project root.
const (
	AppsDir   = "apps"
	WebApp    = "apps/web"
	NativeApp = "apps/native"
	ServerApp = "apps/server"
)

// Permissions for generated files and directories.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
	ExecPerm fs.FileMode = 0o755
)
