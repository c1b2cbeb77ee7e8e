package models

import "slices"

// ProjectConfig is the fully resolved description of the project to generate.
// A value returned by config.Validate is normalized: slices are non-nil and
// de-duplicated, enums carry defaults, and Turso is set. Pipeline stages only
// read it.
type ProjectConfig struct {
	ProjectName    string         `yaml:"project_name" json:"projectName"`
	Frontend       []Frontend     `yaml:"frontend" json:"frontend"`
	Backend        Backend        `yaml:"backend" json:"backend"`
	Runtime        Runtime        `yaml:"runtime" json:"runtime"`
	Database       Database       `yaml:"database" json:"database"`
	ORM            ORM            `yaml:"orm" json:"orm"`
	Auth           Auth           `yaml:"auth" json:"auth"`
	PackageManager PackageManager `yaml:"package_manager" json:"packageManager"`
	Addons         []Addon        `yaml:"addons" json:"addons"`
	Examples       []Example      `yaml:"examples" json:"examples"`
	Turso          *bool          `yaml:"turso,omitempty" json:"turso,omitempty"`
	Git            bool           `yaml:"git" json:"git"`
	NoInstall      bool           `yaml:"no_install" json:"noInstall"`
}

// HasFrontend reports whether f was selected.
func (c ProjectConfig) HasFrontend(f Frontend) bool {
	return slices.Contains(c.Frontend, f)
}

// HasAnyFrontend reports whether at least one client app is generated.
func (c ProjectConfig) HasAnyFrontend() bool {
	for _, f := range c.Frontend {
		if f != FrontendNone {
			return true
		}
	}
	return false
}

// HasAddon reports whether a was selected.
func (c ProjectConfig) HasAddon(a Addon) bool {
	return slices.Contains(c.Addons, a)
}

// HasExample reports whether e was selected.
func (c ProjectConfig) HasExample(e Example) bool {
	return slices.Contains(c.Examples, e)
}

// UsesTurso reports whether the sqlite database runs in remote (libSQL) mode.
func (c ProjectConfig) UsesTurso() bool {
	return c.Database == DatabaseSQLite && c.Turso != nil && *c.Turso
}

// Clone returns a deep copy so callers can normalize without aliasing the input.
func (c ProjectConfig) Clone() ProjectConfig {
	out := c
	out.Frontend = slices.Clone(c.Frontend)
	out.Addons = slices.Clone(c.Addons)
	out.Examples = slices.Clone(c.Examples)
	if c.Turso != nil {
		v := *c.Turso
		out.Turso = &v
	}
	return out
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
