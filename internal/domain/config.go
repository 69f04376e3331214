package domain

import "fmt"

// Config holds settings for one analyzer run. PyrightConfig and
// RuffConfig are opaque pass-through mappings owned by the external
// tools; this system never interprets their keys.
type Config struct {
	ProjectPath      string         `json:"project_path"`
	PyrightConfig    map[string]any `json:"pyright_config"`
	RuffConfig       map[string]any `json:"ruff_config"`
	Exclusions       []string       `json:"exclusions"`
	GoogleStyleGuide bool           `json:"google_style_guide"`
	AutoFixEnabled   bool           `json:"auto_fix_enabled"`
	BackupEnabled    bool           `json:"backup_enabled"`
	DryRun           bool           `json:"dry_run"`
}

// DefaultConfig returns the documented defaults for a project.
func DefaultConfig(projectPath string) Config {
	return Config{
		ProjectPath:      projectPath,
		PyrightConfig:    map[string]any{},
		RuffConfig:       map[string]any{},
		Exclusions:       []string{},
		GoogleStyleGuide: true,
		AutoFixEnabled:   true,
		BackupEnabled:    true,
		DryRun:           false,
	}
}

// NewConfig validates the candidate config and returns it with nil
// collections normalized to empty ones.
func NewConfig(c Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.PyrightConfig == nil {
		c.PyrightConfig = map[string]any{}
	}
	if c.RuffConfig == nil {
		c.RuffConfig = map[string]any{}
	}
	if c.Exclusions == nil {
		c.Exclusions = []string{}
	}
	return c, nil
}

// Validate checks the Config invariant.
func (c Config) Validate() error {
	if c.ProjectPath == "" {
		return fmt.Errorf("%w: project_path cannot be empty", ErrValidation)
	}
	return nil
}

// ToMap produces the canonical wire form of the config.
func (c Config) ToMap() map[string]any {
	exclusions := make([]any, 0, len(c.Exclusions))
	for _, e := range c.Exclusions {
		exclusions = append(exclusions, e)
	}
	return map[string]any{
		"project_path":       c.ProjectPath,
		"pyright_config":     c.PyrightConfig,
		"ruff_config":        c.RuffConfig,
		"exclusions":         exclusions,
		"google_style_guide": c.GoogleStyleGuide,
		"auto_fix_enabled":   c.AutoFixEnabled,
		"backup_enabled":     c.BackupEnabled,
		"dry_run":            c.DryRun,
	}
}

// ConfigFromMap is the inverse of ToMap. Every field except
// project_path falls back to its documented default when absent.
func ConfigFromMap(m map[string]any) (Config, error) {
	projectPath, err := stringField(m, "project_path")
	if err != nil {
		return Config{}, err
	}
	pyright, err := optionalAnyMap(m, "pyright_config")
	if err != nil {
		return Config{}, err
	}
	ruff, err := optionalAnyMap(m, "ruff_config")
	if err != nil {
		return Config{}, err
	}
	exclusions, err := optionalStringSlice(m, "exclusions")
	if err != nil {
		return Config{}, err
	}
	googleStyle, err := optionalBool(m, "google_style_guide", true)
	if err != nil {
		return Config{}, err
	}
	autoFix, err := optionalBool(m, "auto_fix_enabled", true)
	if err != nil {
		return Config{}, err
	}
	backup, err := optionalBool(m, "backup_enabled", true)
	if err != nil {
		return Config{}, err
	}
	dryRun, err := optionalBool(m, "dry_run", false)
	if err != nil {
		return Config{}, err
	}

	return NewConfig(Config{
		ProjectPath:      projectPath,
		PyrightConfig:    pyright,
		RuffConfig:       ruff,
		Exclusions:       exclusions,
		GoogleStyleGuide: googleStyle,
		AutoFixEnabled:   autoFix,
		BackupEnabled:    backup,
		DryRun:           dryRun,
	})
}
