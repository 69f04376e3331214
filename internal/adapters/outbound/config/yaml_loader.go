package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pyqa/pyqa/internal/domain"
)

const fileName = ".pyqa.yaml"

// YAMLLoader reads project configuration from .pyqa.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// fileConfig mirrors the YAML shape. Bools are pointers so an absent
// key keeps its default instead of collapsing to false.
type fileConfig struct {
	PyrightConfig    map[string]any `yaml:"pyright_config"`
	RuffConfig       map[string]any `yaml:"ruff_config"`
	Exclusions       []string       `yaml:"exclusions"`
	GoogleStyleGuide *bool          `yaml:"google_style_guide"`
	AutoFixEnabled   *bool          `yaml:"auto_fix_enabled"`
	BackupEnabled    *bool          `yaml:"backup_enabled"`
	DryRun           *bool          `yaml:"dry_run"`
}

// Load reads .pyqa.yaml from projectPath.
// Returns DefaultConfig(projectPath) if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(projectPath), nil
		}
		return domain.Config{}, err
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg := domain.DefaultConfig(projectPath)
	if raw.PyrightConfig != nil {
		cfg.PyrightConfig = raw.PyrightConfig
	}
	if raw.RuffConfig != nil {
		cfg.RuffConfig = raw.RuffConfig
	}
	if raw.Exclusions != nil {
		cfg.Exclusions = raw.Exclusions
	}
	if raw.GoogleStyleGuide != nil {
		cfg.GoogleStyleGuide = *raw.GoogleStyleGuide
	}
	if raw.AutoFixEnabled != nil {
		cfg.AutoFixEnabled = *raw.AutoFixEnabled
	}
	if raw.BackupEnabled != nil {
		cfg.BackupEnabled = *raw.BackupEnabled
	}
	if raw.DryRun != nil {
		cfg.DryRun = *raw.DryRun
	}

	cfg, err = domain.NewConfig(cfg)
	if err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}
