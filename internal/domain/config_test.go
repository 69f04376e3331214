package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/pyqa/pyqa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig("/work/project")
	assert.Equal(t, "/work/project", cfg.ProjectPath)
	assert.True(t, cfg.GoogleStyleGuide)
	assert.True(t, cfg.AutoFixEnabled)
	assert.True(t, cfg.BackupEnabled)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Exclusions)
	assert.NotNil(t, cfg.PyrightConfig)
	assert.NotNil(t, cfg.RuffConfig)
}

func TestNewConfig_EmptyProjectPath(t *testing.T) {
	_, err := domain.NewConfig(domain.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "project_path cannot be empty")
}

func TestNewConfig_NormalizesCollections(t *testing.T) {
	cfg, err := domain.NewConfig(domain.Config{ProjectPath: "/p"})
	require.NoError(t, err)
	assert.NotNil(t, cfg.PyrightConfig)
	assert.NotNil(t, cfg.RuffConfig)
	assert.NotNil(t, cfg.Exclusions)
}

func TestConfig_MapRoundTrip(t *testing.T) {
	original, err := domain.NewConfig(domain.Config{
		ProjectPath:      "/work/project",
		PyrightConfig:    map[string]any{"strict": true, "pythonVersion": "3.12"},
		RuffConfig:       map[string]any{"line-length": "88", "select": "E,W"},
		Exclusions:       []string{"build/**", ".venv/**"},
		GoogleStyleGuide: false,
		AutoFixEnabled:   true,
		BackupEnabled:    false,
		DryRun:           true,
	})
	require.NoError(t, err)

	decoded, err := domain.ConfigFromMap(original.ToMap())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestConfig_MapRoundTrip_ThroughJSON(t *testing.T) {
	original, err := domain.NewConfig(domain.Config{
		ProjectPath: "/work/project",
		RuffConfig:  map[string]any{"select": "E,W"},
		Exclusions:  []string{"dist/**"},
	})
	require.NoError(t, err)

	data, err := json.Marshal(original.ToMap())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	decoded, err := domain.ConfigFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, original.ProjectPath, decoded.ProjectPath)
	assert.Equal(t, original.RuffConfig, decoded.RuffConfig)
	assert.Equal(t, original.Exclusions, decoded.Exclusions)
}

func TestConfigFromMap_Defaults(t *testing.T) {
	cfg, err := domain.ConfigFromMap(map[string]any{"project_path": "/p"})
	require.NoError(t, err)
	assert.True(t, cfg.GoogleStyleGuide)
	assert.True(t, cfg.AutoFixEnabled)
	assert.True(t, cfg.BackupEnabled)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Exclusions)
}

func TestConfigFromMap_MissingProjectPath(t *testing.T) {
	_, err := domain.ConfigFromMap(map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingField)
	assert.Contains(t, err.Error(), "project_path")
}

func TestConfigFromMap_WrongTypes(t *testing.T) {
	_, err := domain.ConfigFromMap(map[string]any{
		"project_path": "/p",
		"dry_run":      "yes",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = domain.ConfigFromMap(map[string]any{
		"project_path": "/p",
		"exclusions":   []any{"ok", 7},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}
