package envprobe_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/pyqa/pyqa/internal/adapters/outbound/envprobe"
	"github.com/pyqa/pyqa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockFixture = `version = 1

[[package]]
name = "requests"
version = "2.32.0"

[[package]]
name = "rich"
version = "13.7.1"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectVirtualEnv_EnvVar(t *testing.T) {
	venv := t.TempDir()
	t.Setenv("VIRTUAL_ENV", venv)

	got, ok := envprobe.New().DetectVirtualEnv(envprobe.RuntimeInfo{})
	require.True(t, ok)
	assert.Equal(t, venv, got)
}

func TestDetectVirtualEnv_EnvVarMissingOnDisk(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", filepath.Join(t.TempDir(), "gone"))

	_, ok := envprobe.New().DetectVirtualEnv(envprobe.RuntimeInfo{})
	assert.False(t, ok)
}

func TestDetectVirtualEnv_PrefixComparison(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "")

	got, ok := envprobe.New().DetectVirtualEnv(envprobe.RuntimeInfo{
		Prefix:     "/proj/.venv",
		BasePrefix: "/usr",
	})
	require.True(t, ok)
	assert.Equal(t, "/proj/.venv", got)

	_, ok = envprobe.New().DetectVirtualEnv(envprobe.RuntimeInfo{
		Prefix:     "/usr",
		BasePrefix: "/usr",
	})
	assert.False(t, ok)
}

func TestLockAndManifestPaths(t *testing.T) {
	dir := t.TempDir()
	probe := envprobe.New()

	_, ok := probe.LockFilePath(dir)
	assert.False(t, ok)
	_, ok = probe.ManifestPath(dir)
	assert.False(t, ok)
	assert.False(t, probe.IsManagedProject(dir))

	lock := writeFile(t, dir, "uv.lock", lockFixture)
	manifest := writeFile(t, dir, "pyproject.toml", "[project]\nname = \"demo\"\n")

	got, ok := probe.LockFilePath(dir)
	require.True(t, ok)
	assert.Equal(t, lock, got)

	got, ok = probe.ManifestPath(dir)
	require.True(t, ok)
	assert.Equal(t, manifest, got)
	assert.True(t, probe.IsManagedProject(dir))
}

func TestDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "uv.lock", lockFixture)

	deps, err := envprobe.New().Dependencies(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"requests": "", "rich": ""}, deps)
}

func TestDependencies_NoLockFile(t *testing.T) {
	_, err := envprobe.New().Dependencies(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uv.lock not found")
}

func TestMonorepo(t *testing.T) {
	dir := t.TempDir()
	probe := envprobe.New()

	// Root manifest alone is not a monorepo.
	writeFile(t, dir, "pyproject.toml", "[project]\nname = \"root\"\n")
	assert.False(t, probe.IsMonorepo(dir))

	_, err := probe.MonorepoPackages(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotMonorepo)

	writeFile(t, dir, filepath.Join("packages", "api", "pyproject.toml"), "[project]\nname = \"api\"\n")
	writeFile(t, dir, filepath.Join("packages", "core", "pyproject.toml"), "[project]\nname = \"core\"\n")
	assert.True(t, probe.IsMonorepo(dir))

	packages, err := probe.MonorepoPackages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "packages", "api"),
		filepath.Join(dir, "packages", "core"),
	}, packages)
}

func TestToolProbes(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	probe := envprobe.New()

	assert.True(t, probe.ToolInstalled("git"))
	version, ok := probe.ToolVersion("git")
	require.True(t, ok)
	assert.Contains(t, version, "git version")

	assert.False(t, probe.ToolInstalled("definitely-not-a-tool-xyz"))
	_, ok = probe.ToolVersion("definitely-not-a-tool-xyz")
	assert.False(t, ok)
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VIRTUAL_ENV", "")
	writeFile(t, dir, "uv.lock", lockFixture)
	writeFile(t, dir, "pyproject.toml", "[project]\nname = \"demo\"\n")

	info := envprobe.New().Snapshot(dir, envprobe.RuntimeInfo{}, []string{"definitely-not-a-tool-xyz"})
	assert.Equal(t, dir, info.ProjectPath)
	assert.True(t, info.ManagedProject)
	assert.False(t, info.Monorepo)
	assert.Equal(t, map[string]string{"requests": "", "rich": ""}, info.Dependencies)
	assert.Equal(t, "", info.Tools["definitely-not-a-tool-xyz"])
}
