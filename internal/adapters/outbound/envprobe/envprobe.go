// Package envprobe inspects the Python execution environment around a
// project: active virtual environments, uv manifests, monorepo layout,
// and the availability of external tools. All queries are read-only.
package envprobe

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pyqa/pyqa/internal/domain"
)

// Tool probes never hang on a wedged binary.
const probeTimeout = 5 * time.Second

// RuntimeInfo carries interpreter facts the probe cannot observe from
// inside a Go process. Callers collect them from the interpreter they
// care about and pass them in explicitly.
type RuntimeInfo struct {
	Executable string
	Version    string
	Prefix     string
	BasePrefix string
}

// Probe implements the environment queries.
type Probe struct{}

func New() *Probe {
	return &Probe{}
}

// DetectVirtualEnv finds the active virtual environment: VIRTUAL_ENV
// when it points at an existing directory, otherwise the interpreter
// prefix when it differs from the base prefix. Absence when neither
// indicates isolation.
func (p *Probe) DetectVirtualEnv(rt RuntimeInfo) (string, bool) {
	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		if _, err := os.Stat(venv); err == nil {
			return venv, true
		}
	}
	if rt.Prefix != "" && rt.BasePrefix != "" && rt.Prefix != rt.BasePrefix {
		return rt.Prefix, true
	}
	return "", false
}

// LockFilePath returns the project's uv.lock path, absence when the
// project has none.
func (p *Probe) LockFilePath(projectPath string) (string, bool) {
	return fileAt(projectPath, "uv.lock")
}

// ManifestPath returns the project's pyproject.toml path, absence when
// the project has none.
func (p *Probe) ManifestPath(projectPath string) (string, bool) {
	return fileAt(projectPath, "pyproject.toml")
}

// IsManagedProject reports whether the project carries a uv.lock or a
// pyproject.toml.
func (p *Probe) IsManagedProject(projectPath string) bool {
	if _, ok := p.LockFilePath(projectPath); ok {
		return true
	}
	_, ok := p.ManifestPath(projectPath)
	return ok
}

// Dependencies extracts locked package names from uv.lock. Versions are
// not resolved, every name maps to "". Fails when the project has no
// lock file or it cannot be read.
func (p *Probe) Dependencies(projectPath string) (map[string]string, error) {
	lockPath, ok := p.LockFilePath(projectPath)
	if !ok {
		return nil, fmt.Errorf("uv.lock not found in %s", projectPath)
	}

	data, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", lockPath, err)
	}

	deps := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "name = ") {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(line, "=", 2)[1])
		name = strings.Trim(name, `"`)
		if name != "" {
			deps[name] = ""
		}
	}
	return deps, nil
}

// IsMonorepo reports whether any pyproject.toml exists strictly below
// the project root.
func (p *Probe) IsMonorepo(projectPath string) bool {
	packages, err := p.findPackages(projectPath)
	return err == nil && len(packages) > 0
}

// MonorepoPackages lists the directories of nested pyproject.toml
// manifests, sorted. Fails with ErrNotMonorepo when there are none.
func (p *Probe) MonorepoPackages(projectPath string) ([]string, error) {
	packages, err := p.findPackages(projectPath)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotMonorepo, projectPath)
	}
	sort.Strings(packages)
	return packages, nil
}

func (p *Probe) findPackages(projectPath string) ([]string, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotMonorepo, projectPath)
	}

	var packages []string
	err = filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || d.Name() != "pyproject.toml" {
			return nil
		}
		if filepath.Dir(path) != filepath.Clean(projectPath) {
			packages = append(packages, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// ToolInstalled reports whether name responds to --version within the
// probe timeout.
func (p *Probe) ToolInstalled(name string) bool {
	_, ok := p.ToolVersion(name)
	return ok
}

// ToolVersion runs `name --version` and returns the trimmed output.
// Absence on a missing binary, non-zero exit, or timeout.
func (p *Probe) ToolVersion(name string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, "--version").Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// Info is a full environment snapshot for display and interchange.
type Info struct {
	ProjectPath    string            `json:"project_path"`
	VirtualEnv     string            `json:"virtual_env,omitempty"`
	LockFile       string            `json:"lock_file,omitempty"`
	Manifest       string            `json:"manifest,omitempty"`
	ManagedProject bool              `json:"managed_project"`
	Monorepo       bool              `json:"monorepo"`
	Packages       []string          `json:"packages,omitempty"`
	Dependencies   map[string]string `json:"dependencies,omitempty"`
	Tools          map[string]string `json:"tools"`
}

// Snapshot aggregates the probe operations for one project. Tool
// entries map each requested name to its version, or "" when the tool
// is not installed.
func (p *Probe) Snapshot(projectPath string, rt RuntimeInfo, tools []string) Info {
	info := Info{
		ProjectPath: projectPath,
		Tools:       map[string]string{},
	}
	info.VirtualEnv, _ = p.DetectVirtualEnv(rt)
	info.LockFile, _ = p.LockFilePath(projectPath)
	info.Manifest, _ = p.ManifestPath(projectPath)
	info.ManagedProject = info.LockFile != "" || info.Manifest != ""
	if packages, err := p.MonorepoPackages(projectPath); err == nil {
		info.Monorepo = true
		info.Packages = packages
	}
	if deps, err := p.Dependencies(projectPath); err == nil {
		info.Dependencies = deps
	}
	for _, name := range tools {
		version, _ := p.ToolVersion(name)
		info.Tools[name] = version
	}
	return info
}

func fileAt(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
