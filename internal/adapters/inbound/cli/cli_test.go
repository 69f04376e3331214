package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pyqa/pyqa/internal/adapters/inbound/cli"
	"github.com/pyqa/pyqa/internal/adapters/outbound/store"
	"github.com/pyqa/pyqa/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// savedReport persists a report whose single fix targets a real file in
// projectDir, and returns the report path.
func savedReport(t *testing.T, projectDir string) string {
	t.Helper()
	target := filepath.Join(projectDir, "app.py")
	require.NoError(t, os.WriteFile(target, []byte("import os\n"), 0644))

	issue, err := domain.NewIssue(domain.Issue{
		FilePath: target,
		Line:     1,
		Column:   1,
		Severity: domain.SeverityWarning,
		Category: domain.CategoryImportIssue,
		Code:     "F401",
		Message:  "'os' imported but unused",
		Source:   domain.SourceRuff,
	})
	require.NoError(t, err)

	fix, err := domain.NewFix(domain.Fix{
		FilePath:     target,
		OriginalCode: "import os\n",
		FixedCode:    "",
		Issue:        issue,
		Explanation:  "Remove the unused os import",
		Safe:         true,
	})
	require.NoError(t, err)

	summary, err := domain.NewReportSummary(domain.Summarize([]domain.Issue{issue}))
	require.NoError(t, err)
	report, err := domain.NewReport(domain.Report{
		Issues:      []domain.Issue{issue},
		Fixes:       []domain.Fix{fix},
		Summary:     summary,
		Timestamp:   time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		ProjectPath: projectDir,
	})
	require.NoError(t, err)

	path := filepath.Join(projectDir, "report.json")
	require.NoError(t, store.New().Save(report, path))
	return path
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "pyqa")
}

func TestEnvCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\nname = \"demo\"\n"), 0644))

	output, err := runCommand(t, "env", dir, "--json", "--tools=definitely-not-a-tool-xyz")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, dir, info["project_path"])
	assert.Equal(t, true, info["managed_project"])
	assert.Equal(t, false, info["monorepo"])
}

func TestStatusCommand_OutsideRepository(t *testing.T) {
	dir := t.TempDir()

	output, err := runCommand(t, "status", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "not a git repository")

	output, err = runCommand(t, "status", dir, "--json")
	require.NoError(t, err)
	var snap map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, false, snap["repository"])
}

func TestShowCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	path := savedReport(t, dir)

	output, err := runCommand(t, "show", path, "--json")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &m))
	assert.Equal(t, dir, m["project_path"])
	summary, ok := m["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), summary["total_issues"])
}

func TestShowCommand_MissingReport(t *testing.T) {
	_, err := runCommand(t, "show", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	path := savedReport(t, dir)

	output, err := runCommand(t, "apply", path, "--json")
	require.NoError(t, err)

	var plan domain.ApplyPlan
	require.NoError(t, json.Unmarshal([]byte(output), &plan))
	assert.Equal(t, 1, plan.Applied)

	content, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Empty(t, string(content))
}

func TestApplyCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := savedReport(t, dir)

	output, err := runCommand(t, "apply", path, "--dry-run", "--json")
	require.NoError(t, err)

	var plan domain.ApplyPlan
	require.NoError(t, json.Unmarshal([]byte(output), &plan))
	require.Len(t, plan.Results, 1)
	assert.Equal(t, domain.OutcomeDryRun, plan.Results[0].Outcome)

	content, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import os\n", string(content), "dry run must not write")
}

func TestApplyCommand_NoBackup(t *testing.T) {
	dir := t.TempDir()
	path := savedReport(t, dir)

	_, err := runCommand(t, "apply", path, "--no-backup")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	// app.py and report.json only, no backup sibling.
	assert.Len(t, entries, 2)
}

func TestMCPCommandExists(t *testing.T) {
	_, err := runCommand(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, err := runCommand(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
