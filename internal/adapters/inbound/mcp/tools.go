package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pyqa/pyqa/internal/adapters/outbound/config"
	"github.com/pyqa/pyqa/internal/adapters/outbound/envprobe"
	"github.com/pyqa/pyqa/internal/adapters/outbound/fileops"
	"github.com/pyqa/pyqa/internal/adapters/outbound/gitinfo"
	"github.com/pyqa/pyqa/internal/adapters/outbound/store"
	"github.com/pyqa/pyqa/internal/application"
	"github.com/pyqa/pyqa/internal/domain"
)

// registerTools registers all PyQA MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. pyqa_environment
	s.AddTool(
		mcplib.NewTool("pyqa_environment",
			mcplib.WithDescription("Returns the Python environment snapshot for the project: virtual environment, uv manifests, monorepo packages, locked dependencies, and tool availability"),
		),
		handleEnvironment(projectPath),
	)

	// 2. pyqa_git_status
	s.AddTool(
		mcplib.NewTool("pyqa_git_status",
			mcplib.WithDescription("Returns the project's git state: branch, commit, and changed/staged/unstaged/untracked file sets"),
			mcplib.WithString("ref",
				mcplib.Description("Diff the working state against this ref instead of HEAD"),
			),
		),
		handleGitStatus(projectPath),
	)

	// 3. pyqa_report
	s.AddTool(
		mcplib.NewTool("pyqa_report",
			mcplib.WithDescription("Loads a persisted analysis report and returns its canonical JSON form"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the report JSON file"),
			),
		),
		handleReport(),
	)

	// 4. pyqa_apply_fixes
	s.AddTool(
		mcplib.NewTool("pyqa_apply_fixes",
			mcplib.WithDescription("Applies the fixes recorded in a persisted report, backing files up before writing. Returns the per-fix outcomes."),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the report JSON file"),
			),
			mcplib.WithBoolean("dry_run", mcplib.Description("Report what would change without writing")),
			mcplib.WithBoolean("include_unsafe", mcplib.Description("Also apply fixes marked unsafe")),
		),
		handleApplyFixes(),
	)
}

func handleEnvironment(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		probe := envprobe.New()
		info := probe.Snapshot(projectPath, envprobe.RuntimeInfo{}, []string{"pyright", "ruff", "uv"})
		return jsonResult(info)
	}
}

func handleGitStatus(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		probe := gitinfo.New()
		snap, err := probe.Snapshot(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("git status failed: %v", err)), nil
		}

		ref, _ := request.GetArguments()["ref"].(string)
		if ref != "" && snap.Repository {
			if snap.Changed, err = probe.ChangedFiles(projectPath, ref); err != nil {
				return errorResult(fmt.Sprintf("git status failed: %v", err)), nil
			}
		}
		return jsonResult(snap)
	}
}

func handleReport() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		reports := application.NewReportService(store.New())
		report, err := reports.Load(path)
		if err != nil {
			return errorResult(fmt.Sprintf("loading report failed: %v", err)), nil
		}
		return jsonResult(report.ToMap())
	}
}

func handleApplyFixes() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		reports := application.NewReportService(store.New())
		report, err := reports.Load(path)
		if err != nil {
			return errorResult(fmt.Sprintf("loading report failed: %v", err)), nil
		}

		cfg, err := config.New().Load(report.ProjectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}

		dryRun, _ := request.GetArguments()["dry_run"].(bool)
		includeUnsafe, _ := request.GetArguments()["include_unsafe"].(bool)
		if dryRun {
			cfg.DryRun = true
		}

		svc := application.NewApplyService(fileops.New())
		plan, err := svc.ApplyAll(report.Fixes, cfg, domain.ApplyOptions{IncludeUnsafe: includeUnsafe})
		if err != nil {
			return errorResult(fmt.Sprintf("applying fixes failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
