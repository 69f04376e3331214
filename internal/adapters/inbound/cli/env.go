package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyqa/pyqa/internal/adapters/outbound/envprobe"
)

// Tools probed by default: the analyzers PyQA orchestrates plus the
// package manager that owns the lock file.
var defaultTools = []string{"pyright", "ruff", "uv"}

func newEnvCmd() *cobra.Command {
	var (
		jsonOutput bool
		tools      []string
	)

	cmd := &cobra.Command{
		Use:   "env [path]",
		Short: "Inspect the Python environment around a project",
		Long:  "Detect the active virtual environment, uv manifests, monorepo layout, locked dependencies, and availability of analysis tools.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := "."
			if len(args) == 1 {
				projectPath = args[0]
			}

			probe := envprobe.New()
			info := probe.Snapshot(projectPath, envprobe.RuntimeInfo{}, tools)

			if jsonOutput {
				return writeJSON(cmd, info)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "project:  %s\n", info.ProjectPath)
			if info.VirtualEnv != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "venv:     %s\n", info.VirtualEnv)
			}
			if info.LockFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "lock:     %s (%d packages)\n", info.LockFile, len(info.Dependencies))
			}
			if info.Manifest != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "manifest: %s\n", info.Manifest)
			}
			if info.Monorepo {
				fmt.Fprintf(cmd.OutOrStdout(), "monorepo: %d packages\n", len(info.Packages))
			}
			for _, name := range tools {
				if v := info.Tools[name]; v != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "tool:     %s (%s)\n", name, v)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "tool:     %s (not installed)\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringSliceVar(&tools, "tools", defaultTools, "Tools to probe for")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
