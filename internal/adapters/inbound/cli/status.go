package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyqa/pyqa/internal/adapters/outbound/gitinfo"
)

func newStatusCmd() *cobra.Command {
	var (
		jsonOutput bool
		ref        string
	)

	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show repository state for a project",
		Long:  "Query the project's git repository for the current branch, commit, and changed, staged, unstaged, and untracked files.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			probe := gitinfo.New()
			snap, err := probe.Snapshot(dir)
			if err != nil {
				return err
			}
			if ref != "" && snap.Repository {
				if snap.Changed, err = probe.ChangedFiles(dir, ref); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, snap)
			}

			if !snap.Repository {
				fmt.Fprintln(cmd.OutOrStdout(), "not a git repository")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "root:   %s\n", snap.Root)
			fmt.Fprintf(cmd.OutOrStdout(), "branch: %s\n", snap.Branch)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", snap.Commit)
			printFileSet(cmd, "changed", snap.Changed)
			printFileSet(cmd, "staged", snap.Staged)
			printFileSet(cmd, "unstaged", snap.Unstaged)
			printFileSet(cmd, "untracked", snap.Untracked)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&ref, "ref", "", "Diff the working state against this ref instead of HEAD")

	return cmd
}

func printFileSet(cmd *cobra.Command, label string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d):\n", label, len(files))
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
}
