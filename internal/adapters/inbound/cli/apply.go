package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyqa/pyqa/internal/adapters/outbound/config"
	"github.com/pyqa/pyqa/internal/adapters/outbound/fileops"
	"github.com/pyqa/pyqa/internal/adapters/outbound/store"
	"github.com/pyqa/pyqa/internal/adapters/outbound/tui"
	"github.com/pyqa/pyqa/internal/application"
	"github.com/pyqa/pyqa/internal/domain"
)

func newApplyCmd() *cobra.Command {
	var (
		dryRun        bool
		noBackup      bool
		includeUnsafe bool
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "apply <report.json>",
		Short: "Apply the fixes recorded in a report",
		Long:  "Load a persisted analysis report and apply its fixes to the project, backing each file up before the first write unless backups are disabled.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := application.NewReportService(store.New())
			report, err := reports.Load(args[0])
			if err != nil {
				return err
			}
			if len(report.Fixes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "report contains no fixes")
				return nil
			}

			cfg, err := config.New().Load(report.ProjectPath)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}
			if noBackup {
				cfg.BackupEnabled = false
			}

			svc := application.NewApplyService(fileops.New())
			plan, err := svc.ApplyAll(report.Fixes, cfg, domain.ApplyOptions{IncludeUnsafe: includeUnsafe})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderApplyPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip backups before writing")
	cmd.Flags().BoolVar(&includeUnsafe, "include-unsafe", false, "Also apply fixes marked unsafe")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
