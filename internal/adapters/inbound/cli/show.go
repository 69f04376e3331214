package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyqa/pyqa/internal/adapters/outbound/store"
	"github.com/pyqa/pyqa/internal/adapters/outbound/tui"
	"github.com/pyqa/pyqa/internal/application"
)

func newShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <report.json>",
		Short: "Render a persisted analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := application.NewReportService(store.New())
			report, err := reports.Load(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report.ToMap())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the canonical report JSON")

	return cmd
}
