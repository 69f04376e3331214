package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pyqa",
		Short:         "Quality tooling for Python projects",
		Long:          "PyQA orchestrates Python static analysis: it inspects project environments, tracks repository state, and applies generated fixes with backups.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newEnvCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
